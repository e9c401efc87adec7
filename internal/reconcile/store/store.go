package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/reconcile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) BankAccountIDByNumber(ctx context.Context, number string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM bank_accounts WHERE account_number = $1`, number,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("querying bank account: %w", err)
	}

	return id, true, nil
}

// Every import reads an unbounded tail of the activity mirror, so all
// imports serialize on one advisory lock regardless of date range.
func importLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("bank_account_activities:import"))
	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (reconcile.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) SumAmountPostedBefore(ctx context.Context, cut time.Time) (int64, error) {
	var sum int64
	err := itx.tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM bank_account_activities WHERE posted_on < $1`, cut,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("summing activities: %w", err)
	}

	return sum, nil
}

const activityColumns = `
	id, bank_account_id, amount, reference, original_reference,
	other_name, other_account_number, other_routing_number,
	posted_on, valid_on, imported_at, transaction_id
`

func scanActivity(rows *sql.Rows) (*reconcile.Activity, error) {
	var (
		a    reconcile.Activity
		txID uuid.NullUUID
	)

	err := rows.Scan(
		&a.ID, &a.BankAccountID, &a.Amount, &a.Reference, &a.OriginalReference,
		&a.OtherName, &a.OtherAccountNumber, &a.OtherRoutingNumber,
		&a.PostedOn, &a.ValidOn, &a.ImportedAt, &txID,
	)
	if err != nil {
		return nil, err
	}

	if txID.Valid {
		a.TransactionID = &txID.UUID
	}

	return &a, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryActivities(ctx context.Context, q querier, query string, args ...any) ([]*reconcile.Activity, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var out []*reconcile.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return out, nil
}

func (itx *importTx) ActivitiesPostedSince(ctx context.Context, cut time.Time) ([]*reconcile.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM bank_account_activities
		WHERE posted_on >= $1
		ORDER BY posted_on, valid_on, id
	`

	return queryActivities(ctx, itx.tx, query, cut)
}

func (s *Store) UnmatchedActivities(ctx context.Context) ([]*reconcile.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM bank_account_activities
		WHERE transaction_id IS NULL
		ORDER BY posted_on, valid_on, id
	`

	return queryActivities(ctx, s.db, query)
}

func (itx *importTx) CreateActivities(ctx context.Context, activities []*reconcile.Activity) error {
	query := `
		INSERT INTO bank_account_activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, a := range activities {
		txID := uuid.NullUUID{}
		if a.TransactionID != nil {
			txID = uuid.NullUUID{UUID: *a.TransactionID, Valid: true}
		}

		if _, err := itx.tx.ExecContext(ctx, query,
			a.ID, a.BankAccountID, a.Amount, a.Reference, a.OriginalReference,
			a.OtherName, a.OtherAccountNumber, a.OtherRoutingNumber,
			a.PostedOn, a.ValidOn, a.ImportedAt, txID,
		); err != nil {
			return fmt.Errorf("inserting activity: %w", err)
		}
	}

	return nil
}

func (s *Store) MatchingPatterns(ctx context.Context) ([]*reconcile.MatchingPattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pattern, account_id FROM matching_patterns ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying matching patterns: %w", err)
	}
	defer rows.Close()

	var out []*reconcile.MatchingPattern
	for rows.Next() {
		var p reconcile.MatchingPattern
		if err := rows.Scan(&p.ID, &p.Pattern, &p.AccountID); err != nil {
			return nil, fmt.Errorf("scanning matching pattern: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matching patterns: %w", err)
	}

	return out, nil
}

func (s *Store) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying user: %w", err)
	}

	return exists, nil
}
