package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/interval"
	"github.com/mhellwig/dormnet/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateTransaction inserts the transaction and all of its splits
// atomically. Splits never exist without their transaction.
func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	txQuery := `
		INSERT INTO transactions (id, description, author_id, valid_on, posted_at, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := dbTx.ExecContext(ctx, txQuery,
		tx.ID, tx.Description, tx.AuthorID, tx.ValidOn, tx.PostedAt, tx.Confirmed,
	); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	splitQuery := `
		INSERT INTO splits (id, transaction_id, account_id, amount)
		VALUES ($1, $2, $3, $4)
	`
	for _, sp := range tx.Splits {
		if _, err := dbTx.ExecContext(ctx, splitQuery,
			sp.ID, sp.TransactionID, sp.AccountID, sp.Amount,
		); err != nil {
			return fmt.Errorf("inserting split: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `
		SELECT id, description, author_id, valid_on, posted_at, confirmed
		FROM transactions
		WHERE id = $1
	`

	var tx ledger.Transaction
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.Description, &tx.AuthorID, &tx.ValidOn, &tx.PostedAt, &tx.Confirmed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	splitQuery := `
		SELECT id, transaction_id, account_id, amount
		FROM splits
		WHERE transaction_id = $1
		ORDER BY amount
	`

	rows, err := s.db.QueryContext(ctx, splitQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp ledger.Split
		if err := rows.Scan(&sp.ID, &sp.TransactionID, &sp.AccountID, &sp.Amount); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}

		tx.Splits = append(tx.Splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating splits: %w", err)
	}

	return &tx, nil
}

// DeleteTransaction removes the transaction; splits go with it via
// ON DELETE CASCADE.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND NOT confirmed`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) SetConfirmed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE transactions SET confirmed = TRUE WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("confirming transaction: %w", err)
	}

	return nil
}

func (s *Store) ConfirmAllPostedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE transactions SET confirmed = TRUE WHERE NOT confirmed AND posted_at < $1`

	res, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("confirming transactions: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("confirming transactions: %w", err)
	}

	return affected, nil
}

// Balance derives an account balance as the sum of its split amounts.
func (s *Store) Balance(ctx context.Context, accountID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM splits WHERE account_id = $1`

	var balance int64
	if err := s.db.QueryRowContext(ctx, query, accountID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("computing balance: %w", err)
	}

	return balance, nil
}

// TransferredAmount pairs opposite-signed splits of shared transactions
// between two accounts and nets the flow, capping each pairing at the
// smaller absolute value. Positive means net flow from -> to.
func (s *Store) TransferredAmount(ctx context.Context, fromAccountID, toAccountID int64, during interval.Interval) (int64, error) {
	query := `
		SELECT COALESCE(SUM(SIGN(s2.amount) * LEAST(ABS(s1.amount), ABS(s2.amount))), 0)
		FROM splits s1
		JOIN splits s2 ON s1.transaction_id = s2.transaction_id
		JOIN transactions t ON t.id = s2.transaction_id
		WHERE s1.account_id = $1
		  AND s2.account_id = $2
		  AND SIGN(s1.amount) <> SIGN(s2.amount)
	`

	args := []any{fromAccountID, toAccountID}
	argIdx := 3

	if begin, ok := during.Begin(); ok {
		op := ">"
		if during.Lower().Closed() {
			op = ">="
		}

		query += fmt.Sprintf(" AND t.valid_on %s $%d", op, argIdx)
		args = append(args, begin)
		argIdx++
	}

	if end, ok := during.End(); ok {
		op := "<"
		if during.Upper().Closed() {
			op = "<="
		}

		query += fmt.Sprintf(" AND t.valid_on %s $%d", op, argIdx)
		args = append(args, end)
		argIdx++
	}

	var amount int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&amount); err != nil {
		return 0, fmt.Errorf("computing transferred amount: %w", err)
	}

	return amount, nil
}
