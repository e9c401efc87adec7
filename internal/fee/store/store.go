package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhellwig/dormnet/internal/fee"
	"github.com/mhellwig/dormnet/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const feeColumns = `
	id, name, begins_on, ends_on, booking_begin, booking_end,
	regular_fee, reduced_fee, payment_deadline, payment_deadline_final,
	grace_period, allowed_overdraft
`

func scanFee(row interface{ Scan(...any) error }) (*fee.MembershipFee, error) {
	var f fee.MembershipFee
	err := row.Scan(
		&f.ID, &f.Name, &f.BeginsOn, &f.EndsOn, &f.BookingBegin, &f.BookingEnd,
		&f.RegularFee, &f.ReducedFee, &f.PaymentDeadline, &f.PaymentDeadlineFinal,
		&f.GracePeriod, &f.AllowedOverdraft,
	)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func (s *Store) FeesContaining(ctx context.Context, d time.Time) ([]*fee.MembershipFee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM membership_fees
		WHERE $1 BETWEEN begins_on AND ends_on
		ORDER BY begins_on
	`

	rows, err := s.db.QueryContext(ctx, query, d)
	if err != nil {
		return nil, fmt.Errorf("querying membership fees: %w", err)
	}
	defer rows.Close()

	var out []*fee.MembershipFee
	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning membership fee: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating membership fees: %w", err)
	}

	return out, nil
}

func (s *Store) LastAppliedFee(ctx context.Context, now time.Time) (*fee.MembershipFee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM membership_fees
		WHERE ends_on <= $1
		ORDER BY ends_on DESC
		LIMIT 1
	`

	f, err := scanFee(s.db.QueryRowContext(ctx, query, now))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("querying last applied fee: %w", err)
	}

	return f, nil
}

// Candidates resolves, for every user, the fee account of the building
// they lived in at the period's last moment and at its first moment.
// Users without a room at those instants get NULL building accounts.
func (s *Store) Candidates(ctx context.Context, f *fee.MembershipFee) ([]*fee.Candidate, error) {
	periodBegin, periodEnd := fee.PeriodSpan(f)

	query := `
		SELECT DISTINCT u.id, u.name, u.account_id, be.fee_account_id, bb.fee_account_id
		FROM users u
		LEFT JOIN room_history rhe ON rhe.user_id = u.id
			AND (rhe.active_lower IS NULL OR rhe.active_lower <= $1)
			AND (rhe.active_upper IS NULL OR rhe.active_upper >= $1)
		LEFT JOIN rooms re ON re.id = rhe.room_id
		LEFT JOIN buildings be ON be.id = re.building_id
		LEFT JOIN room_history rhb ON rhb.user_id = u.id
			AND (rhb.active_lower IS NULL OR rhb.active_lower <= $2)
			AND (rhb.active_upper IS NULL OR rhb.active_upper >= $2)
		LEFT JOIN rooms rb ON rb.id = rhb.room_id
		LEFT JOIN buildings bb ON bb.id = rb.building_id
		ORDER BY u.id
	`

	rows, err := s.db.QueryContext(ctx, query, periodEnd, periodBegin)
	if err != nil {
		return nil, fmt.Errorf("querying fee candidates: %w", err)
	}
	defer rows.Close()

	var out []*fee.Candidate
	for rows.Next() {
		var (
			c          fee.Candidate
			end, begin sql.NullInt64
		)
		if err := rows.Scan(&c.UserID, &c.Name, &c.AccountID, &end, &begin); err != nil {
			return nil, fmt.Errorf("scanning fee candidate: %w", err)
		}

		if end.Valid {
			c.FeeAccountEnd = &end.Int64
		}
		if begin.Valid {
			c.FeeAccountBegin = &begin.Int64
		}

		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fee candidates: %w", err)
	}

	return out, nil
}

func (s *Store) FeeAccountIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT fee_account_id FROM buildings WHERE fee_account_id IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying building fee accounts: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning fee account id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fee account ids: %w", err)
	}

	return out, nil
}

// AccountsWithFeeBooking finds user accounts that already carry a fee
// booking in the span: a transaction valid within it with a debit
// counter-split on one of the fee accounts.
func (s *Store) AccountsWithFeeBooking(ctx context.Context, feeAccountIDs []int64, from, to time.Time) (map[int64]bool, error) {
	query := `
		SELECT DISTINCT su.account_id
		FROM splits su
		JOIN transactions t ON t.id = su.transaction_id
		JOIN splits sf ON sf.transaction_id = t.id AND sf.id <> su.id
		WHERE t.valid_on BETWEEN $1 AND $2
		  AND sf.account_id = ANY($3)
		  AND sf.amount < 0
	`

	rows, err := s.db.QueryContext(ctx, query, from, to, feeAccountIDs)
	if err != nil {
		return nil, fmt.Errorf("querying existing fee bookings: %w", err)
	}
	defer rows.Close()

	posted := make(map[int64]bool)
	for rows.Next() {
		var accountID int64
		if err := rows.Scan(&accountID); err != nil {
			return nil, fmt.Errorf("scanning booked account id: %w", err)
		}
		posted[accountID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booked account ids: %w", err)
	}

	return posted, nil
}

// CreateTransactions inserts all transactions and their splits inside
// one database transaction so a posting run is all-or-nothing.
func (s *Store) CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	txQuery := `
		INSERT INTO transactions (id, description, author_id, valid_on, posted_at, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	splitQuery := `
		INSERT INTO splits (id, transaction_id, account_id, amount)
		VALUES ($1, $2, $3, $4)
	`

	for _, t := range txs {
		if _, err := dbTx.ExecContext(ctx, txQuery,
			t.ID, t.Description, t.AuthorID, t.ValidOn, t.PostedAt, t.Confirmed,
		); err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}

		for _, sp := range t.Splits {
			if _, err := dbTx.ExecContext(ctx, splitQuery,
				sp.ID, sp.TransactionID, sp.AccountID, sp.Amount,
			); err != nil {
				return fmt.Errorf("inserting split: %w", err)
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
