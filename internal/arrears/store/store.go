package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhellwig/dormnet/internal/arrears"
	"github.com/mhellwig/dormnet/internal/membership"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Users holding a property at an instant, with their current balance.
// The property is granted through group membership; a membership covers
// the instant when its interval contains it.
const defaultersQuery = `
	SELECT u.id, u.name, u.email, u.account_id, COALESCE(SUM(s.amount), 0) AS balance
	FROM users u
	JOIN memberships m ON m.user_id = u.id
	JOIN group_properties gp ON gp.group_id = m.group_id
		AND gp.property_name = $1
		AND NOT gp.denied
	LEFT JOIN splits s ON s.account_id = u.account_id
	WHERE (m.active_lower IS NULL
		OR m.active_lower < $2
		OR (m.active_lower = $2 AND m.active_lower_closed))
	  AND (m.active_upper IS NULL
		OR m.active_upper > $2
		OR (m.active_upper = $2 AND m.active_upper_closed))
	GROUP BY u.id, u.name, u.email, u.account_id
`

func (s *Store) queryDefaulters(ctx context.Context, property string, now time.Time, havingPositive bool) ([]*arrears.Defaulter, error) {
	query := defaultersQuery
	if havingPositive {
		query += " HAVING COALESCE(SUM(s.amount), 0) > 0"
	} else {
		query += " HAVING COALESCE(SUM(s.amount), 0) <= 0"
	}
	query += " ORDER BY balance DESC"

	rows, err := s.db.QueryContext(ctx, query, property, now)
	if err != nil {
		return nil, fmt.Errorf("querying defaulters: %w", err)
	}
	defer rows.Close()

	var out []*arrears.Defaulter
	for rows.Next() {
		var d arrears.Defaulter
		if err := rows.Scan(&d.UserID, &d.Name, &d.Email, &d.AccountID, &d.Balance); err != nil {
			return nil, fmt.Errorf("scanning defaulter: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating defaulters: %w", err)
	}

	return out, nil
}

func (s *Store) NegativeMembers(ctx context.Context, now time.Time) ([]*arrears.Defaulter, error) {
	return s.queryDefaulters(ctx, membership.PropertyMembershipFee, now, true)
}

func (s *Store) ClearedDefaulters(ctx context.Context, now time.Time) ([]*arrears.Defaulter, error) {
	return s.queryDefaulters(ctx, membership.PropertyPaymentInDefault, now, false)
}

func (s *Store) AccountEntries(ctx context.Context, accountID int64) ([]*arrears.BalanceEntry, error) {
	query := `
		SELECT t.valid_on, t.posted_at, s.amount
		FROM splits s
		JOIN transactions t ON t.id = s.transaction_id
		WHERE s.account_id = $1
		ORDER BY t.valid_on, t.posted_at
	`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying account entries: %w", err)
	}
	defer rows.Close()

	var out []*arrears.BalanceEntry
	for rows.Next() {
		var e arrears.BalanceEntry
		if err := rows.Scan(&e.ValidOn, &e.PostedAt, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning account entry: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account entries: %w", err)
	}

	return out, nil
}

// LastMembershipEnd returns the latest upper bound of any membership of
// (user, group). ok is false if the user never was a member; a nil time
// with ok means the latest membership is open-ended.
func (s *Store) LastMembershipEnd(ctx context.Context, userID, groupID int64) (*time.Time, bool, error) {
	query := `
		SELECT active_upper
		FROM memberships
		WHERE user_id = $1 AND group_id = $2
		ORDER BY active_upper IS NULL DESC, active_upper DESC
		LIMIT 1
	`

	var upper sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID, groupID).Scan(&upper)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("querying membership end: %w", err)
	}

	if !upper.Valid {
		return nil, true, nil
	}

	return &upper.Time, true, nil
}
