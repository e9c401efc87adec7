package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/interval"
	"github.com/mhellwig/dormnet/internal/membership"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Membership intervals are stored as four columns: nullable lower/upper
// timestamps (NULL = unbounded) plus closedness flags.
func scanMembership(rows *sql.Rows) (*membership.Membership, error) {
	var (
		m            membership.Membership
		lower, upper sql.NullTime
		lowerClosed  bool
		upperClosed  bool
	)

	if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID,
		&lower, &lowerClosed, &upper, &upperClosed); err != nil {
		return nil, err
	}

	lo := interval.NegInfinite()
	if lower.Valid {
		lo = interval.At(lower.Time, lowerClosed)
	}

	hi := interval.PosInfinite()
	if upper.Valid {
		hi = interval.At(upper.Time, upperClosed)
	}

	iv, err := interval.New(lo, hi)
	if err != nil {
		return nil, fmt.Errorf("stored membership %s: %w", m.ID, err)
	}
	m.ActiveDuring = iv

	return &m, nil
}

func boundColumns(iv interval.Interval) (lower sql.NullTime, lowerClosed bool, upper sql.NullTime, upperClosed bool) {
	if begin, ok := iv.Begin(); ok {
		lower = sql.NullTime{Time: begin, Valid: true}
		lowerClosed = iv.Lower().Closed()
	}

	if end, ok := iv.End(); ok {
		upper = sql.NullTime{Time: end, Valid: true}
		upperClosed = iv.Upper().Closed()
	}

	return lower, lowerClosed, upper, upperClosed
}

// OverlappingMemberships returns all rows for (user, group) whose
// stored interval overlaps `during`. The overlap test deliberately
// compares closures: abutting rows must be picked up so the engine can
// join them.
func (s *Store) OverlappingMemberships(ctx context.Context, userID, groupID int64, during interval.Interval) ([]*membership.Membership, error) {
	query := `
		SELECT id, user_id, group_id, active_lower, active_lower_closed, active_upper, active_upper_closed
		FROM memberships
		WHERE user_id = $1 AND group_id = $2
	`

	args := []any{userID, groupID}
	argIdx := 3

	if begin, ok := during.Begin(); ok {
		query += fmt.Sprintf(" AND (active_upper IS NULL OR active_upper >= $%d)", argIdx)
		args = append(args, begin)
		argIdx++
	}

	if end, ok := during.End(); ok {
		query += fmt.Sprintf(" AND (active_lower IS NULL OR active_lower <= $%d)", argIdx)
		args = append(args, end)
		argIdx++
	}

	query += " ORDER BY active_lower NULLS FIRST"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var out []*membership.Membership

	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}

		// The SQL prefilter is closure-coarse; let the interval type decide.
		if m.ActiveDuring.Closure().Overlaps(during.Closure()) {
			out = append(out, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memberships: %w", err)
	}

	return out, nil
}

// ReplaceMemberships deletes the superseded rows and inserts the
// recomputed ones inside one database transaction. The DELETE is
// executed before any INSERT so an eager overlap re-validation never
// sees old and new rows side by side.
func (s *Store) ReplaceMemberships(ctx context.Context, deleteIDs []uuid.UUID, insert []*membership.Membership) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if len(deleteIDs) > 0 {
		if _, err := dbTx.ExecContext(ctx,
			`DELETE FROM memberships WHERE id = ANY($1)`, deleteIDs,
		); err != nil {
			return fmt.Errorf("deleting memberships: %w", err)
		}
	}

	query := `
		INSERT INTO memberships (id, user_id, group_id, active_lower, active_lower_closed, active_upper, active_upper_closed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, m := range insert {
		lower, lowerClosed, upper, upperClosed := boundColumns(m.ActiveDuring)
		if _, err := dbTx.ExecContext(ctx, query,
			m.ID, m.UserID, m.GroupID, lower, lowerClosed, upper, upperClosed,
		); err != nil {
			return fmt.Errorf("inserting membership: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GroupByID loads a single group row.
func (s *Store) GroupByID(ctx context.Context, id int64) (*membership.Group, error) {
	var g membership.Group
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, permission_level FROM groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name, &g.PermissionLevel)
	if err != nil {
		return nil, fmt.Errorf("loading group %d: %w", id, err)
	}

	return &g, nil
}

// Evaluate reports whether the user holds the named property at the
// given instant. Properties are granted by groups; a membership conveys
// them while its interval contains the instant.
func (s *Store) Evaluate(ctx context.Context, userID int64, property string, at time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM memberships m
			JOIN group_properties gp ON gp.group_id = m.group_id
				AND gp.property_name = $2
				AND NOT gp.denied
			WHERE m.user_id = $1
			  AND (m.active_lower IS NULL
				OR m.active_lower < $3
				OR (m.active_lower = $3 AND m.active_lower_closed))
			  AND (m.active_upper IS NULL
				OR m.active_upper > $3
				OR (m.active_upper = $3 AND m.active_upper_closed))
		)
	`

	var granted bool
	if err := s.db.QueryRowContext(ctx, query, userID, property, at).Scan(&granted); err != nil {
		return false, fmt.Errorf("evaluating property: %w", err)
	}

	return granted, nil
}
