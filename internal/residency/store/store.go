package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EndRoomHistory closes the user's open occupancy row. The upper bound
// is written closed so the last day still counts as occupied.
func (s *Store) EndRoomHistory(ctx context.Context, userID int64, when time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE room_history
		SET active_upper = $2, active_upper_closed = TRUE
		WHERE user_id = $1 AND active_upper IS NULL
	`, userID, when)
	if err != nil {
		return false, fmt.Errorf("closing room history: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting closed rows: %w", err)
	}

	return n > 0, nil
}
