// Package residency ends a user's stay: the open room occupancy is
// closed and the member group membership is terminated. It backs the
// MoveOut collaborator of the arrears workflow.
package residency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhellwig/dormnet/internal/interval"
	"github.com/mhellwig/dormnet/internal/membership"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=residency
type Repository interface {
	// EndRoomHistory closes the user's open occupancy row at `when`
	// and reports whether one existed.
	EndRoomHistory(ctx context.Context, userID int64, when time.Time) (bool, error)
}

type Memberships interface {
	RemoveMemberOf(ctx context.Context, userID int64, group membership.Group, processor membership.Actor, during interval.Interval) error
}

type Service struct {
	repo        Repository
	memberships Memberships
	memberGroup membership.Group
}

func NewService(repo Repository, memberships Memberships, memberGroup membership.Group) *Service {
	return &Service{repo: repo, memberships: memberships, memberGroup: memberGroup}
}

// MoveOut ends the user's occupancy and member group membership from
// `when` on. `when` may lie in the past; the membership engine splits
// or truncates the stored intervals accordingly.
func (s *Service) MoveOut(ctx context.Context, userID int64, reason string, processor membership.Actor, when time.Time) error {
	ended, err := s.repo.EndRoomHistory(ctx, userID, when)
	if err != nil {
		return fmt.Errorf("ending room history: %w", err)
	}

	if err := s.memberships.RemoveMemberOf(ctx, userID, s.memberGroup, processor, interval.From(when)); err != nil {
		return fmt.Errorf("ending membership: %w", err)
	}

	slog.Info("user moved out",
		"user_id", userID,
		"reason", reason,
		"when", when.Format(time.DateOnly),
		"had_room", ended,
		"processor_id", processor.ID,
	)

	return nil
}
