package membership

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/interval"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=membership
type Repository interface {
	// OverlappingMemberships returns the memberships of (user, group)
	// whose interval overlaps `during`.
	OverlappingMemberships(ctx context.Context, userID, groupID int64, during interval.Interval) ([]*Membership, error)

	// ReplaceMemberships deletes the given rows and inserts the new
	// ones in a single atomic operation. The deletes must be executed
	// (and visible) before the inserts, otherwise an eagerly validated
	// overlap constraint can fire on the transient state.
	ReplaceMemberships(ctx context.Context, deleteIDs []uuid.UUID, insert []*Membership) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// MakeMemberOf makes a user member of a group during the given
// interval. Overlapping or abutting existing memberships are joined, so
// at most one membership per (user, group) covers any instant.
func (s *Service) MakeMemberOf(ctx context.Context, userID int64, group Group, processor Actor, during interval.Interval) error {
	return s.recompute(ctx, userID, group, processor, during, "add",
		func(existing interval.Set) interval.Set {
			return existing.UnionInterval(during)
		})
}

// RemoveMemberOf removes a user from a group during the given interval,
// possibly splitting a stored interval into two. Removing with an
// unbounded interval erases all membership in the group retroactively;
// terminating an ongoing membership is done with From(now).
func (s *Service) RemoveMemberOf(ctx context.Context, userID int64, group Group, processor Actor, during interval.Interval) error {
	return s.recompute(ctx, userID, group, processor, during, "remove",
		func(existing interval.Set) interval.Set {
			return existing.DifferenceInterval(during)
		})
}

func (s *Service) recompute(ctx context.Context, userID int64, group Group, processor Actor, during interval.Interval, op string, apply func(interval.Set) interval.Set) error {
	if group.PermissionLevel > processor.PermissionLevel {
		return ErrPermissionDenied
	}

	existing, err := s.repo.OverlappingMemberships(ctx, userID, group.ID, during)
	if err != nil {
		return fmt.Errorf("listing memberships: %w", err)
	}

	closures := make([]interval.Interval, 0, len(existing))
	deleteIDs := make([]uuid.UUID, 0, len(existing))
	for _, m := range existing {
		closures = append(closures, m.ActiveDuring.Closure())
		deleteIDs = append(deleteIDs, m.ID)
	}

	recomputed := apply(interval.NewSet(closures...))

	inserts := make([]*Membership, 0, recomputed.Len())
	for _, iv := range recomputed.Intervals() {
		inserts = append(inserts, &Membership{
			ID:           uuid.New(),
			UserID:       userID,
			GroupID:      group.ID,
			ActiveDuring: iv,
		})
	}

	if err := s.repo.ReplaceMemberships(ctx, deleteIDs, inserts); err != nil {
		return fmt.Errorf("replacing memberships: %w", err)
	}

	slog.Info("membership recomputed",
		"op", op,
		"user_id", userID,
		"group", group.Name,
		"during", during.String(),
		"processor_id", processor.ID,
	)

	return nil
}

// IsMemberAt reports whether the user belongs to the group at the given
// instant.
func (s *Service) IsMemberAt(ctx context.Context, userID int64, groupID int64, at time.Time) (bool, error) {
	memberships, err := s.repo.OverlappingMemberships(ctx, userID, groupID, interval.Single(at))
	if err != nil {
		return false, fmt.Errorf("listing memberships: %w", err)
	}

	return len(memberships) > 0, nil
}
