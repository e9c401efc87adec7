package arrears

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhellwig/dormnet/internal/fee"
	"github.com/mhellwig/dormnet/internal/interval"
	"github.com/mhellwig/dormnet/internal/membership"
	"github.com/mhellwig/dormnet/internal/userid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=arrears
type Repository interface {
	// NegativeMembers returns users who hold the membership_fee
	// property right now and whose account balance is positive.
	NegativeMembers(ctx context.Context, now time.Time) ([]*Defaulter, error)

	// ClearedDefaulters returns users who hold the payment_in_default
	// property right now but whose balance is no longer positive.
	ClearedDefaulters(ctx context.Context, now time.Time) ([]*Defaulter, error)

	// AccountEntries returns all splits on the account with their
	// transaction dates, oldest first.
	AccountEntries(ctx context.Context, accountID int64) ([]*BalanceEntry, error)

	// LastMembershipEnd returns the latest upper bound over all
	// memberships of (user, group). ok is false if none exist; a nil
	// time with ok means the latest membership is open-ended.
	LastMembershipEnd(ctx context.Context, userID, groupID int64) (*time.Time, bool, error)
}

// Memberships is the slice of the membership engine this workflow
// drives.
type Memberships interface {
	MakeMemberOf(ctx context.Context, userID int64, group membership.Group, processor membership.Actor, during interval.Interval) error
	RemoveMemberOf(ctx context.Context, userID int64, group membership.Group, processor membership.Actor, during interval.Interval) error
	IsMemberAt(ctx context.Context, userID, groupID int64, at time.Time) (bool, error)
}

// FeeLookup resolves fee periods; the deadlines of the resolved period
// decide when a defaulter is flagged or terminated.
type FeeLookup interface {
	ForDate(ctx context.Context, d time.Time) (*fee.MembershipFee, error)
	LastApplied(ctx context.Context) (*fee.MembershipFee, error)
}

// MoveOut ends a user's residency. Implemented by the residency
// workflow outside this engine.
type MoveOut interface {
	MoveOut(ctx context.Context, userID int64, reason string, processor membership.Actor, when time.Time) error
}

type Service struct {
	repo        Repository
	memberships Memberships
	fees        FeeLookup
	moveOut     MoveOut
	pidGroup    membership.Group
	memberGroup membership.Group
	now         func() time.Time
}

func NewService(repo Repository, memberships Memberships, fees FeeLookup, moveOut MoveOut, pidGroup, memberGroup membership.Group) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
		fees:        fees,
		moveOut:     moveOut,
		pidGroup:    pidGroup,
		memberGroup: memberGroup,
		now:         time.Now,
	}
}

// reflagGracePeriod suppresses re-flagging a user whose last
// payment-in-default membership ended only days ago.
const reflagGracePeriod = 7 * 24 * time.Hour

// Classify determines who gets flagged as payment-in-default and whose
// membership gets terminated in this run.
func (s *Service) Classify(ctx context.Context) (*Classification, error) {
	now := s.now()

	users, err := s.repo.NegativeMembers(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("listing members in arrears: %w", err)
	}

	c := &Classification{}
	flagged := make(map[int64]bool)

	for _, u := range users {
		entries, err := s.repo.AccountEntries(ctx, u.AccountID)
		if err != nil {
			return nil, fmt.Errorf("loading account %d: %w", u.AccountID, err)
		}
		u.InDefaultDays = InDefaultDays(entries, now)

		f, err := s.feeForDefault(ctx, now, u.InDefaultDays)
		if err != nil {
			return nil, err
		}
		u.PaymentDeadlineFinal = f.PaymentDeadlineFinal

		if u.InDefaultDays >= f.PaymentDeadline {
			end, ok, err := s.repo.LastMembershipEnd(ctx, u.UserID, s.pidGroup.ID)
			if err != nil {
				return nil, fmt.Errorf("querying last default membership: %w", err)
			}
			// A recently ended flag period suppresses any action this run.
			if ok && end != nil && end.After(now.Add(-reflagGracePeriod)) {
				continue
			}

			isFlagged, err := s.memberships.IsMemberAt(ctx, u.UserID, s.pidGroup.ID, now)
			if err != nil {
				return nil, fmt.Errorf("checking default membership: %w", err)
			}
			if !isFlagged {
				c.Flag = append(c.Flag, u)
				flagged[u.UserID] = true
			}
		}

		if u.InDefaultDays >= u.PaymentDeadlineFinal {
			c.Terminate = append(c.Terminate, u)
		}
	}

	// Never terminate a user in the same run that flags them.
	kept := c.Terminate[:0]
	for _, u := range c.Terminate {
		if !flagged[u.UserID] {
			kept = append(kept, u)
		}
	}
	c.Terminate = kept

	return c, nil
}

// feeForDefault resolves the fee period that was current when the user
// fell into arrears, falling back to the last applied period.
func (s *Service) feeForDefault(ctx context.Context, now time.Time, inDefaultDays int) (*fee.MembershipFee, error) {
	f, err := s.fees.ForDate(ctx, now.AddDate(0, 0, -inDefaultDays))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fee.ErrNoFeeForDate) {
		return nil, fmt.Errorf("resolving fee period: %w", err)
	}

	slog.Warn("no fee period for arrears date, falling back to last applied fee",
		"in_default_days", inDefaultDays)

	f, err = s.fees.LastApplied(ctx)
	if err != nil {
		if errors.Is(err, fee.ErrNoFeeForDate) {
			return nil, ErrNoFee
		}

		return nil, fmt.Errorf("resolving last applied fee: %w", err)
	}

	return f, nil
}

// Apply executes a classification: flagged users join the
// payment-in-default group open-endedly; terminated users still in the
// member group are moved out, backdated by the days they are past the
// final deadline.
func (s *Service) Apply(ctx context.Context, c *Classification, processor membership.Actor) error {
	now := s.now()

	for _, u := range c.Flag {
		isMember, err := s.memberships.IsMemberAt(ctx, u.UserID, s.pidGroup.ID, now)
		if err != nil {
			return fmt.Errorf("checking default membership: %w", err)
		}
		if isMember {
			continue
		}

		if err := s.memberships.MakeMemberOf(ctx, u.UserID, s.pidGroup, processor, interval.From(now)); err != nil {
			return fmt.Errorf("flagging user %d: %w", u.UserID, err)
		}
	}

	for _, u := range c.Terminate {
		isMember, err := s.memberships.IsMemberAt(ctx, u.UserID, s.memberGroup.ID, now)
		if err != nil {
			return fmt.Errorf("checking membership: %w", err)
		}
		if !isMember {
			continue
		}

		pastFinal := u.InDefaultDays - u.PaymentDeadlineFinal
		moveOutDate := now.Add(-time.Duration(pastFinal) * 24 * time.Hour)

		if err := s.moveOut.MoveOut(ctx, u.UserID, "membership fee payment in default", processor, moveOutDate); err != nil {
			return fmt.Errorf("moving out user %d: %w", u.UserID, err)
		}

		slog.Info("membership terminated for arrears",
			"user_id", u.UserID,
			"in_default_days", u.InDefaultDays,
			"move_out", moveOutDate.Format(time.DateOnly),
		)
	}

	return nil
}

// Release removes the payment-in-default flag from every user whose
// balance has returned to zero or below. The membership is ended one
// second in the past so the flag drops immediately.
func (s *Service) Release(ctx context.Context, processor membership.Actor) ([]*Defaulter, error) {
	now := s.now()

	users, err := s.repo.ClearedDefaulters(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("listing cleared defaulters: %w", err)
	}

	for _, u := range users {
		isMember, err := s.memberships.IsMemberAt(ctx, u.UserID, s.pidGroup.ID, now)
		if err != nil {
			return nil, fmt.Errorf("checking default membership: %w", err)
		}
		if !isMember {
			continue
		}

		if err := s.memberships.RemoveMemberOf(ctx, u.UserID, s.pidGroup, processor,
			interval.From(now.Add(-time.Second))); err != nil {
			return nil, fmt.Errorf("releasing user %d: %w", u.UserID, err)
		}
	}

	return users, nil
}

// DefaultersCSV renders every member currently in arrears as CSV with
// their encoded user id and the amount owed as a negative euro value.
func (s *Service) DefaultersCSV(ctx context.Context) (string, error) {
	users, err := s.repo.NegativeMembers(ctx, s.now())
	if err != nil {
		return "", fmt.Errorf("listing members in arrears: %w", err)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"id", "email", "name", "balance"}); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, u := range users {
		record := []string{
			userid.EncodeType2(u.UserID),
			u.Email,
			u.Name,
			decimal.New(-u.Balance, -2).String(),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return b.String(), nil
}
