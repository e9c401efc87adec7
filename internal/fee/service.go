package fee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/ledger"
	"github.com/mhellwig/dormnet/internal/membership"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fee
type Repository interface {
	// FeesContaining returns every fee period whose [begins_on, ends_on]
	// contains the date.
	FeesContaining(ctx context.Context, d time.Time) ([]*MembershipFee, error)

	// LastAppliedFee returns the most recent fee with ends_on <= now,
	// or nil if no fee period has ended yet.
	LastAppliedFee(ctx context.Context, now time.Time) (*MembershipFee, error)

	// Candidates returns every user together with the fee accounts of
	// the buildings they lived in at the period's end and begin.
	Candidates(ctx context.Context, f *MembershipFee) ([]*Candidate, error)

	// FeeAccountIDs returns the fee accounts of all buildings.
	FeeAccountIDs(ctx context.Context) ([]int64, error)

	// AccountsWithFeeBooking returns the user accounts that already
	// carry a fee booking in the given span: a transaction valid within
	// it whose counter-split debits one of the fee accounts.
	AccountsWithFeeBooking(ctx context.Context, feeAccountIDs []int64, from, to time.Time) (map[int64]bool, error)

	// CreateTransactions inserts the transactions with their splits in
	// one database transaction.
	CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error
}

// PropertyEvaluator answers whether a user held a property at an
// instant, memberships considered.
type PropertyEvaluator interface {
	Evaluate(ctx context.Context, userID int64, property string, at time.Time) (bool, error)
}

type Service struct {
	repo              Repository
	properties        PropertyEvaluator
	defaultFeeAccount int64
	now               func() time.Time
}

func NewService(repo Repository, properties PropertyEvaluator, defaultFeeAccount int64) *Service {
	return &Service{
		repo:              repo,
		properties:        properties,
		defaultFeeAccount: defaultFeeAccount,
		now:               time.Now,
	}
}

// ForDate returns the unique fee period containing the date.
func (s *Service) ForDate(ctx context.Context, d time.Time) (*MembershipFee, error) {
	fees, err := s.repo.FeesContaining(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("querying fee periods: %w", err)
	}

	switch len(fees) {
	case 0:
		return nil, fmt.Errorf("%s: %w", d.Format(time.DateOnly), ErrNoFeeForDate)
	case 1:
		return fees[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", d.Format(time.DateOnly), ErrAmbiguousFee)
	}
}

// LastApplied returns the most recent fee period that has ended.
func (s *Service) LastApplied(ctx context.Context) (*MembershipFee, error) {
	f, err := s.repo.LastAppliedFee(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("querying last applied fee: %w", err)
	}
	if f == nil {
		return nil, ErrNoFeeForDate
	}

	return f, nil
}

// EligibleUsers returns the users the fee must be posted to: those who
// held the membership_fee property at one of the booking snapshots and
// have no fee booking for the period yet.
func (s *Service) EligibleUsers(ctx context.Context, f *MembershipFee) ([]*AffectedUser, error) {
	candidates, err := s.repo.Candidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("querying fee candidates: %w", err)
	}

	feeAccounts, err := s.repo.FeeAccountIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying fee accounts: %w", err)
	}
	feeAccounts = appendUnique(feeAccounts, s.defaultFeeAccount)

	periodBegin, periodEnd := PeriodSpan(f)
	posted, err := s.repo.AccountsWithFeeBooking(ctx, feeAccounts, periodBegin, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("querying existing fee bookings: %w", err)
	}

	snapBegin, snapEnd := BookingWindow(f)

	var affected []*AffectedUser
	for _, c := range candidates {
		if posted[c.AccountID] {
			continue
		}

		atBegin, err := s.properties.Evaluate(ctx, c.UserID, membership.PropertyMembershipFee, snapBegin)
		if err != nil {
			return nil, fmt.Errorf("evaluating property for user %d: %w", c.UserID, err)
		}

		atEnd, err := s.properties.Evaluate(ctx, c.UserID, membership.PropertyMembershipFee, snapEnd)
		if err != nil {
			return nil, fmt.Errorf("evaluating property for user %d: %w", c.UserID, err)
		}

		if !atBegin && !atEnd {
			continue
		}

		affected = append(affected, &AffectedUser{
			UserID:       c.UserID,
			Name:         c.Name,
			AccountID:    c.AccountID,
			FeeAccountID: DestinationAccount(c, s.defaultFeeAccount),
		})
	}

	return affected, nil
}

// Post charges the fee to every eligible user: one confirmed
// transaction per user, valid on the period's last day, crediting the
// user account and debiting the destination fee account. With simulate
// set nothing is written and the would-be affected users are returned.
func (s *Service) Post(ctx context.Context, f *MembershipFee, authorID int64, simulate bool) ([]*AffectedUser, error) {
	affected, err := s.EligibleUsers(ctx, f)
	if err != nil {
		return nil, err
	}

	if simulate || len(affected) == 0 {
		return affected, nil
	}

	postedAt := s.now()
	txs := make([]*ledger.Transaction, 0, len(affected))

	for _, u := range affected {
		txID := uuid.New()
		txs = append(txs, &ledger.Transaction{
			ID:          txID,
			Description: fmt.Sprintf("Membership fee %s", f.Name),
			AuthorID:    authorID,
			ValidOn:     f.EndsOn,
			PostedAt:    postedAt,
			Confirmed:   true,
			Splits: []ledger.Split{
				{ID: uuid.New(), TransactionID: txID, AccountID: u.AccountID, Amount: f.RegularFee},
				{ID: uuid.New(), TransactionID: txID, AccountID: u.FeeAccountID, Amount: -f.RegularFee},
			},
		})
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("posting fee transactions: %w", err)
	}

	slog.Info("membership fee posted",
		"fee", f.Name,
		"valid_on", f.EndsOn.Format(time.DateOnly),
		"users", len(affected),
	)

	return affected, nil
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
