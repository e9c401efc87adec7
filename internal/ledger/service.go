package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/interval"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	SetConfirmed(ctx context.Context, id uuid.UUID) error
	ConfirmAllPostedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Balance(ctx context.Context, accountID int64) (int64, error)
	TransferredAmount(ctx context.Context, fromAccountID, toAccountID int64, during interval.Interval) (int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SimpleParams describes a transaction with exactly two splits.
type SimpleParams struct {
	Description     string
	DebitAccountID  int64
	CreditAccountID int64
	Amount          int64 // cents
	AuthorID        int64
	ValidOn         *time.Time // today if nil
	Unconfirmed     bool
}

// Simple posts a transaction consisting of exactly two splits: the
// debit account receives -amount and the credit account +amount.
func (s *Service) Simple(ctx context.Context, p SimpleParams) (*Transaction, error) {
	return s.Complex(ctx, ComplexParams{
		Description: p.Description,
		AuthorID:    p.AuthorID,
		ValidOn:     p.ValidOn,
		Unconfirmed: p.Unconfirmed,
		Splits: []SplitParams{
			{AccountID: p.DebitAccountID, Amount: -p.Amount},
			{AccountID: p.CreditAccountID, Amount: p.Amount},
		},
	})
}

type SplitParams struct {
	AccountID int64
	Amount    int64
}

type ComplexParams struct {
	Description string
	AuthorID    int64
	ValidOn     *time.Time
	Unconfirmed bool
	Splits      []SplitParams
}

// Complex posts a transaction with one split per (account, amount)
// pair. The amounts must sum to exactly zero.
func (s *Service) Complex(ctx context.Context, p ComplexParams) (*Transaction, error) {
	if len(p.Splits) < 2 {
		return nil, ErrTooFewSplits
	}

	validOn := s.now().UTC().Truncate(24 * time.Hour)
	if p.ValidOn != nil {
		validOn = *p.ValidOn
	}

	tx := &Transaction{
		ID:          uuid.New(),
		Description: p.Description,
		AuthorID:    p.AuthorID,
		ValidOn:     validOn,
		PostedAt:    s.now().UTC(),
		Confirmed:   !p.Unconfirmed,
	}
	for _, sp := range p.Splits {
		tx.Splits = append(tx.Splits, Split{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			AccountID:     sp.AccountID,
			Amount:        sp.Amount,
		})
	}

	if !tx.Balanced() {
		return nil, ErrUnbalanced
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

// Balance returns the derived balance of an account in cents.
func (s *Service) Balance(ctx context.Context, accountID int64) (int64, error) {
	return s.repo.Balance(ctx, accountID)
}

// TransferredAmount nets the directional flow between two accounts over
// a date interval. A positive result means net flow from `from` to `to`.
func (s *Service) TransferredAmount(ctx context.Context, fromAccountID, toAccountID int64, during interval.Interval) (int64, error) {
	return s.repo.TransferredAmount(ctx, fromAccountID, toAccountID, during)
}

// Confirm marks an unconfirmed transaction as confirmed, making it
// immutable. Confirming twice is an error.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("getting transaction: %w", err)
	}
	if tx.Confirmed {
		return ErrAlreadyConfirmed
	}

	return s.repo.SetConfirmed(ctx, id)
}

// Delete removes an unconfirmed transaction together with its splits.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("getting transaction: %w", err)
	}
	if tx.Confirmed {
		return ErrAlreadyConfirmed
	}

	return s.repo.DeleteTransaction(ctx, id)
}

// DefaultConfirmGrace is how long a transaction stays deletable before
// the periodic sweep confirms it.
const DefaultConfirmGrace = time.Hour

// ConfirmAllOlderThan confirms every unconfirmed transaction posted
// more than grace ago and returns how many were confirmed.
func (s *Service) ConfirmAllOlderThan(ctx context.Context, grace time.Duration) (int64, error) {
	if grace <= 0 {
		grace = DefaultConfirmGrace
	}

	return s.repo.ConfirmAllPostedBefore(ctx, s.now().UTC().Add(-grace))
}
