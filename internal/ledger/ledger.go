package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AccountType classifies a ledger account.
type AccountType string

const (
	TypeAsset     AccountType = "ASSET"
	TypeUserAsset AccountType = "USER_ASSET"
	TypeBankAsset AccountType = "BANK_ASSET"
	TypeLiability AccountType = "LIABILITY"
	TypeExpense   AccountType = "EXPENSE"
	TypeRevenue   AccountType = "REVENUE"
)

// Account is a ledger account. Its balance is never stored; it is the
// sum of the signed amounts of all splits booked against it. For a
// user's asset account a positive balance means the user owes money.
type Account struct {
	ID   int64
	Name string
	Type AccountType
}

// Transaction is a double-entry transaction. The amounts of its splits
// always sum to exactly zero. Once confirmed it is immutable; it may
// only be deleted while unconfirmed.
type Transaction struct {
	ID          uuid.UUID
	Description string
	AuthorID    int64
	ValidOn     time.Time // date granularity
	PostedAt    time.Time
	Confirmed   bool
	Splits      []Split
}

// Split is one leg of a transaction, booked to exactly one account.
// Amounts are integer cents; positive is credit, negative is debit.
// A split never exists without its transaction.
type Split struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	AccountID     int64
	Amount        int64
}

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrUnbalanced       = errors.New("transaction is not balanced")
	ErrTooFewSplits     = errors.New("transaction must consist of at least two splits")
	ErrAlreadyConfirmed = errors.New("transaction already confirmed")
)

// Balanced reports whether the split amounts sum to zero.
func (t *Transaction) Balanced() bool {
	var sum int64
	for _, s := range t.Splits {
		sum += s.Amount
	}
	return sum == 0
}
