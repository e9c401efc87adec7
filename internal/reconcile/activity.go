// Package reconcile mirrors bank account statements into the ledger's
// activity table and matches unreconciled activities to users and team
// accounts. Imports are checksummed end to end: the computed balance
// after applying a statement must equal the balance the bank reports.
package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyStatement = errors.New("statement contains no records")
	ErrUnordered      = errors.New("records are not in descending valid date order")
)

// Activity is one persisted bank statement line. TransactionID is nil
// while the activity has not been reconciled against a ledger
// transaction.
type Activity struct {
	ID                 uuid.UUID
	BankAccountID      int64
	Amount             int64
	Reference          string
	OriginalReference  string
	OtherName          string
	OtherAccountNumber string
	OtherRoutingNumber string
	PostedOn           time.Time // date granularity
	ValidOn            time.Time // date granularity
	ImportedAt         time.Time
	TransactionID      *uuid.UUID
}

// MatchingPattern links a reference regex to a team account. Activities
// whose reference matches the pattern are proposed for that account.
type MatchingPattern struct {
	ID        int64
	Pattern   string
	AccountID int64
}

// RecordError reports a malformed statement record. Index is 1-based
// and counts the header; Raw is the record re-serialized in the
// statement dialect.
type RecordError struct {
	Index int
	Raw   string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v: %s", e.Index, e.Err, strings.TrimRight(e.Raw, "\n"))
}

func (e *RecordError) Unwrap() error { return e.Err }

// ConflictError reports a span where the statement and the stored
// mirror disagree. Both sides are surfaced for manual resolution; the
// import as a whole is aborted.
type ConflictError struct {
	Persisted []*Activity
	Imported  []*Activity
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("import conflict:\nstored bank account activities:\n")
	for _, a := range e.Persisted {
		fmt.Fprintf(&b, "  %s\n", formatActivity(a))
	}
	b.WriteString("statement bank account activities:\n")
	for _, a := range e.Imported {
		fmt.Fprintf(&b, "  %s\n", formatActivity(a))
	}
	return b.String()
}

func formatActivity(a *Activity) string {
	return fmt.Sprintf("%s %s %+d %q (%s)",
		a.PostedOn.Format(time.DateOnly), a.ValidOn.Format(time.DateOnly),
		a.Amount, a.Reference, a.OtherName)
}

// BalanceMismatchError reports that applying the statement does not
// reproduce the balance the bank states.
type BalanceMismatchError struct {
	Computed int64
	Expected int64
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("balance after import does not equal expected balance: %d != %d",
		e.Computed, e.Expected)
}
