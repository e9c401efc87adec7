// Package arrears drives the payment-in-default workflow. A user's
// state (ok, flagged, terminated) is never stored; it is recomputed on
// every run from their balance history and the fee period's deadlines.
package arrears

import (
	"errors"
	"sort"
	"time"
)

var ErrNoFee = errors.New("no membership fee available")

// Defaulter is a user with a positive balance on their asset account.
// InDefaultDays and PaymentDeadlineFinal are filled during
// classification and carried along so applying the outcome does not
// recompute them.
type Defaulter struct {
	UserID               int64
	Name                 string
	Email                string
	AccountID            int64
	Balance              int64
	InDefaultDays        int
	PaymentDeadlineFinal int
}

// Classification is the outcome of one arrears run. The two sets are
// disjoint: a user flagged in this run is never terminated in the same
// run.
type Classification struct {
	Flag      []*Defaulter
	Terminate []*Defaulter
}

// BalanceEntry is one split on a user account, dated for the running
// balance computation.
type BalanceEntry struct {
	ValidOn  time.Time
	PostedAt time.Time
	Amount   int64
}

// InDefaultDays returns how many days the account's running balance has
// been positive without interruption: the entries are replayed in value
// date order and the last transition from non-positive to positive
// marks the start of the arrears. An account whose final balance is not
// positive is not in default at all.
func InDefaultDays(entries []*BalanceEntry, now time.Time) int {
	sorted := make([]*BalanceEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ValidOn.Equal(sorted[j].ValidOn) {
			return sorted[i].ValidOn.Before(sorted[j].ValidOn)
		}
		return sorted[i].PostedAt.Before(sorted[j].PostedAt)
	})

	var (
		balance int64
		since   time.Time
	)

	for _, e := range sorted {
		wasPositive := balance > 0
		balance += e.Amount
		if balance > 0 && !wasPositive {
			since = e.ValidOn
		}
	}

	if balance <= 0 {
		return 0
	}

	days := int(now.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}
