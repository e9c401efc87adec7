// Package fee posts the recurring membership fee to every user account
// that owes it for a given fee period. Eligibility is decided per
// period from the membership_fee property and the absence of an
// existing fee booking, so running a posting twice is harmless.
package fee

import (
	"errors"
	"time"
)

var (
	ErrNoFeeForDate = errors.New("no membership fee covers the date")
	ErrAmbiguousFee = errors.New("multiple membership fees cover the date")
)

// MembershipFee is one fee period. BeginsOn/EndsOn are dates; the
// booking offsets and deadlines are day counts relative to the period.
type MembershipFee struct {
	ID                   int64
	Name                 string
	BeginsOn             time.Time
	EndsOn               time.Time
	BookingBegin         int
	BookingEnd           int
	RegularFee           int64
	ReducedFee           int64
	PaymentDeadline      int
	PaymentDeadlineFinal int
	GracePeriod          int
	AllowedOverdraft     int64
}

// Candidate is a user as the store sees them: account plus the fee
// accounts of the building they lived in at the period's end and begin.
// Either building account is nil for users without a room at that time.
type Candidate struct {
	UserID          int64
	Name            string
	AccountID       int64
	FeeAccountEnd   *int64
	FeeAccountBegin *int64
}

// AffectedUser is one user a posting run will charge (or, when
// simulating, would charge).
type AffectedUser struct {
	UserID       int64
	Name         string
	AccountID    int64
	FeeAccountID int64
}
