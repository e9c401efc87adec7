package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/interval"
)

// Group is a property group users can be members of during an interval.
type Group struct {
	ID              int64
	Name            string
	PermissionLevel int
}

// Actor identifies the user performing a change, together with the
// permission level that gates group modifications.
type Actor struct {
	ID              int64
	PermissionLevel int
}

// Membership states that a user belongs to a group during an interval.
// Rows are never edited in place: a coverage change deletes the
// superseded rows and inserts the newly computed interval set. The
// engine guarantees that at any instant at most one row per
// (user, group) covers that instant.
type Membership struct {
	ID           uuid.UUID
	UserID       int64
	GroupID      int64
	ActiveDuring interval.Interval
}

// Properties granted through group membership that the engine cares about.
const (
	PropertyMembershipFee    = "membership_fee"
	PropertyPaymentInDefault = "payment_in_default"
	PropertyMember           = "member"
)

var ErrPermissionDenied = errors.New("insufficient permission level for group")

// PropertyEvaluator answers whether a named property is granted to a
// user at a given instant. It is a pure boolean oracle; property
// resolution itself lives outside the engine.
type PropertyEvaluator interface {
	Evaluate(ctx context.Context, userID int64, property string, at time.Time) (bool, error)
}
