// Package interval implements half-open, closed and unbounded time
// intervals together with a normalized interval-set type. Memberships
// store their validity as one interval per row, so the merge and
// difference semantics here directly decide which rows get persisted.
package interval

import (
	"fmt"
	"time"
)

// Bound is one end of an interval: a point in time plus closedness, or
// one of the two infinities. An infinite bound is never closed.
type Bound struct {
	value  time.Time
	closed bool
	inf    int8 // -1 negative infinity, +1 positive infinity, 0 finite
}

// At returns a finite bound at v.
func At(v time.Time, closed bool) Bound {
	return Bound{value: v, closed: closed}
}

// NegInfinite returns the lower unbounded bound.
func NegInfinite() Bound { return Bound{inf: -1} }

// PosInfinite returns the upper unbounded bound.
func PosInfinite() Bound { return Bound{inf: 1} }

// Value returns the bound's point in time. ok is false for infinite bounds.
func (b Bound) Value() (v time.Time, ok bool) { return b.value, b.inf == 0 }

// Closed reports whether the bound includes its value.
func (b Bound) Closed() bool { return b.closed }

// Unbounded reports whether the bound is one of the two infinities.
func (b Bound) Unbounded() bool { return b.inf != 0 }

// invert flips the closedness of a finite bound.
func (b Bound) invert() Bound {
	if b.inf != 0 {
		return b
	}
	return Bound{value: b.value, closed: !b.closed}
}

// cmpValue orders bound values with -infinity before every finite value
// and +infinity after. Closedness is ignored.
func cmpValue(a, b Bound) int {
	switch {
	case a.inf != 0 || b.inf != 0:
		if a.inf == b.inf {
			return 0
		}
		if a.inf < b.inf {
			return -1
		}
		return 1
	case a.value.Before(b.value):
		return -1
	case a.value.After(b.value):
		return 1
	}
	return 0
}

// lessEq reports a <= b. Two finite bounds at the same value only
// satisfy it if both are closed; equal infinities always do.
func lessEq(a, b Bound) bool {
	if c := cmpValue(a, b); c != 0 {
		return c < 0
	}
	if a.inf != 0 {
		return true
	}
	return a.closed && b.closed
}

// less reports a < b, comparing values only.
func less(a, b Bound) bool { return cmpValue(a, b) < 0 }

// minBound and maxBound prefer the closed variant on value ties so
// joins never lose a point.
func minBound(a, b Bound) Bound {
	if less(b, a) {
		return b
	}
	if cmpValue(a, b) == 0 && b.closed {
		return b
	}
	return a
}

func maxBound(a, b Bound) Bound {
	if less(a, b) {
		return b
	}
	if cmpValue(a, b) == 0 && b.closed {
		return b
	}
	return a
}

// innerMinBound and innerMaxBound prefer the open variant on value
// ties: an intersection covers a boundary point only if both operands
// do.
func innerMinBound(a, b Bound) Bound {
	if less(b, a) {
		return b
	}
	if cmpValue(a, b) == 0 && !b.closed {
		return b
	}
	return a
}

func innerMaxBound(a, b Bound) Bound {
	if less(a, b) {
		return b
	}
	if cmpValue(a, b) == 0 && !b.closed {
		return b
	}
	return a
}

func (b Bound) boundary(open, closed byte) byte {
	if b.closed {
		return closed
	}
	return open
}

func (b Bound) label() string {
	if b.inf != 0 {
		return ""
	}
	return b.value.Format(time.RFC3339)
}

// Interval is a bounded or unbounded interval over time.Time.
// The zero value is the empty interval at the zero time.
type Interval struct {
	lower, upper Bound
}

// New builds an interval from explicit bounds. The lower bound must not
// be after the upper bound.
func New(lower, upper Bound) (Interval, error) {
	if less(upper, lower) {
		return Interval{}, fmt.Errorf("interval: lower bound %s after upper bound %s",
			lower.label(), upper.label())
	}
	return Interval{lower: lower, upper: upper}, nil
}

func mustNew(lower, upper Bound) Interval {
	iv, err := New(lower, upper)
	if err != nil {
		panic(err)
	}
	return iv
}

// Closed returns [begin, end].
func Closed(begin, end time.Time) Interval {
	return mustNew(At(begin, true), At(end, true))
}

// ClosedOpen returns [begin, end).
func ClosedOpen(begin, end time.Time) Interval {
	return mustNew(At(begin, true), At(end, false))
}

// OpenClosed returns (begin, end].
func OpenClosed(begin, end time.Time) Interval {
	return mustNew(At(begin, false), At(end, true))
}

// Open returns (begin, end).
func Open(begin, end time.Time) Interval {
	return mustNew(At(begin, false), At(end, false))
}

// ClosedDates returns the interval covering every instant of the days
// from begin through end inclusive, i.e. [begin, end+24h). Date ranges
// expressed this way abut seamlessly: January ending on the 31st meets
// an interval starting February 1st, so the two merge.
func ClosedDates(begin, end time.Time) Interval {
	return mustNew(At(begin, true), At(end.AddDate(0, 0, 1), false))
}

// Single returns the interval containing exactly one point.
func Single(p time.Time) Interval {
	return mustNew(At(p, true), At(p, true))
}

// From returns [begin, +inf).
func From(begin time.Time) Interval {
	return mustNew(At(begin, true), PosInfinite())
}

// Until returns (-inf, end).
func Until(end time.Time) Interval {
	return mustNew(NegInfinite(), At(end, false))
}

// Unbounded returns (-inf, +inf).
func Unbounded() Interval {
	return Interval{lower: NegInfinite(), upper: PosInfinite()}
}

// Lower returns the lower bound.
func (iv Interval) Lower() Bound { return iv.lower }

// Upper returns the upper bound.
func (iv Interval) Upper() Bound { return iv.upper }

// Begin returns the lower bound value; ok is false if unbounded below.
func (iv Interval) Begin() (time.Time, bool) { return iv.lower.Value() }

// End returns the upper bound value; ok is false if unbounded above.
func (iv Interval) End() (time.Time, bool) { return iv.upper.Value() }

// Empty reports whether the interval contains no points.
func (iv Interval) Empty() bool {
	return cmpValue(iv.lower, iv.upper) == 0 &&
		iv.lower.inf == 0 &&
		!(iv.lower.closed && iv.upper.closed)
}

// Equal reports exact equality of both bounds.
func (iv Interval) Equal(other Interval) bool {
	return iv.lower == other.lower && iv.upper == other.upper
}

// Contains reports whether the point lies within the interval.
func (iv Interval) Contains(p time.Time) bool {
	b := At(p, true)
	return lessEq(iv.lower, b) && lessEq(b, iv.upper)
}

// Overlaps reports whether both intervals share at least one point.
func (iv Interval) Overlaps(other Interval) bool {
	return lessEq(iv.lower, other.upper) && lessEq(other.lower, iv.upper)
}

// StrictlyOverlaps reports whether the interiors of both intervals
// share a point, so touching boundaries do not count.
func (iv Interval) StrictlyOverlaps(other Interval) bool {
	return less(iv.lower, other.upper) && less(other.lower, iv.upper)
}

// Meets reports whether the intervals abut without a gap: the first
// ends exactly where the second begins and at least one of the two
// touching bounds covers that point.
func (iv Interval) Meets(other Interval) bool {
	return cmpValue(iv.upper, other.lower) == 0 &&
		iv.upper.inf == 0 &&
		(iv.upper.closed || other.lower.closed)
}

// Intersect returns the common part of both intervals.
// ok is false if they do not overlap.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	if !iv.Overlaps(other) {
		return Interval{}, false
	}
	return Interval{
		lower: innerMaxBound(iv.lower, other.lower),
		upper: innerMinBound(iv.upper, other.upper),
	}, true
}

// Join returns the union of two intervals that overlap or meet.
// ok is false if joining them would leave a gap.
func (iv Interval) Join(other Interval) (Interval, bool) {
	if !iv.Overlaps(other) && !iv.Meets(other) && !other.Meets(iv) {
		return Interval{}, false
	}
	return Interval{
		lower: minBound(iv.lower, other.lower),
		upper: maxBound(iv.upper, other.upper),
	}, true
}

// Closure drops the open/closed distinction, returning the closed
// variant of the interval.
func (iv Interval) Closure() Interval {
	lower, upper := iv.lower, iv.upper
	if lower.inf == 0 {
		lower.closed = true
	}
	if upper.inf == 0 {
		upper.closed = true
	}
	return Interval{lower: lower, upper: upper}
}

// String renders the interval in range notation, e.g. [2024-01-01T00:00:00Z,).
func (iv Interval) String() string {
	return fmt.Sprintf("%c%s,%s%c",
		iv.lower.boundary('(', '['), iv.lower.label(),
		iv.upper.label(), iv.upper.boundary(')', ']'))
}
