package interval

import (
	"sort"
	"strings"
	"time"
)

// Set is an ordered collection of disjoint intervals. It is always
// normalized: intervals are sorted ascending by lower bound and no two
// stored intervals overlap or meet (they would have been joined).
// The zero value is the empty set.
type Set struct {
	ivs []Interval
}

// NewSet normalizes the given intervals into a set: empty intervals are
// dropped, the rest are sorted and joined wherever they overlap or meet.
func NewSet(ivs ...Interval) Set {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.Empty() {
			sorted = append(sorted, iv)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := cmpLower(sorted[i].lower, sorted[j].lower); c != 0 {
			return c < 0
		}
		return less(sorted[i].upper, sorted[j].upper)
	})
	return Set{ivs: join(sorted)}
}

// cmpLower orders lower bounds; on value ties a closed bound starts earlier.
func cmpLower(a, b Bound) int {
	if c := cmpValue(a, b); c != 0 {
		return c
	}
	switch {
	case a.closed == b.closed:
		return 0
	case a.closed:
		return -1
	}
	return 1
}

// join merges a sorted slice of non-empty intervals.
func join(sorted []Interval) []Interval {
	if len(sorted) == 0 {
		return nil
	}
	out := make([]Interval, 0, len(sorted))
	top := sorted[0]
	for _, iv := range sorted[1:] {
		joined, ok := top.Join(iv)
		if !ok || joined.Empty() {
			out = append(out, top)
			top = iv
			continue
		}
		top = joined
	}
	return append(out, top)
}

// Intervals returns the stored intervals in ascending order.
func (s Set) Intervals() []Interval {
	out := make([]Interval, len(s.ivs))
	copy(out, s.ivs)
	return out
}

// Len returns the number of disjoint intervals.
func (s Set) Len() int { return len(s.ivs) }

// Empty reports whether the set contains no intervals.
func (s Set) Empty() bool { return len(s.ivs) == 0 }

// Contains reports whether any interval of the set contains the point.
func (s Set) Contains(p time.Time) bool {
	for _, iv := range s.ivs {
		if iv.Contains(p) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets store the same intervals.
func (s Set) Equal(other Set) bool {
	if len(s.ivs) != len(other.ivs) {
		return false
	}
	for i, iv := range s.ivs {
		if !iv.Equal(other.ivs[i]) {
			return false
		}
	}
	return true
}

// Union returns the set covering every point of either set.
func (s Set) Union(other Set) Set {
	merged := make([]Interval, 0, len(s.ivs)+len(other.ivs))
	merged = append(merged, s.ivs...)
	merged = append(merged, other.ivs...)
	return NewSet(merged...)
}

// UnionInterval is shorthand for Union with a single interval.
func (s Set) UnionInterval(iv Interval) Set {
	return s.Union(NewSet(iv))
}

// Complement returns the set covering exactly the points not in s.
func (s Set) Complement() Set {
	if len(s.ivs) == 0 {
		return Set{ivs: []Interval{Unbounded()}}
	}
	var out []Interval
	first := s.ivs[0]
	if !first.lower.Unbounded() {
		out = append(out, Interval{lower: NegInfinite(), upper: first.lower.invert()})
	}
	for i := 0; i+1 < len(s.ivs); i++ {
		gap := Interval{
			lower: s.ivs[i].upper.invert(),
			upper: s.ivs[i+1].lower.invert(),
		}
		if !gap.Empty() {
			out = append(out, gap)
		}
	}
	last := s.ivs[len(s.ivs)-1]
	if !last.upper.Unbounded() {
		out = append(out, Interval{lower: last.upper.invert(), upper: PosInfinite()})
	}
	return Set{ivs: out}
}

// Intersect returns the set covering the points present in both sets.
func (s Set) Intersect(other Set) Set {
	var out []Interval
	i, j := 0, 0
	for i < len(s.ivs) && j < len(other.ivs) {
		if common, ok := s.ivs[i].Intersect(other.ivs[j]); ok && !common.Empty() {
			out = append(out, common)
		}
		if less(s.ivs[i].upper, other.ivs[j].upper) {
			i++
		} else {
			j++
		}
	}
	return Set{ivs: out}
}

// Difference returns the set covering the points of s not in other.
func (s Set) Difference(other Set) Set {
	return s.Intersect(other.Complement())
}

// DifferenceInterval is shorthand for Difference with a single interval.
func (s Set) DifferenceInterval(iv Interval) Set {
	return s.Difference(NewSet(iv))
}

func (s Set) String() string {
	parts := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		parts[i] = iv.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
