package interval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhellwig/dormnet/internal/interval"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestInterval_Contains(t *testing.T) {
	tests := []struct {
		name string
		iv   interval.Interval
		p    time.Time
		want bool
	}{
		{"ClosedIncludesLower", interval.Closed(day(1), day(10)), day(1), true},
		{"ClosedIncludesUpper", interval.Closed(day(1), day(10)), day(10), true},
		{"ClosedIncludesInner", interval.Closed(day(1), day(10)), day(5), true},
		{"ClosedExcludesOutside", interval.Closed(day(1), day(10)), day(11), false},
		{"OpenExcludesLower", interval.Open(day(1), day(10)), day(1), false},
		{"ClosedOpenExcludesUpper", interval.ClosedOpen(day(1), day(10)), day(10), false},
		{"OpenClosedExcludesLower", interval.OpenClosed(day(1), day(10)), day(1), false},
		{"SingleContainsPoint", interval.Single(day(3)), day(3), true},
		{"SingleExcludesOther", interval.Single(day(3)), day(4), false},
		{"FromIncludesFarFuture", interval.From(day(1)), day(31), true},
		{"FromExcludesPast", interval.From(day(5)), day(4), false},
		{"UntilIncludesPast", interval.Until(day(5)), day(1), true},
		{"UntilExcludesEnd", interval.Until(day(5)), day(5), false},
		{"UnboundedContainsEverything", interval.Unbounded(), day(15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.iv.Contains(tt.p))
		})
	}
}

func TestInterval_Empty(t *testing.T) {
	assert.True(t, interval.Open(day(5), day(5)).Empty())
	assert.True(t, interval.ClosedOpen(day(5), day(5)).Empty())
	assert.False(t, interval.Single(day(5)).Empty())
	assert.False(t, interval.Closed(day(1), day(2)).Empty())
}

func TestInterval_StrictlyOverlaps(t *testing.T) {
	assert.True(t, interval.Closed(day(1), day(5)).StrictlyOverlaps(interval.Closed(day(3), day(9))))
	assert.False(t, interval.Closed(day(1), day(5)).StrictlyOverlaps(interval.Closed(day(5), day(9))))
	assert.True(t, interval.Closed(day(1), day(5)).Overlaps(interval.Closed(day(5), day(9))))
}

func TestInterval_Meets(t *testing.T) {
	tests := []struct {
		name string
		a, b interval.Interval
		want bool
	}{
		{"ClosedOpenMeetsClosed", interval.ClosedOpen(day(1), day(5)), interval.Closed(day(5), day(9)), true},
		{"ClosedMeetsOpenClosed", interval.Closed(day(1), day(5)), interval.OpenClosed(day(5), day(9)), true},
		{"OpenNeverMeetsOpen", interval.ClosedOpen(day(1), day(5)), interval.OpenClosed(day(5), day(9)), false},
		{"GapDoesNotMeet", interval.Closed(day(1), day(4)), interval.Closed(day(5), day(9)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Meets(tt.b))
		})
	}
}

func TestInterval_Join(t *testing.T) {
	joined, ok := interval.ClosedOpen(day(1), day(5)).Join(interval.Closed(day(5), day(9)))
	require.True(t, ok)
	assert.True(t, joined.Equal(interval.Closed(day(1), day(9))))

	_, ok = interval.Closed(day(1), day(3)).Join(interval.Closed(day(5), day(9)))
	assert.False(t, ok)
}

func TestInterval_Intersect(t *testing.T) {
	common, ok := interval.Closed(day(1), day(6)).Intersect(interval.Closed(day(4), day(9)))
	require.True(t, ok)
	assert.True(t, common.Equal(interval.Closed(day(4), day(6))))

	_, ok = interval.ClosedOpen(day(1), day(4)).Intersect(interval.ClosedOpen(day(4), day(9)))
	assert.False(t, ok)

	// On boundary value ties the open bound wins: a point belongs to
	// the intersection only if both operands cover it.
	common, ok = interval.Closed(day(1), day(5)).Intersect(interval.Until(day(5)))
	require.True(t, ok)
	assert.True(t, common.Equal(interval.ClosedOpen(day(1), day(5))))

	common, ok = interval.Closed(day(5), day(9)).Intersect(interval.Open(day(5), day(12)))
	require.True(t, ok)
	assert.True(t, common.Equal(interval.OpenClosed(day(5), day(9))))

	common, ok = interval.Closed(day(1), day(5)).Intersect(interval.Closed(day(5), day(9)))
	require.True(t, ok)
	assert.True(t, common.Equal(interval.Single(day(5))))
}

func TestInterval_Closure(t *testing.T) {
	assert.True(t, interval.Open(day(1), day(5)).Closure().Equal(interval.Closed(day(1), day(5))))

	// Infinite bounds stay open.
	got := interval.From(day(1)).Closure()
	assert.True(t, got.Equal(interval.From(day(1))))
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "[2024-01-01T00:00:00Z,2024-01-05T00:00:00Z)",
		interval.ClosedOpen(day(1), day(5)).String())
	assert.Equal(t, "[2024-01-01T00:00:00Z,)", interval.From(day(1)).String())
	assert.Equal(t, "(,)", interval.Unbounded().String())
}

func TestSet_Normalization(t *testing.T) {
	tests := []struct {
		name string
		in   []interval.Interval
		want []interval.Interval
	}{
		{
			"OverlappingMerge",
			[]interval.Interval{interval.Closed(day(1), day(5)), interval.Closed(day(3), day(9))},
			[]interval.Interval{interval.Closed(day(1), day(9))},
		},
		{
			"AbuttingMerge",
			[]interval.Interval{interval.ClosedOpen(day(1), day(5)), interval.ClosedOpen(day(5), day(9))},
			[]interval.Interval{interval.ClosedOpen(day(1), day(9))},
		},
		{
			"DisjointKept",
			[]interval.Interval{interval.Closed(day(6), day(9)), interval.Closed(day(1), day(3))},
			[]interval.Interval{interval.Closed(day(1), day(3)), interval.Closed(day(6), day(9))},
		},
		{
			"EmptyDropped",
			[]interval.Interval{interval.Open(day(2), day(2)), interval.Closed(day(4), day(5))},
			[]interval.Interval{interval.Closed(day(4), day(5))},
		},
		{
			"OpenBoundariesNotMerged",
			[]interval.Interval{interval.ClosedOpen(day(1), day(5)), interval.OpenClosed(day(5), day(9))},
			[]interval.Interval{interval.ClosedOpen(day(1), day(5)), interval.OpenClosed(day(5), day(9))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interval.NewSet(tt.in...).Intervals()
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, got[i].Equal(tt.want[i]), "interval %d: got %s want %s", i, got[i], tt.want[i])
			}
		})
	}
}

// Union must behave pointwise: a point is in the union iff it is in
// either operand.
func TestSet_UnionPointwise(t *testing.T) {
	ivs := []interval.Interval{
		interval.Closed(day(1), day(5)),
		interval.ClosedOpen(day(4), day(8)),
		interval.OpenClosed(day(8), day(12)),
		interval.Single(day(20)),
		interval.From(day(25)),
	}

	for i, a := range ivs {
		for j, b := range ivs {
			u := interval.NewSet(a).Union(interval.NewSet(b))
			for d := 1; d <= 31; d++ {
				p := day(d)
				assert.Equal(t, a.Contains(p) || b.Contains(p), u.Contains(p),
					"ivs[%d] ∪ ivs[%d] at %s", i, j, p)
			}
		}
	}
}

func TestSet_Difference(t *testing.T) {
	base := interval.NewSet(interval.Closed(day(1), day(10)))

	t.Run("SplitsIntoTwo", func(t *testing.T) {
		got := base.DifferenceInterval(interval.Closed(day(4), day(6))).Intervals()
		require.Len(t, got, 2)
		assert.True(t, got[0].Equal(interval.ClosedOpen(day(1), day(4))))
		assert.True(t, got[1].Equal(interval.OpenClosed(day(6), day(10))))
	})

	t.Run("RemovesTail", func(t *testing.T) {
		got := base.DifferenceInterval(interval.From(day(6))).Intervals()
		require.Len(t, got, 1)
		assert.True(t, got[0].Equal(interval.ClosedOpen(day(1), day(6))))
	})

	t.Run("RemovesEverything", func(t *testing.T) {
		assert.True(t, base.DifferenceInterval(interval.Unbounded()).Empty())
	})

	// A removal whose boundary coincides with a stored closed bound
	// must still take that point away.
	t.Run("RemovalEndsAtStoredStart", func(t *testing.T) {
		got := interval.NewSet(interval.Closed(day(5), day(9))).
			DifferenceInterval(interval.Closed(day(1), day(5)))
		assert.False(t, got.Contains(day(5)))
		require.Len(t, got.Intervals(), 1)
		assert.True(t, got.Intervals()[0].Equal(interval.OpenClosed(day(5), day(9))))
	})

	t.Run("RemovalStartsAtStoredEnd", func(t *testing.T) {
		got := interval.NewSet(interval.Closed(day(1), day(5))).
			DifferenceInterval(interval.Closed(day(5), day(10)))
		assert.False(t, got.Contains(day(5)))
		require.Len(t, got.Intervals(), 1)
		assert.True(t, got.Intervals()[0].Equal(interval.ClosedOpen(day(1), day(5))))
	})
}

func TestSet_Complement(t *testing.T) {
	s := interval.NewSet(interval.Closed(day(3), day(5)))
	got := s.Complement().Intervals()
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(interval.Until(day(3))))
	for d := 1; d <= 10; d++ {
		assert.Equal(t, !s.Contains(day(d)), s.Complement().Contains(day(d)))
	}
}

func TestSet_ContainsEmptySet(t *testing.T) {
	var s interval.Set
	assert.True(t, s.Empty())
	assert.False(t, s.Contains(day(1)))
	assert.True(t, s.Complement().Contains(day(1)))
}
