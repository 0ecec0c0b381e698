package core

import (
	"math"
	"sort"
)

// ActiveWindow reports whether b is live at instant t and, if so, the
// offset-relative window it occupies there. A buffer is
// live whenever t falls inside its Lifespan and outside every full gap
// (Window == nil). Inside a windowed gap the buffer is live but narrowed to
// that gap's Window; everywhere else it occupies its full [0, Size) extent.
func ActiveWindow(b Buffer, t int32) (Interval, bool) {
	if !b.Lifespan.Contains(t) {
		return Interval{}, false
	}
	for _, g := range b.Gaps {
		if g.Lifespan.Contains(t) {
			if g.Window == nil {
				return Interval{}, false
			}

			return *g.Window, true
		}
	}

	return Interval{Lower: 0, Upper: b.Size}, true
}

// EffectiveSize computes the size `a` reserves against `b`:
// the length of the smallest interval enclosing every window `a` occupies
// while both a and b are simultaneously live. It returns (0, false) when a
// and b can never be live at the same instant (their lifespans don't
// overlap, or the overlap is entirely covered by one buffer's full gaps).
//
// The function is symmetric in existence (conflict vs. no conflict) but not
// in value: EffectiveSize(a, b) and EffectiveSize(b, a) generally differ,
// since each reports its *first* argument's reserved extent.
func EffectiveSize(a, b Buffer) (int32, bool) {
	overlap, ok := a.Lifespan.Intersect(b.Lifespan)
	if !ok {
		return 0, false
	}

	breakpoints := Breakpoints(overlap, a, b)

	var (
		minLower int32 = math.MaxInt32
		maxUpper int32 = math.MinInt32
		found    bool
	)
	for i := 0; i+1 < len(breakpoints); i++ {
		lo, hi := breakpoints[i], breakpoints[i+1]
		if lo >= hi {
			continue
		}
		// Gaps were validated disjoint and nested at construction, so the
		// live/window state is constant across [lo, hi); lo is a valid
		// representative instant for the whole segment.
		wa, liveA := ActiveWindow(a, lo)
		_, liveB := ActiveWindow(b, lo)
		if !liveA || !liveB {
			continue
		}
		found = true
		if wa.Lower < minLower {
			minLower = wa.Lower
		}
		if wa.Upper > maxUpper {
			maxUpper = wa.Upper
		}
	}
	if !found {
		return 0, false
	}

	return maxUpper - minLower, true
}

// EffectiveDuration returns b's total live duration: its lifespan length
// minus every full gap's length. Windowed gaps narrow the occupied window
// but do not stop the buffer being live, so they don't subtract from the
// duration.
func EffectiveDuration(b Buffer) int32 {
	total := b.Lifespan.Duration()
	for _, g := range b.Gaps {
		if g.Window == nil {
			total -= g.Lifespan.Duration()
		}
	}

	return total
}

// Conflicts reports whether a (placed at offA) and b (placed at offB)
// occupy overlapping memory at any instant they are both live. Unlike
// EffectiveSize, which returns a single conservative reservation size for
// bookkeeping against not-yet-placed buffers, this performs the precise
// per-instant check needed once both offsets are fixed.
func Conflicts(a Buffer, offA int32, b Buffer, offB int32) bool {
	overlap, ok := a.Lifespan.Intersect(b.Lifespan)
	if !ok {
		return false
	}

	breakpoints := Breakpoints(overlap, a, b)
	for i := 0; i+1 < len(breakpoints); i++ {
		lo, hi := breakpoints[i], breakpoints[i+1]
		if lo >= hi {
			continue
		}
		wa, liveA := ActiveWindow(a, lo)
		wb, liveB := ActiveWindow(b, lo)
		if !liveA || !liveB {
			continue
		}
		ra := Interval{Lower: offA + wa.Lower, Upper: offA + wa.Upper}
		rb := Interval{Lower: offB + wb.Lower, Upper: offB + wb.Upper}
		if ra.Overlaps(rb) {
			return true
		}
	}

	return false
}

// Breakpoints returns the sorted, deduplicated set of instants where either
// buffer's live/window state can change within overlap: overlap's own
// bounds plus every gap boundary of a and b that falls strictly inside it.
// Consecutive breakpoints bound a maximal segment over which both buffers'
// live/window state is constant, so any instant in [breakpoints[i],
// breakpoints[i+1]) is a valid representative for the whole segment.
func Breakpoints(overlap Interval, a, b Buffer) []int32 {
	pts := map[int32]struct{}{overlap.Lower: {}, overlap.Upper: {}}
	add := func(v int32) {
		if v > overlap.Lower && v < overlap.Upper {
			pts[v] = struct{}{}
		}
	}
	for _, g := range a.Gaps {
		add(g.Lifespan.Lower)
		add(g.Lifespan.Upper)
	}
	for _, g := range b.Gaps {
		add(g.Lifespan.Lower)
		add(g.Lifespan.Upper)
	}

	out := make([]int32, 0, len(pts))
	for v := range pts {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
