package sweep

import (
	"sort"

	"github.com/google/minimalloc/core"
)

// segment is one maximal gap-free run of a buffer's own timeline: either
// its full [0, Size) extent between gaps, or a windowed gap's narrower
// window. A buffer with no gaps has exactly one segment.
type segment struct {
	Span   core.Interval
	Window core.Interval
}

// activeSegments returns b's timeline split at every gap boundary. Full
// gaps (Window == nil) simply remove their sub-range; windowed gaps keep a
// segment of their own, narrowed to Window. Buffer gaps are validated
// sorted and disjoint at construction (core.NewBuffer), so a single forward
// pass suffices.
func activeSegments(b core.Buffer) []segment {
	segs := make([]segment, 0, len(b.Gaps)+1)
	full := core.Interval{Lower: 0, Upper: b.Size}
	cursor := b.Lifespan.Lower

	for _, g := range b.Gaps {
		if cursor < g.Lifespan.Lower {
			segs = append(segs, segment{Span: core.Interval{Lower: cursor, Upper: g.Lifespan.Lower}, Window: full})
		}
		if g.Window != nil {
			segs = append(segs, segment{Span: g.Lifespan, Window: *g.Window})
		}
		cursor = g.Lifespan.Upper
	}
	if cursor < b.Lifespan.Upper {
		segs = append(segs, segment{Span: core.Interval{Lower: cursor, Upper: b.Lifespan.Upper}, Window: full})
	}

	return segs
}

// buildPoints emits the sorted SweepPoint sequence for every buffer's
// active segments: one Left/Right pair per segment, Endpoint
// set only where the point coincides with the buffer's outer Lifespan
// bound. Ordering: time ascending; Right before Left at equal time; buffer
// index ascending within equal (time, kind).
func buildPoints(p *core.Problem) []SweepPoint {
	var points []SweepPoint
	for i, b := range p.Buffers {
		for _, seg := range activeSegments(b) {
			points = append(points,
				SweepPoint{
					BufferIdx: i,
					Time:      seg.Span.Lower,
					Kind:      Left,
					Window:    seg.Window,
					Endpoint:  seg.Span.Lower == b.Lifespan.Lower,
				},
				SweepPoint{
					BufferIdx: i,
					Time:      seg.Span.Upper,
					Kind:      Right,
					Window:    seg.Window,
					Endpoint:  seg.Span.Upper == b.Lifespan.Upper,
				},
			)
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.Kind != b.Kind {
			return a.Kind == Right // Right sorts before Left
		}

		return a.BufferIdx < b.BufferIdx
	})

	return points
}

// buildSections folds the sorted point sequence into Sections: it tracks
// the live-buffer set as points are applied and emits one Section per
// maximal run between distinct times where that set is non-empty.
func buildSections(points []SweepPoint) []Section {
	if len(points) == 0 {
		return nil
	}

	times := distinctTimes(points)
	live := make(map[int]core.Interval)
	sections := make([]Section, 0, len(times))

	idx := 0
	for k, t := range times {
		for idx < len(points) && points[idx].Time == t {
			pt := points[idx]
			if pt.Kind == Right {
				delete(live, pt.BufferIdx)
			} else {
				live[pt.BufferIdx] = pt.Window
			}
			idx++
		}
		if k+1 < len(times) && len(live) > 0 {
			ids := make([]int, 0, len(live))
			for b := range live {
				ids = append(ids, b)
			}
			sortInts(ids)
			sections = append(sections, Section{
				Range: core.Interval{Lower: t, Upper: times[k+1]},
				Live:  ids,
			})
		}
	}

	return sections
}

func distinctTimes(points []SweepPoint) []int32 {
	seen := make(map[int32]struct{}, len(points))
	for _, p := range points {
		seen[p.Time] = struct{}{}
	}
	out := make([]int32, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// buildSectionSpans maps each buffer's own active segments onto the
// contiguous run of global section indices they occupy. Because section
// boundaries are a superset of every buffer's own segment boundaries, each
// segment's [Span.Lower, Span.Upper) aligns exactly with a contiguous,
// non-empty run of sections.
func buildSectionSpans(p *core.Problem, sections []Section) [][]SectionSpan {
	startIdx := make(map[int32]int, len(sections))
	for i, s := range sections {
		startIdx[s.Range.Lower] = i
	}

	spans := make([][]SectionSpan, len(p.Buffers))
	for i, b := range p.Buffers {
		for _, seg := range activeSegments(b) {
			first, ok := startIdx[seg.Span.Lower]
			if !ok {
				// Degenerate segment (e.g. a gap immediately abutting
				// another) with no live section; nothing to record.
				continue
			}
			last := first
			for last < len(sections) && sections[last].Range.Upper < seg.Span.Upper {
				last++
			}
			spans[i] = append(spans[i], SectionSpan{
				SectionRange: core.Interval{Lower: int32(first), Upper: int32(last + 1)},
				Window:       seg.Window,
			})
		}
	}

	return spans
}

// buildOverlaps computes, for every pair of buffers that co-occupy at least
// one section, the effective size each reserves against the other, reported
// symmetrically under both buffers.
func buildOverlaps(p *core.Problem, sections []Section) [][]Overlap {
	n := len(p.Buffers)
	seen := make(map[[2]int]struct{})
	overlaps := make([][]Overlap, n)

	for _, s := range sections {
		for a := 0; a < len(s.Live); a++ {
			for b := a + 1; b < len(s.Live); b++ {
				i, j := s.Live[a], s.Live[b]
				if i > j {
					i, j = j, i
				}
				key := [2]int{i, j}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				sizeIJ, okIJ := core.EffectiveSize(p.Buffers[i], p.Buffers[j])
				sizeJI, okJI := core.EffectiveSize(p.Buffers[j], p.Buffers[i])
				if okIJ {
					overlaps[j] = append(overlaps[j], Overlap{J: i, EffectiveSize: sizeIJ})
				}
				if okJI {
					overlaps[i] = append(overlaps[i], Overlap{J: j, EffectiveSize: sizeJI})
				}
			}
		}
	}

	for i := range overlaps {
		sort.Slice(overlaps[i], func(a, b int) bool { return overlaps[i][a].J < overlaps[i][b].J })
	}

	return overlaps
}

// calculateCuts computes, for each inner section boundary, the number of
// buffers live in both sides. A zero entry marks a partition break: no
// buffer straddles that boundary.
func calculateCuts(sections []Section) []int {
	if len(sections) < 2 {
		return nil
	}
	cuts := make([]int, len(sections)-1)
	for k := 0; k < len(sections)-1; k++ {
		cuts[k] = countShared(sections[k].Live, sections[k+1].Live)
	}

	return cuts
}

// countShared counts the intersection size of two sorted, deduplicated
// index slices.
func countShared(a, b []int) int {
	i, j, count := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	return count
}

// Sweep runs the full sweep-line analysis over p, building Sections,
// Partitions, SectionSpans, and Overlaps in one line sweep over buffer
// endpoints and gap boundaries. The result is immutable and may
// be shared across repeated solver invocations on the same Problem.
func Sweep(p *core.Problem) *Result {
	points := buildPoints(p)
	sections := buildSections(points)
	cuts := calculateCuts(sections)

	return &Result{
		Points:          points,
		Sections:        sections,
		Partitions:      buildPartitions(sections, cuts),
		SectionSpans:    buildSectionSpans(p, sections),
		Overlaps:        buildOverlaps(p, sections),
		BoundaryOverlap: cuts,
	}
}

func sectionIndexRange(lo, hi int) core.Interval {
	return core.Interval{Lower: int32(lo), Upper: int32(hi)}
}

func sortInts(s []int) {
	sort.Ints(s)
}
