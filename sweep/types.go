package sweep

import "github.com/google/minimalloc/core"

// PointKind distinguishes the two flavors of SweepPoint.
type PointKind int

const (
	// Left marks the start of a buffer's live segment.
	Left PointKind = iota

	// Right marks the end of a buffer's live segment. Right points are
	// ordered before Left points at equal time, so an ending
	// buffer frees capacity before a starting buffer claims it.
	Right
)

// SweepPoint is one endpoint of a buffer's active-segment timeline.
// Window carries the offset-relative window that becomes (Left) or
// stops being (Right) active at Time; Endpoint marks the outer boundary of
// the buffer's whole Lifespan, as opposed to an internal gap boundary.
type SweepPoint struct {
	BufferIdx int
	Time      int32
	Kind      PointKind
	Window    core.Interval
	Endpoint  bool
}

// Section is a maximal half-open time range over which the set of live
// buffer indices is constant and non-empty. Sections are numbered
// contiguously in time order; SectionIdx values elsewhere in this package
// index into Result.Sections.
type Section struct {
	Range core.Interval // time range
	Live  []int         // buffer indices live throughout Range, sorted ascending
}

// SectionSpan is one maximal, gap-free run of sections over which a buffer
// is live with a single constant Window. A buffer with K gaps
// that open windowed sub-ranges is represented by multiple SectionSpans,
// one per active segment.
type SectionSpan struct {
	// SectionRange is a half-open range of section indices (not times):
	// the buffer is live throughout Result.Sections[SectionRange.Lower :
	// SectionRange.Upper].
	SectionRange core.Interval
	Window       core.Interval
}

// Overlap records that buffer J co-occupies at least one section with the
// buffer this Overlap is attached to, and the size J reserves against it
// (core.EffectiveSize, from the owning buffer's point of view).
type Overlap struct {
	J             int
	EffectiveSize int32
}

// Partition is a maximal run of sections connected by at least one buffer
// spanning their boundary; it is an independent search
// sub-problem. Sections, like SectionSpan.SectionRange, is a range of
// section indices.
type Partition struct {
	Sections core.Interval
	Buffers  []int // buffer indices live in this partition, sorted ascending
}

// Result is the complete, immutable output of Sweep: every derived
// structure the solver needs, indexed consistently by buffer index and by
// section index.
type Result struct {
	Points []SweepPoint

	Sections []Section

	// Partitions are in section-index order and cover every section
	// exactly once.
	Partitions []Partition

	// SectionSpans[i] is buffer i's list of spans, in time order.
	SectionSpans [][]SectionSpan

	// Overlaps[i] is buffer i's overlap set, one entry per other buffer
	// that co-occupies a section with it.
	Overlaps [][]Overlap

	// BoundaryOverlap[k] is the number of buffers live in both
	// Sections[k] and Sections[k+1].
	// len(BoundaryOverlap) == max(len(Sections)-1, 0). A value of 0 marks a
	// partition break.
	BoundaryOverlap []int
}

// PartitionOf returns the index into Result.Partitions that contains
// section index sectionIdx, or -1 if no partition does.
func (r *Result) PartitionOf(sectionIdx int) int {
	for k, part := range r.Partitions {
		if sectionIdx >= int(part.Sections.Lower) && sectionIdx < int(part.Sections.Upper) {
			return k
		}
	}

	return -1
}
