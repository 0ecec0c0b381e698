package core

import "sort"

// Interval is a half-open time range [Lower, Upper). Both bounds fit a
// signed 32-bit integer.
type Interval struct {
	Lower int32
	Upper int32
}

// NewInterval builds an Interval and reports ErrInvalidInterval if
// lower > upper.
func NewInterval(lower, upper int32) (Interval, error) {
	if lower > upper {
		return Interval{}, ErrInvalidInterval
	}

	return Interval{Lower: lower, Upper: upper}, nil
}

// Duration returns Upper - Lower.
func (iv Interval) Duration() int32 { return iv.Upper - iv.Lower }

// Empty reports whether the interval has zero duration.
func (iv Interval) Empty() bool { return iv.Lower >= iv.Upper }

// Contains reports whether t falls inside the half-open range.
func (iv Interval) Contains(t int32) bool { return t >= iv.Lower && t < iv.Upper }

// Nested reports whether iv lies entirely inside outer.
func (iv Interval) Nested(outer Interval) bool {
	return iv.Lower >= outer.Lower && iv.Upper <= outer.Upper
}

// Intersect returns the overlap of iv and other. The second return value is
// false when the overlap is empty (including when the two ranges merely
// touch at a single point).
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	lo := iv.Lower
	if other.Lower > lo {
		lo = other.Lower
	}
	hi := iv.Upper
	if other.Upper < hi {
		hi = other.Upper
	}
	if lo >= hi {
		return Interval{}, false
	}

	return Interval{Lower: lo, Upper: hi}, true
}

// Overlaps reports whether iv and other share at least one instant.
func (iv Interval) Overlaps(other Interval) bool {
	_, ok := iv.Intersect(other)

	return ok
}

// Gap is a sub-interval of a Buffer's Lifespan during which the buffer is
// either wholly absent (Window == nil) or occupies only Window relative to
// its own offset.
type Gap struct {
	Lifespan Interval
	Window   *Interval
}

// NewGap builds a full gap (the buffer is absent throughout lifespan).
func NewGap(lifespan Interval) Gap {
	return Gap{Lifespan: lifespan}
}

// NewWindowedGap builds a gap in which the buffer keeps occupying the given
// offset-relative window.
func NewWindowedGap(lifespan, window Interval) Gap {
	w := window

	return Gap{Lifespan: lifespan, Window: &w}
}

// Buffer is a tensor with a lifetime, a size, an alignment requirement, and
// optional gaps, fixed offset, and placement hint.
type Buffer struct {
	ID        string
	Lifespan  Interval
	Size      int32
	Alignment int32
	Gaps      []Gap
	Offset    *int32
	Hint      *int32
}

// BufferOption configures optional Buffer fields at construction time,
// mirroring the functional-options style used throughout this module.
type BufferOption func(*Buffer)

// WithAlignment sets a non-default alignment requirement (default 1).
func WithAlignment(alignment int32) BufferOption {
	return func(b *Buffer) { b.Alignment = alignment }
}

// WithGaps attaches the given gaps to the buffer.
func WithGaps(gaps ...Gap) BufferOption {
	return func(b *Buffer) { b.Gaps = append(b.Gaps, gaps...) }
}

// WithOffset fixes the buffer at a specific offset; the solver must honor it
// exactly or report infeasibility.
func WithOffset(offset int32) BufferOption {
	return func(b *Buffer) { o := offset; b.Offset = &o }
}

// WithHint records a preferred offset. It is carried as data only: unlike
// Offset it is never enforced, and the search does not consult it.
func WithHint(hint int32) BufferOption {
	return func(b *Buffer) { h := hint; b.Hint = &h }
}

// NewBuffer validates and constructs a Buffer. Validation enforces: id
// non-empty; lifespan has positive duration; size positive; alignment
// positive; every gap lies inside the lifespan and gaps are pairwise
// disjoint; every windowed gap's window lies inside [0, size]; Offset/Hint,
// if set, are non-negative.
func NewBuffer(id string, lifespan Interval, size int32, opts ...BufferOption) (*Buffer, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if lifespan.Empty() {
		return nil, ErrEmptyLifespan
	}
	if size <= 0 {
		return nil, ErrNonPositiveSize
	}

	b := &Buffer{
		ID:        id,
		Lifespan:  lifespan,
		Size:      size,
		Alignment: 1,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.Alignment <= 0 {
		return nil, ErrNonPositiveAlignment
	}
	if b.Offset != nil && *b.Offset < 0 {
		return nil, ErrNegativeOffset
	}
	if b.Hint != nil && *b.Hint < 0 {
		return nil, ErrNegativeOffset
	}
	if err := validateGaps(b); err != nil {
		return nil, err
	}

	return b, nil
}

// validateGaps checks nesting, disjointness, and window range for every gap
// of b. Gaps are sorted by Lifespan.Lower as a side effect, so downstream
// passes can rely on time order.
func validateGaps(b *Buffer) error {
	if len(b.Gaps) == 0 {
		return nil
	}

	sorted := make([]Gap, len(b.Gaps))
	copy(sorted, b.Gaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lifespan.Lower < sorted[j].Lifespan.Lower })

	for i, g := range sorted {
		if !g.Lifespan.Nested(b.Lifespan) {
			return ErrGapOutsideLifespan
		}
		if g.Window != nil {
			full := Interval{Lower: 0, Upper: b.Size}
			if !g.Window.Nested(full) {
				return ErrWindowOutOfRange
			}
		}
		if i > 0 && sorted[i-1].Lifespan.Upper > g.Lifespan.Lower {
			return ErrGapsOverlap
		}
	}
	b.Gaps = sorted

	return nil
}

// Problem is an indexed, immutable-once-built list of Buffers that must fit
// within Capacity. Buffer indices are stable: Problem.Buffers[i]
// identifies buffer i for the life of the Problem.
type Problem struct {
	Buffers  []Buffer
	Capacity int32
}

// NewProblem validates and constructs a Problem. Capacity must be
// non-negative and at least as large as the largest buffer's size; a
// capacity of zero is only valid for the empty problem.
func NewProblem(buffers []Buffer, capacity int32) (*Problem, error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	for _, b := range buffers {
		if b.Size > capacity {
			return nil, ErrCapacityTooSmall
		}
	}

	return &Problem{Buffers: buffers, Capacity: capacity}, nil
}

// Solution is the offset vector a solver returns for a Problem, plus the
// observed Height: max over i of offsets[i] + Buffers[i].Size.
type Solution struct {
	Offsets []int32
	Height  int64
}

// ComputeHeight returns the maximum offset[i] + size[i] across all buffers,
// as int64 to avoid overflow when offsets/sizes approach the int32 range.
func ComputeHeight(p *Problem, offsets []int32) int64 {
	var height int64
	for i, b := range p.Buffers {
		if i >= len(offsets) {
			break
		}
		top := int64(offsets[i]) + int64(b.Size)
		if top > height {
			height = top
		}
	}

	return height
}
