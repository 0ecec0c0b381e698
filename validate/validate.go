package validate

import (
	"github.com/google/minimalloc/core"
)

// Result names the outcome of validating a candidate solution against a
// Problem.
type Result int

const (
	// Good indicates the candidate offsets form a valid solution.
	Good Result = iota

	// BadSolution indicates len(offsets) != len(Problem.Buffers).
	BadSolution

	// BadFixed indicates a buffer with a fixed Offset was not placed there.
	BadFixed

	// BadOffset indicates an offset is negative or overruns Capacity.
	BadOffset

	// BadAlignment indicates an offset is not a multiple of its buffer's
	// Alignment.
	BadAlignment

	// BadOverlap indicates two simultaneously-live buffers' offset ranges
	// intersect.
	BadOverlap

	// BadHeight indicates a supplied height doesn't match the observed
	// maximum, or exceeds Capacity.
	BadHeight
)

// String names the violation class; the CLI's --validate flag reduces it
// to PASS (Good) or FAIL, but a human-readable name is useful for
// diagnostics and tests.
func (r Result) String() string {
	switch r {
	case Good:
		return "GOOD"
	case BadSolution:
		return "BAD_SOLUTION"
	case BadFixed:
		return "BAD_FIXED"
	case BadOffset:
		return "BAD_OFFSET"
	case BadAlignment:
		return "BAD_ALIGNMENT"
	case BadOverlap:
		return "BAD_OVERLAP"
	case BadHeight:
		return "BAD_HEIGHT"
	default:
		return "UNKNOWN"
	}
}

// Validate checks offsets against p and returns the first violation
// encountered, or Good. Checks run in a fixed order: length, fixed offsets,
// bounds, alignment, overlap, height. height is optional; pass nil to skip
// the height check.
func Validate(p *core.Problem, offsets []int32, height *int64) Result {
	n := len(p.Buffers)

	// 1. Length.
	if len(offsets) != n {
		return BadSolution
	}

	// 2. Fixed offsets.
	for i, b := range p.Buffers {
		if b.Offset != nil && offsets[i] != *b.Offset {
			return BadFixed
		}
	}

	// 3. Bounds.
	for i, b := range p.Buffers {
		if offsets[i] < 0 || int64(offsets[i])+int64(b.Size) > int64(p.Capacity) {
			return BadOffset
		}
	}

	// 4. Alignment.
	for i, b := range p.Buffers {
		if offsets[i]%b.Alignment != 0 {
			return BadAlignment
		}
	}

	// 5. Pairwise overlap.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if core.Conflicts(p.Buffers[i], offsets[i], p.Buffers[j], offsets[j]) {
				return BadOverlap
			}
		}
	}

	// 6. Height.
	if height != nil {
		observed := core.ComputeHeight(p, offsets)
		if *height != observed || *height > int64(p.Capacity) {
			return BadHeight
		}
	}

	return Good
}
