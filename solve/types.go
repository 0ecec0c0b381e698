package solve

import (
	"time"

	"github.com/google/minimalloc/core"
)

// Status is the outcome of a Solve call.
type Status int

const (
	// StatusSolved means Solution holds a valid offset assignment.
	StatusSolved Status = iota

	// StatusInfeasible means the search tree was exhausted with no
	// assignment found.
	StatusInfeasible

	// StatusTimeout means the wall-clock deadline was reached before the
	// search concluded.
	StatusTimeout

	// StatusCancelled means Solver.Cancel was observed before the search
	// concluded.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "Solved"
	case StatusInfeasible:
		return "Infeasible"
	case StatusTimeout:
		return "Timeout"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Options bundles the search's boolean pruning toggles (all default on),
// the preordering-heuristic list to try in order, and the wall-clock
// budget.
type Options struct {
	// CanonicalOnly skips an offset for a buffer while a
	// structurally-equivalent buffer (same size, alignment, and section
	// spans) is assigned at that same offset higher up the current branch.
	// The record is dropped when that assignment is undone, so an offset
	// that failed for one buffer is not skipped for an equivalent buffer
	// in a later sibling branch.
	CanonicalOnly bool

	// CheckDominance skips an offset whose resulting per-section floors
	// are identical to one already tried for this buffer.
	CheckDominance bool

	// HatlessPruning restricts a buffer with no remaining overlapping
	// unassigned buffer to a single, topmost candidate offset.
	HatlessPruning bool

	// SectionInference fails a candidate early if it would raise some
	// section's floor above capacity minus the size of the smallest
	// still-unassigned buffer touching that section, and that buffer would
	// not fit beneath the candidate either.
	SectionInference bool

	// UnallocatedFloor pre-assigns every fixed-offset buffer in a
	// partition before the first real decision, so their contribution to
	// section floors is known up front.
	UnallocatedFloor bool

	// DynamicDecomposition prefers picking the next buffer from the
	// connected component of the most recently assigned buffer, so
	// independent sub-problems are solved to exhaustion before switching.
	DynamicDecomposition bool

	// MonotonicFloor narrows the pool of buffers considered for the next
	// decision, before fail-first selection, to those whose floor is at
	// least the highest offset assigned so far, whenever any such buffer
	// remains.
	MonotonicFloor bool

	// DynamicOrdering picks the unassigned buffer with the smallest
	// admissible-offset domain at each step ("fail-first"). When false,
	// the first buffer in preorder is taken, from the pool left after the
	// DynamicDecomposition and MonotonicFloor preferences.
	DynamicOrdering bool

	// PreorderingHeuristics is tried left to right; the first whose
	// resulting order solves the partition within the shared time budget
	// is used.
	PreorderingHeuristics []string

	// Timeout bounds total wall-clock time across every partition and
	// heuristic attempt. Zero means no limit.
	Timeout time.Duration
}

// DefaultOptions returns every pruning rule enabled and the standard
// WAT/TAW/TWA heuristic sequence.
func DefaultOptions() Options {
	return Options{
		CanonicalOnly:         true,
		CheckDominance:        true,
		HatlessPruning:        true,
		SectionInference:      true,
		UnallocatedFloor:      true,
		DynamicDecomposition:  true,
		MonotonicFloor:        true,
		DynamicOrdering:       true,
		PreorderingHeuristics: []string{"WAT", "TAW", "TWA"},
	}
}

// Result is the outcome of one Solve call.
type Result struct {
	Solution   core.Solution
	Status     Status
	Backtracks int
}
