package capacity

import (
	"math"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/solve"
	"github.com/google/minimalloc/sweep"
)

// Result is the outcome of a Minimize call: the smallest admissible
// Capacity found and the Solution the solver produced there.
type Result struct {
	Capacity int32
	Solution core.Solution
	Status   solve.Status
}

// Minimize finds the smallest capacity at or below upperBound
// for which p's buffers have a placement, returning that capacity and its
// solution. upperBound may be nil, in which case it is computed as the sum
// of every buffer's size. A non-Solved, non-Infeasible probe (Timeout or
// Cancelled) aborts the search immediately and is reported back as-is,
// since the binary search cannot proceed without a definitive probe.
func Minimize(p *core.Problem, opts solve.Options, upperBound *int32) (Result, error) {
	sw := sweep.Sweep(p)

	lower, err := lowerBound(sw)
	if err != nil {
		return Result{}, err
	}

	upper, err := resolveUpperBound(p, upperBound)
	if err != nil {
		return Result{}, err
	}
	if upper < lower {
		// Every capacity at or below upper is under the area bound.
		return Result{}, ErrUpperBoundInfeasible
	}

	solver := solve.New(opts)
	probe := func(cap int32) (solve.Result, error) {
		sub, err := core.NewProblem(p.Buffers, cap)
		if err != nil {
			// cap is below the largest buffer's size: trivially infeasible,
			// not a reason to fail the whole search.
			return solve.Result{Status: solve.StatusInfeasible}, nil
		}

		return solver.SolveSweep(sub, sw)
	}

	var (
		best     Result
		haveBest bool
	)
	lo, hi := lower, upper
	for lo < hi {
		mid := lo + (hi-lo)/2

		res, err := probe(mid)
		if err != nil {
			return Result{}, err
		}
		switch res.Status {
		case solve.StatusSolved:
			hi = mid
			best = Result{Capacity: mid, Solution: res.Solution, Status: solve.StatusSolved}
			haveBest = true
		case solve.StatusInfeasible:
			lo = mid + 1
		default:
			return Result{Status: res.Status}, nil
		}
	}

	if haveBest && best.Capacity == lo {
		return best, nil
	}

	res, err := probe(lo)
	if err != nil {
		return Result{}, err
	}
	switch res.Status {
	case solve.StatusSolved:
		return Result{Capacity: lo, Solution: res.Solution, Status: solve.StatusSolved}, nil
	case solve.StatusInfeasible:
		return Result{}, ErrUpperBoundInfeasible
	default:
		return Result{Status: res.Status}, nil
	}
}

// lowerBound returns the maximum section-area ceiling: the largest, over
// every section, of the sum of the per-section window heights of the
// buffers live there. No capacity below this can ever admit a solution,
// since those buffers must coexist in that much space at that instant.
func lowerBound(sw *sweep.Result) (int32, error) {
	areas := make([]int64, len(sw.Sections))
	for _, spans := range sw.SectionSpans {
		for _, span := range spans {
			height := int64(span.Window.Duration())
			for s := span.SectionRange.Lower; s < span.SectionRange.Upper; s++ {
				areas[s] += height
			}
		}
	}

	var max int64
	for _, a := range areas {
		if a > max {
			max = a
		}
	}
	if max > math.MaxInt32 {
		return 0, ErrCapacityOverflow
	}

	return int32(max), nil
}

func resolveUpperBound(p *core.Problem, upperBound *int32) (int32, error) {
	if upperBound != nil {
		return *upperBound, nil
	}

	var total int64
	for _, b := range p.Buffers {
		total += int64(b.Size)
	}
	if total > math.MaxInt32 {
		return 0, ErrCapacityOverflow
	}

	return int32(total), nil
}
