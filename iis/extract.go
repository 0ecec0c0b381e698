package iis

import (
	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/solve"
)

// Extract returns the stable Problem.Buffers indices of a minimal
// infeasible subset of p. p must already be known infeasible
// under opts; Extract re-derives that once up front and fails fast
// (ErrFeasible, ErrInconclusive) rather than silently returning a subset
// that was never actually proven necessary.
//
// Complexity: O(n) solver calls, one per buffer, each over a problem no
// larger than p itself.
func Extract(p *core.Problem, opts solve.Options) ([]int, error) {
	full, err := solve.New(opts).Solve(p)
	if err != nil {
		return nil, err
	}
	switch full.Status {
	case solve.StatusSolved:
		return nil, ErrFeasible
	case solve.StatusInfeasible:
	default:
		return nil, ErrInconclusive
	}

	kept := make([]bool, len(p.Buffers))
	for i := range kept {
		kept[i] = true
	}

	for i := range p.Buffers {
		kept[i] = false
		trial := subProblem(p, kept)

		res, err := solve.New(opts).Solve(trial)
		if err != nil {
			return nil, err
		}

		switch res.Status {
		case solve.StatusInfeasible:
			// i wasn't needed; leave it dropped.
		case solve.StatusSolved:
			kept[i] = true
		default:
			return nil, ErrInconclusive
		}
	}

	indices := make([]int, 0, len(p.Buffers))
	for i, k := range kept {
		if k {
			indices = append(indices, i)
		}
	}

	return indices, nil
}

// subProblem builds the Problem over only the kept buffers, in their
// original relative order. The capacity never changes, and any subset of
// an already-valid Problem's buffers satisfies NewProblem's precondition,
// so the construction error is unreachable here.
func subProblem(p *core.Problem, kept []bool) *core.Problem {
	buffers := make([]core.Buffer, 0, len(p.Buffers))
	for i, b := range p.Buffers {
		if kept[i] {
			buffers = append(buffers, b)
		}
	}
	sub, _ := core.NewProblem(buffers, p.Capacity)

	return sub
}
