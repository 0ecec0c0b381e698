package solve

import (
	"sync/atomic"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/preorder"
	"github.com/google/minimalloc/sweep"
)

// Solver runs the search engine against a Problem. A Solver may be reused
// across calls to Solve; each call resets all search state and the
// backtrack counter, so repeated runs on the same input are
// decision-for-decision identical. An instance must not be used
// concurrently by more than one goroutine at a time.
type Solver struct {
	opts   Options
	cancel int32
}

// New returns a Solver configured with opts.
func New(opts Options) *Solver {
	return &Solver{opts: opts}
}

// Cancel requests cooperative termination of any in-progress or future
// Solve call on this Solver. It is idempotent and safe to call from
// another goroutine.
func (s *Solver) Cancel() {
	atomic.StoreInt32(&s.cancel, 1)
}

// Reset clears a prior Cancel so the Solver can be reused.
func (s *Solver) Reset() {
	atomic.StoreInt32(&s.cancel, 0)
}

// Solve assigns every buffer in p an offset, or reports why it could not
//. Partitions are processed independently; a Solved or
// Infeasible partition never needs the others re-examined, but the first
// Infeasible or Abort partition determines the whole problem's outcome.
func (s *Solver) Solve(p *core.Problem) (Result, error) {
	return s.SolveSweep(p, sweep.Sweep(p))
}

// SolveSweep is Solve with the sweep already computed. The sweep depends
// only on buffer lifespans, gaps, and sizes, not on Capacity, so a caller
// that re-solves the same buffer set at several capacities (the capacity
// minimizer's binary search) can build it once and reuse it across every
// probe.
func (s *Solver) SolveSweep(p *core.Problem, sw *sweep.Result) (Result, error) {
	data := preorder.Compute(p, sw)

	heuristics := s.opts.PreorderingHeuristics
	if len(heuristics) == 0 {
		heuristics = []string{"WAT"}
	}

	e := newEngine(p, sw, s.opts, &s.cancel)
	offsets := make([]int32, len(p.Buffers))
	status := StatusSolved

	for _, part := range sw.Partitions {
		st, err := s.solvePartition(e, data, part, heuristics)
		if err != nil {
			return Result{}, err
		}
		if st != StatusSolved {
			status = st

			break
		}
	}

	if status != StatusSolved {
		return Result{Status: status, Backtracks: e.backtracks}, nil
	}

	for i := range offsets {
		offsets[i] = e.offsets[i]
	}

	return Result{
		Solution:   core.Solution{Offsets: offsets, Height: core.ComputeHeight(p, offsets)},
		Status:     StatusSolved,
		Backtracks: e.backtracks,
	}, nil
}

// solvePartition resolves one partition, trying each preordering
// heuristic in turn over the shared remaining time budget until one
// solves it or the search proves it genuinely infeasible: a
// complete backtracking search is exhaustive regardless of starting
// order, so an Infeasible result from the first heuristic is final, while
// an Abort (timeout/cancel) lets the next heuristic retry with whatever
// budget remains.
func (s *Solver) solvePartition(e *engine, data []preorder.PreorderData, part sweep.Partition, heuristics []string) (Status, error) {
	fixed, free := splitFixed(e.p, e.opts, part.Buffers)

	mark := e.mark()
	if !e.preAssignFixed(fixed) {
		e.undoTo(mark)
		e.backtracks++

		return StatusInfeasible, nil
	}

	for _, code := range heuristics {
		order, err := preorder.Order(data, code)
		if err != nil {
			e.undoTo(mark)

			return StatusInfeasible, err
		}
		remaining := filterOrdered(order, free)

		attemptMark := e.mark()
		switch e.solve(remaining) {
		case outcomeSolved:
			return StatusSolved, nil
		case outcomeAbort:
			e.undoTo(attemptMark)

			continue
		case outcomeBacktrack:
			// The root frame's exhaustion is itself a failed descent: an
			// infeasible partition always costs at least one backtrack.
			e.undoTo(mark)
			e.backtracks++

			return StatusInfeasible, nil
		}
	}

	if e.useDeadline || atomic.LoadInt32(e.cancel) != 0 {
		if atomic.LoadInt32(e.cancel) != 0 {
			return StatusCancelled, nil
		}

		return StatusTimeout, nil
	}

	return StatusInfeasible, nil
}

// splitFixed separates buffers with a fixed offset from the rest.
// UnallocatedFloor controls whether fixed buffers are pre-assigned ahead
// of the first real decision or left to be placed in their normal turn,
// where candidatesFor still forces them to their fixed value.
func splitFixed(p *core.Problem, opts Options, buffers []int) (fixed, free []int) {
	if !opts.UnallocatedFloor {
		return nil, buffers
	}
	for _, b := range buffers {
		if p.Buffers[b].Offset != nil {
			fixed = append(fixed, b)
		} else {
			free = append(free, b)
		}
	}

	return fixed, free
}

// filterOrdered returns the subset of order that appears in allowed,
// preserving order's sequence.
func filterOrdered(order []int, allowed []int) []int {
	set := make(map[int]bool, len(allowed))
	for _, b := range allowed {
		set[b] = true
	}

	out := make([]int, 0, len(allowed))
	for _, b := range order {
		if set[b] {
			out = append(out, b)
		}
	}

	return out
}
