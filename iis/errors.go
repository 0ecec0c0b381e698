package iis

import "errors"

var (
	// ErrFeasible indicates the Problem passed to Extract already has a
	// solution, so there is no infeasible subset to extract.
	ErrFeasible = errors.New("iis: problem is feasible, nothing to extract")

	// ErrInconclusive indicates a probe during extraction hit its deadline
	// or was cancelled before the solver could prove Solved or Infeasible,
	// so the extraction cannot be trusted to have found a minimal subset.
	ErrInconclusive = errors.New("iis: a probe timed out or was cancelled")
)
