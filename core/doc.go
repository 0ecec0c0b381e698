// Package core defines the central data model for MiniMalloc: Interval,
// Gap, Buffer, Problem, and Solution, plus the gap-aware effective-size and
// conflict helpers shared by the sweeper, the solver, and the validator.
//
// The model is intentionally small and value-oriented:
//
//   - Interval is a half-open [Lower, Upper) time range.
//   - Gap carves a sub-range out of a Buffer's Lifespan where the buffer is
//     either wholly absent or occupies only a Window of its Size.
//   - Buffer is a tensor: an id, a Lifespan, a Size, an Alignment, optional
//     Gaps, an optional fixed Offset, and an optional placement Hint.
//   - Problem bundles an indexed, stable list of Buffers with a Capacity.
//   - Solution is the offset vector a solver returns, plus the observed
//     Height.
//
// Buffers and Problems are constructed through NewBuffer/NewProblem, which
// run every precondition check once, up front, so every other package in
// this module may treat a *Problem as already-valid.
//
// Indices are stable: Problem.Buffers[i] is buffer i for the lifetime of
// the Problem. Nothing in this package mutates a Problem after
// construction.
package core
