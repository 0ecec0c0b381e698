// Package validate implements the standalone MiniMalloc validator: given a
// Problem and a candidate offset vector, it reports GOOD or the specific
// violation class that disqualifies the candidate.
//
// The validator never mutates its inputs and never produces Infeasible,
// Timeout, or Cancelled; those are solver-only outcomes. A
// validator failure always names one concrete, checkable defect.
//
// Checks run in a fixed order (length, fixed offsets, bounds, alignment,
// overlap, height) and stop at the first violation.
package validate
