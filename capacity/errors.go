package capacity

import "errors"

var (
	// ErrUpperBoundInfeasible indicates the Problem has no solution even at
	// the caller-supplied (or size-sum-derived) upper bound, so no capacity
	// in range admits one either.
	ErrUpperBoundInfeasible = errors.New("capacity: problem is infeasible at the upper bound")

	// ErrCapacityOverflow indicates the derived bound (section-area ceiling
	// or sum of sizes) does not fit in Problem.Capacity's int32 range.
	ErrCapacityOverflow = errors.New("capacity: derived bound overflows int32")
)
