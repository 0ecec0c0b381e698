package core

import "errors"

// Precondition errors are returned by NewBuffer/NewProblem when the
// caller's input violates a model invariant. They are caught once, at
// construction, so downstream packages never have to re-check them.
var (
	// ErrEmptyID indicates a Buffer was constructed with an empty id.
	ErrEmptyID = errors.New("core: buffer id is empty")

	// ErrInvalidInterval indicates Lower > Upper, i.e. a negative duration.
	// NewInterval returns it; a Buffer's Lifespan is checked with
	// ErrEmptyLifespan instead.
	ErrInvalidInterval = errors.New("core: interval has negative duration")

	// ErrEmptyLifespan indicates a Buffer's Lifespan has no positive
	// duration (Lower >= Upper); a buffer must be live for at least one
	// instant.
	ErrEmptyLifespan = errors.New("core: buffer lifespan is empty")

	// ErrNonPositiveSize indicates Buffer.Size <= 0.
	ErrNonPositiveSize = errors.New("core: buffer size must be positive")

	// ErrNonPositiveAlignment indicates Buffer.Alignment <= 0.
	ErrNonPositiveAlignment = errors.New("core: buffer alignment must be positive")

	// ErrGapOutsideLifespan indicates a Gap's Lifespan is not nested inside
	// its Buffer's Lifespan.
	ErrGapOutsideLifespan = errors.New("core: gap lifespan is not nested inside buffer lifespan")

	// ErrGapsOverlap indicates two Gaps of the same Buffer are not disjoint.
	ErrGapsOverlap = errors.New("core: buffer gaps overlap")

	// ErrWindowOutOfRange indicates a Gap's Window is not nested inside
	// [0, Size].
	ErrWindowOutOfRange = errors.New("core: gap window is out of [0, size] range")

	// ErrNegativeOffset indicates a fixed Offset or Hint is negative.
	ErrNegativeOffset = errors.New("core: offset must be non-negative")

	// ErrCapacityTooSmall indicates Problem.Capacity is smaller than some
	// buffer's Size, making the problem trivially infeasible.
	ErrCapacityTooSmall = errors.New("core: capacity is smaller than a buffer's size")

	// ErrNegativeCapacity indicates Problem.Capacity < 0.
	ErrNegativeCapacity = errors.New("core: capacity must be non-negative")
)
