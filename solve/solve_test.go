package solve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/solve"
	"github.com/google/minimalloc/validate"
)

func mustBuffer(t *testing.T, id string, lower, upper, size int32, opts ...core.BufferOption) core.Buffer {
	t.Helper()
	b, err := core.NewBuffer(id, core.Interval{Lower: lower, Upper: upper}, size, opts...)
	require.NoError(t, err)

	return *b
}

func TestSolve_Empty(t *testing.T) {
	p, err := core.NewProblem(nil, 0)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	assert.Equal(t, solve.StatusSolved, res.Status)
	assert.Empty(t, res.Solution.Offsets)
}

func TestSolve_SingleFit(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0}, 2)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.Equal(t, []int32{0}, res.Solution.Offsets)
}

func TestSolve_TrivialConflict(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	b1 := mustBuffer(t, "b1", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0, b1}, 3)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	assert.Equal(t, solve.StatusInfeasible, res.Status)
	assert.GreaterOrEqual(t, res.Backtracks, 1, "proving infeasibility costs at least one backtrack")
}

func TestSolve_OverlapChain(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "b1", 0, 3, 4),
		mustBuffer(t, "b2", 3, 9, 4),
		mustBuffer(t, "b3", 0, 9, 4),
		mustBuffer(t, "b4", 9, 21, 4),
		mustBuffer(t, "b5", 0, 21, 4),
	}
	p, err := core.NewProblem(buffers, 12)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.Equal(t, validate.Good, validate.Validate(p, res.Solution.Offsets, &res.Solution.Height))
}

func TestSolve_FixedBuffer(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "b0", 1, 2, 1),
		mustBuffer(t, "b1", 0, 2, 1),
		mustBuffer(t, "b2", 2, 3, 2, core.WithOffset(1)),
		mustBuffer(t, "b3", 1, 3, 1),
		mustBuffer(t, "b4", 0, 1, 2),
	}
	p, err := core.NewProblem(buffers, 3)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.EqualValues(t, 1, res.Solution.Offsets[2])
	assert.Equal(t, validate.Good, validate.Validate(p, res.Solution.Offsets, &res.Solution.Height))
}

func TestSolve_Determinism(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "b1", 0, 3, 4),
		mustBuffer(t, "b2", 3, 9, 4),
		mustBuffer(t, "b3", 0, 9, 4),
		mustBuffer(t, "b4", 9, 21, 4),
		mustBuffer(t, "b5", 0, 21, 4),
	}
	p, err := core.NewProblem(buffers, 12)
	require.NoError(t, err)

	s := solve.New(solve.DefaultOptions())
	first, err := s.Solve(p)
	require.NoError(t, err)
	second, err := s.Solve(p)
	require.NoError(t, err)

	assert.Equal(t, first.Solution.Offsets, second.Solution.Offsets)
	assert.Equal(t, first.Backtracks, second.Backtracks)
}

func TestSolve_AllOptionsOffStillSound(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "b1", 0, 3, 4),
		mustBuffer(t, "b2", 3, 9, 4),
		mustBuffer(t, "b3", 0, 9, 4),
		mustBuffer(t, "b4", 9, 21, 4),
		mustBuffer(t, "b5", 0, 21, 4),
	}
	p, err := core.NewProblem(buffers, 12)
	require.NoError(t, err)

	opts := solve.Options{PreorderingHeuristics: []string{"WAT"}}
	res, err := solve.New(opts).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.Equal(t, validate.Good, validate.Validate(p, res.Solution.Offsets, &res.Solution.Height))
}

// TestSolve_TopCandidateBlockedFallsBackBelow: with nothing left to place
// above it, the last free buffer is steered to its highest placement, but
// the highest candidate collides with a fixed block; the gap below the
// lower fixed block must still be found.
func TestSolve_TopCandidateBlockedFallsBackBelow(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "k", 0, 4, 2, core.WithOffset(4)),
		mustBuffer(t, "j", 0, 4, 2, core.WithOffset(8)),
		mustBuffer(t, "i", 0, 4, 3),
	}
	p, err := core.NewProblem(buffers, 10)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.EqualValues(t, 1, res.Solution.Offsets[2], "only the gap below the fixed blocks fits")
	assert.Equal(t, validate.Good, validate.Validate(p, res.Solution.Offsets, &res.Solution.Height))
}

// TestSolve_RemainingBufferTucksUnderRaisedFloor: placing i on top of the
// fixed block raises its sections' floor to capacity, yet r still fits in
// the space beneath i once the block's lifespan has ended.
func TestSolve_RemainingBufferTucksUnderRaisedFloor(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "w", 0, 3, 6, core.WithOffset(0)),
		mustBuffer(t, "i", 0, 10, 4),
		mustBuffer(t, "r", 3, 10, 4),
	}
	p, err := core.NewProblem(buffers, 10)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	require.Equal(t, solve.StatusSolved, res.Status)
	assert.EqualValues(t, 6, res.Solution.Offsets[1], "i can only sit on top of the fixed block")
	assert.Equal(t, validate.Good, validate.Validate(p, res.Solution.Offsets, &res.Solution.Height))
}

func TestSolve_Cancel(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0}, 2)
	require.NoError(t, err)

	s := solve.New(solve.DefaultOptions())
	s.Cancel()
	res, err := s.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, solve.StatusCancelled, res.Status)
	assert.Empty(t, res.Solution.Offsets)

	s.Reset()
	res, err = s.Solve(p)
	require.NoError(t, err)
	assert.Equal(t, solve.StatusSolved, res.Status)
}

func TestSolve_PruningNeverIncreasesBacktracks(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	b1 := mustBuffer(t, "b1", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0, b1}, 3)
	require.NoError(t, err)

	bare, err := solve.New(solve.Options{PreorderingHeuristics: []string{"WAT"}}).Solve(p)
	require.NoError(t, err)
	full, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)

	require.Equal(t, solve.StatusInfeasible, bare.Status)
	require.Equal(t, solve.StatusInfeasible, full.Status)
	assert.Less(t, full.Backtracks, bare.Backtracks, "section inference cuts the doomed branches up front")
	assert.GreaterOrEqual(t, full.Backtracks, 1)
}

func TestSolve_CapacityBound(t *testing.T) {
	buffers := []core.Buffer{
		mustBuffer(t, "b1", 0, 3, 4),
		mustBuffer(t, "b2", 3, 9, 4),
		mustBuffer(t, "b3", 0, 9, 4),
		mustBuffer(t, "b4", 9, 21, 4),
		mustBuffer(t, "b5", 0, 21, 4),
	}
	p, err := core.NewProblem(buffers, 12)
	require.NoError(t, err)

	res, err := solve.New(solve.DefaultOptions()).Solve(p)
	require.NoError(t, err)
	for i, off := range res.Solution.Offsets {
		assert.LessOrEqual(t, int64(off)+int64(p.Buffers[i].Size), int64(p.Capacity))
	}
}
