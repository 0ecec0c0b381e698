package iis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/iis"
	"github.com/google/minimalloc/solve"
)

func mustBuffer(t *testing.T, id string, lower, upper, size int32) core.Buffer {
	t.Helper()
	b, err := core.NewBuffer(id, core.Interval{Lower: lower, Upper: upper}, size)
	require.NoError(t, err)

	return *b
}

func TestExtract_BothConflictingBuffersSurvive(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	b1 := mustBuffer(t, "b1", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0, b1}, 3)
	require.NoError(t, err)

	indices, err := iis.Extract(p, solve.DefaultOptions())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, indices)
}

func TestExtract_BystanderDropped(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	b1 := mustBuffer(t, "b1", 0, 2, 2)
	b2 := mustBuffer(t, "b2", 5, 6, 1)
	p, err := core.NewProblem([]core.Buffer{b0, b1, b2}, 3)
	require.NoError(t, err)

	indices, err := iis.Extract(p, solve.DefaultOptions())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, indices, "b2 never participates in the conflict")
}

func TestExtract_MinimalCoreAmongBystanders(t *testing.T) {
	// b2, b3, b4 are three size-2 buffers sharing one instant: any two fit
	// in capacity 4, all three cannot. b0 and b1 live elsewhere in time and
	// never matter.
	buffers := []core.Buffer{
		mustBuffer(t, "b0", 6, 8, 1),
		mustBuffer(t, "b1", 6, 8, 1),
		mustBuffer(t, "b2", 0, 2, 2),
		mustBuffer(t, "b3", 0, 2, 2),
		mustBuffer(t, "b4", 0, 2, 2),
	}
	p, err := core.NewProblem(buffers, 4)
	require.NoError(t, err)

	indices, err := iis.Extract(p, solve.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, indices)
}

func TestExtract_FeasibleProblemErrors(t *testing.T) {
	b0 := mustBuffer(t, "b0", 0, 2, 2)
	p, err := core.NewProblem([]core.Buffer{b0}, 2)
	require.NoError(t, err)

	_, err = iis.Extract(p, solve.DefaultOptions())
	assert.ErrorIs(t, err, iis.ErrFeasible)
}
