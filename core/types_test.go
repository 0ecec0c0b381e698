package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/minimalloc/core"
)

func TestNewBuffer_Defaults(t *testing.T) {
	b, err := core.NewBuffer("b0", core.Interval{Lower: 0, Upper: 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.Alignment)
	assert.Nil(t, b.Offset)
	assert.Nil(t, b.Hint)
}

func TestNewBuffer_Options(t *testing.T) {
	b, err := core.NewBuffer("b1", core.Interval{Lower: 0, Upper: 10}, 4,
		core.WithAlignment(2), core.WithOffset(6), core.WithHint(4))
	require.NoError(t, err)
	assert.EqualValues(t, 2, b.Alignment)
	require.NotNil(t, b.Offset)
	assert.EqualValues(t, 6, *b.Offset)
	require.NotNil(t, b.Hint)
	assert.EqualValues(t, 4, *b.Hint)
}

func TestNewBuffer_Preconditions(t *testing.T) {
	cases := []struct {
		name    string
		build   func() (*core.Buffer, error)
		wantErr error
	}{
		{
			name: "empty id",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("", core.Interval{Lower: 0, Upper: 1}, 1)
			},
			wantErr: core.ErrEmptyID,
		},
		{
			name: "empty lifespan",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 3, Upper: 3}, 1)
			},
			wantErr: core.ErrEmptyLifespan,
		},
		{
			name: "non-positive size",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 1}, 0)
			},
			wantErr: core.ErrNonPositiveSize,
		},
		{
			name: "non-positive alignment",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 1}, 1, core.WithAlignment(0))
			},
			wantErr: core.ErrNonPositiveAlignment,
		},
		{
			name: "gap outside lifespan",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 5}, 1,
					core.WithGaps(core.NewGap(core.Interval{Lower: 4, Upper: 6})))
			},
			wantErr: core.ErrGapOutsideLifespan,
		},
		{
			name: "overlapping gaps",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 10}, 1,
					core.WithGaps(
						core.NewGap(core.Interval{Lower: 1, Upper: 4}),
						core.NewGap(core.Interval{Lower: 3, Upper: 6}),
					))
			},
			wantErr: core.ErrGapsOverlap,
		},
		{
			name: "window out of range",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 10}, 4,
					core.WithGaps(core.NewWindowedGap(core.Interval{Lower: 1, Upper: 4}, core.Interval{Lower: 2, Upper: 6})))
			},
			wantErr: core.ErrWindowOutOfRange,
		},
		{
			name: "negative offset",
			build: func() (*core.Buffer, error) {
				return core.NewBuffer("b", core.Interval{Lower: 0, Upper: 1}, 1, core.WithOffset(-1))
			},
			wantErr: core.ErrNegativeOffset,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewProblem_CapacityTooSmall(t *testing.T) {
	b, err := core.NewBuffer("b0", core.Interval{Lower: 0, Upper: 2}, 5)
	require.NoError(t, err)

	_, err = core.NewProblem([]core.Buffer{*b}, 4)
	assert.ErrorIs(t, err, core.ErrCapacityTooSmall)
}

func TestNewProblem_Empty(t *testing.T) {
	p, err := core.NewProblem(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, p.Buffers)
	assert.Zero(t, p.Capacity)
}

func TestComputeHeight(t *testing.T) {
	b0, _ := core.NewBuffer("b0", core.Interval{Lower: 0, Upper: 2}, 2)
	b1, _ := core.NewBuffer("b1", core.Interval{Lower: 0, Upper: 2}, 3)
	p, err := core.NewProblem([]core.Buffer{*b0, *b1}, 10)
	require.NoError(t, err)

	height := core.ComputeHeight(p, []int32{0, 2})
	assert.EqualValues(t, 5, height)
}

func TestInterval_Intersect(t *testing.T) {
	a := core.Interval{Lower: 0, Upper: 10}
	b := core.Interval{Lower: 5, Upper: 15}
	got, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, core.Interval{Lower: 5, Upper: 10}, got)

	c := core.Interval{Lower: 10, Upper: 20}
	_, ok = a.Intersect(c)
	assert.False(t, ok, "touching half-open intervals must not overlap")
}
