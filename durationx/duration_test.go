package durationx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/minimalloc/durationx"
)

func TestParse_Empty(t *testing.T) {
	d, err := durationx.Parse("")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestParse_InfinityLiterals(t *testing.T) {
	for _, s := range []string{"inf", "Infinite", "INFINITY", "  inf  "} {
		d, err := durationx.Parse(s)
		require.NoError(t, err, s)
		assert.Zero(t, d, s)
	}
}

func TestParse_BareSeconds(t *testing.T) {
	d, err := durationx.Parse("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, d)
}

func TestParse_Suffixes(t *testing.T) {
	cases := map[string]time.Duration{
		"30s": 30 * time.Second,
		"5m":  5 * time.Minute,
		"2h":  2 * time.Hour,
	}
	for s, want := range cases {
		d, err := durationx.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, d, s)
	}
}

func TestParse_NegativeRejected(t *testing.T) {
	_, err := durationx.Parse("-5s")
	assert.ErrorIs(t, err, durationx.ErrInvalidDuration)
}

func TestParse_Garbage(t *testing.T) {
	_, err := durationx.Parse("soon")
	assert.ErrorIs(t, err, durationx.ErrInvalidDuration)
}
