package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"id,lower,upper,size\nb1,0,3,4\nb2,3,9,4\nb3,0,9,4\nb4,9,21,4\nb5,0,21,4\n"), 0o644))

	code := run([]string{"-input", input, "-output", output, "-capacity", "12", "-validate"})
	assert.Equal(t, 0, code)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "id,lower,upper,size"))
}

func TestRun_MissingCapacityFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("id,lower,upper,size\nb1,0,2,2\n"), 0o644))

	code := run([]string{"-input", input, "-output", output})
	assert.Equal(t, 1, code)
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "output must not be created on failure")
}

func TestRun_InvalidCSVFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("start,size,upper\n6,18,1,12\n"), 0o644))

	code := run([]string{"-input", input, "-output", output, "-capacity", "12"})
	assert.Equal(t, 1, code)
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "output must not be created on failure")
}

func TestRun_MinimizeCapacity(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"id,lower,upper,size\nb1,0,3,4\nb2,3,9,4\nb3,0,9,4\nb4,9,21,4\nb5,0,21,4\n"), 0o644))

	code := run([]string{"-input", input, "-output", output, "-minimize-capacity", "-validate"})
	assert.Equal(t, 0, code)
}
