package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/nonogram/internal/domain"
)

func plusCandidateJSON(t *testing.T, dir string) string {
	t.Helper()
	cells := make([]int8, 25)
	for i := 0; i < 5; i++ {
		cells[2*5+i] = 1
		cells[i*5+2] = 1
	}
	c := domain.Candidate{
		Width:   5,
		Height:  5,
		Palette: domain.Palette{{}, {R: 200}},
		Cells:   cells,
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	path := filepath.Join(dir, "plus.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunWithBruteSolverStoresAcceptedPuzzle(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "puzzles")
	candPath := plusCandidateJSON(t, dir)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"run", candPath, "--solver", "brute", "--out", out})
	require.NoError(t, root.Execute())

	matches, err := filepath.Glob(filepath.Join(out, "trivial", "*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var p domain.Puzzle
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "plus", p.Source)
	assert.Equal(t, domain.Trivial, p.Tier)
	assert.Equal(t, 5, p.Width)
}
