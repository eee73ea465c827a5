package solver

import (
	"context"
	"errors"
	"slices"
	"time"

	"svw.info/nonogram/internal/clues"
	"svw.info/nonogram/internal/domain"
	"svw.info/nonogram/internal/ports"
)

// Brute exhaustively enumerates every grid consistent with the row clues
// and checks the columns. It exists as a reference implementation behind
// the same port: tests cross-check the engine's verdicts against it and
// the CLI can select it for small grids. It emits an empty SolveTrace, so
// difficulty scores computed from its reports ignore all trace features;
// use it to verify verdicts, not to grade puzzles.
type Brute struct {
	// MaxCells refuses grids whose enumeration would be unbounded in
	// practice. Defaults to 64.
	MaxCells int
}

func NewBrute() *Brute { return &Brute{MaxCells: 64} }

var errBruteTooLarge = errors.New("grid too large for brute solver")

func (b *Brute) Solve(ctx context.Context, t *domain.Task) (*ports.SolveReport, ports.Stats, error) {
	return b.run(ctx, t, 1)
}

func (b *Brute) Unique(ctx context.Context, t *domain.Task) (*ports.SolveReport, ports.Stats, error) {
	return b.run(ctx, t, 2)
}

func (b *Brute) run(ctx context.Context, t *domain.Task, limit int) (*ports.SolveReport, ports.Stats, error) {
	start := time.Now()
	maxCells := b.MaxCells
	if maxCells <= 0 {
		maxCells = 64
	}
	if t.Width*t.Height > maxCells {
		return nil, ports.Stats{}, errBruteTooLarge
	}

	rowChoices := make([][][]int8, t.Height)
	for r := 0; r < t.Height; r++ {
		rowChoices[r] = enumerateLine(t.RowClues[r], t.Width)
		if len(rowChoices[r]) == 0 {
			return nil, ports.Stats{Duration: time.Since(start)}, ErrNoSolution
		}
	}

	grid := make([]int8, t.Width*t.Height)
	var found [][]int8
	nodes := 0
	var rec func(r int) error
	rec = func(r int) error {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrTimeout
			}
			return err
		}
		if r == t.Height {
			nodes++
			for c := 0; c < t.Width; c++ {
				col := make([]int8, t.Height)
				for rr := 0; rr < t.Height; rr++ {
					col[rr] = grid[rr*t.Width+c]
				}
				if !slices.Equal(clues.EncodeLine(col), t.ColClues[c]) {
					return nil
				}
			}
			found = append(found, slices.Clone(grid))
			return nil
		}
		for _, line := range rowChoices[r] {
			copy(grid[r*t.Width:(r+1)*t.Width], line)
			if err := rec(r + 1); err != nil {
				return err
			}
			if len(found) >= limit {
				return nil
			}
		}
		return nil
	}
	if err := rec(0); err != nil {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
	}

	stats := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	switch {
	case len(found) == 0:
		return nil, stats, ErrNoSolution
	case len(found) == 1 || limit == 1:
		return &ports.SolveReport{Solution: found[0]}, stats, nil
	default:
		return nil, stats, ErrMultipleSolutions
	}
}

// enumerateLine generates every placement of the clue in a line of length
// n, honoring the same-color gap rule.
func enumerateLine(clue domain.Clue, n int) [][]int8 {
	var out [][]int8
	line := make([]int8, n)
	var rec func(pos, j int)
	rec = func(pos, j int) {
		if j == len(clue) {
			for p := pos; p < n; p++ {
				line[p] = domain.Empty
			}
			out = append(out, slices.Clone(line))
			return
		}
		run := clue[j]
		for s := pos; s+run.Length <= n; s++ {
			for p := pos; p < s; p++ {
				line[p] = domain.Empty
			}
			for p := s; p < s+run.Length; p++ {
				line[p] = int8(run.Color)
			}
			next := s + run.Length
			if j+1 < len(clue) && clue[j+1].Color == run.Color {
				if next >= n {
					continue
				}
				line[next] = domain.Empty
				rec(next+1, j+1)
			} else {
				rec(next, j+1)
			}
		}
	}
	rec(0, 0)
	return out
}
