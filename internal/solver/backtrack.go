package solver

import (
	"context"
	"math/bits"
	"slices"
	"time"

	"svw.info/nonogram/internal/domain"
)

// Engine is the propagation-first solver: line deduction to a fixpoint,
// then depth-first branching on the most constrained cell.
type Engine struct {
	opts Options
}

// Options bound a single solve attempt.
type Options struct {
	// Timeout is the wall-clock budget; zero disables it.
	Timeout time.Duration
	// MaxNodes caps branch expansions; zero disables it.
	MaxNodes int
}

// New returns an Engine with the given budgets.
func New(opts Options) *Engine { return &Engine{opts: opts} }

// pickCell selects the Unknown cell with the fewest feasible values, ties
// broken row-major so repeated runs branch identically. The candidate mask
// is the intersection of the cell's row and column feasible sets.
func (s *search) pickCell() (idx int, cand uint16, found bool, err error) {
	rows := make([]*lineAnalysis, s.t.Height)
	cols := make([]*lineAnalysis, s.t.Width)
	for r := 0; r < s.t.Height; r++ {
		la, ok := analyzeLine(s.row(r), s.t.RowClues[r])
		if !ok {
			return 0, 0, false, errContradiction
		}
		rows[r] = la
	}
	for c := 0; c < s.t.Width; c++ {
		la, ok := analyzeLine(s.col(c), s.t.ColClues[c])
		if !ok {
			return 0, 0, false, errContradiction
		}
		cols[c] = la
	}
	best := 17
	for r := 0; r < s.t.Height; r++ {
		for c := 0; c < s.t.Width; c++ {
			i := r*s.t.Width + c
			if s.cells[i] != domain.Unknown {
				continue
			}
			m := rows[r].masks[c] & cols[c].masks[r]
			if m == 0 {
				return 0, 0, false, errContradiction
			}
			if n := bits.OnesCount16(m); n < best {
				best = n
				idx = i
				cand = m
				found = true
			}
		}
	}
	return idx, cand, found, nil
}

// dfs explores branches until s.limit solutions are recorded or the space
// is exhausted. Contradictions prune; budget errors propagate.
func (s *search) dfs(ctx context.Context, depth int) error {
	idx, cand, found, err := s.pickCell()
	if err != nil {
		return err
	}
	if !found {
		s.solutions = append(s.solutions, slices.Clone(s.cells))
		return nil
	}
	if depth > s.trace.MaxDepth {
		s.trace.MaxDepth = depth
	}
	for v := int8(0); cand != 0; v++ {
		if cand&1 == 0 {
			cand >>= 1
			continue
		}
		cand >>= 1
		if err := s.checkBudget(ctx); err != nil {
			return err
		}
		s.nodes++
		s.trace.Branches++
		mark := len(s.log)
		s.set(idx, v)
		err := s.propagate(ctx)
		if err == nil {
			err = s.dfs(ctx, depth+1)
		}
		s.rewind(mark)
		if err == errContradiction {
			continue
		}
		if err != nil {
			return err
		}
		if len(s.solutions) >= s.limit {
			return nil
		}
	}
	return nil
}
