package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/nonogram/internal/domain"
	"svw.info/nonogram/internal/ports"
)

// Unique determines whether exactly one grid satisfies the task's clues.
// It propagates to a fixpoint, then searches for up to two solutions and
// stops the instant a second one appears. A fixpoint with no Unknown cells
// needs no search: every propagated deduction holds in all solutions, so a
// fully determined fixpoint is the unique solution.
func (e *Engine) Unique(ctx context.Context, t *domain.Task) (*ports.SolveReport, ports.Stats, error) {
	return e.run(ctx, t, 2)
}

// Solve finds one solution without proving uniqueness.
func (e *Engine) Solve(ctx context.Context, t *domain.Task) (*ports.SolveReport, ports.Stats, error) {
	return e.run(ctx, t, 1)
}

func (e *Engine) run(ctx context.Context, t *domain.Task, limit int) (*ports.SolveReport, ports.Stats, error) {
	start := time.Now()
	s := newSearch(t, e.opts)
	s.limit = limit

	stats := func() ports.Stats {
		return ports.Stats{Nodes: s.nodes, Duration: time.Since(start)}
	}

	if err := s.propagate(ctx); err != nil {
		if errors.Is(err, errContradiction) {
			return nil, stats(), ErrNoSolution
		}
		return nil, stats(), err
	}
	if s.complete() {
		return &ports.SolveReport{Solution: s.cells, Trace: s.trace}, stats(), nil
	}

	err := s.dfs(ctx, 1)
	if errors.Is(err, errContradiction) {
		err = nil
	}
	if err != nil {
		return nil, stats(), err
	}
	switch len(s.solutions) {
	case 0:
		return nil, stats(), ErrNoSolution
	case 1:
		return &ports.SolveReport{Solution: s.solutions[0], Trace: s.trace}, stats(), nil
	default:
		return nil, stats(), ErrMultipleSolutions
	}
}
