package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/nonogram/internal/domain"
)

// undoRec is one entry of the search undo log.
type undoRec struct {
	idx  int32
	prev int8
}

// search is the mutable state of one solve attempt: a flat cell array, an
// undo log for cheap backtracking, trace counters, and the budgets.
type search struct {
	t     *domain.Task
	cells []int8
	log   []undoRec
	trace domain.SolveTrace

	nodes    int
	maxNodes int
	deadline time.Time

	limit     int
	solutions [][]int8

	rowBuf []int8
	colBuf []int8
}

func newSearch(t *domain.Task, opts Options) *search {
	s := &search{
		t:        t,
		cells:    make([]int8, t.Width*t.Height),
		maxNodes: opts.MaxNodes,
		limit:    2,
		rowBuf:   make([]int8, t.Width),
		colBuf:   make([]int8, t.Height),
	}
	if opts.Timeout > 0 {
		s.deadline = time.Now().Add(opts.Timeout)
	}
	for i := range s.cells {
		s.cells[i] = domain.Unknown
	}
	return s
}

func (s *search) set(idx int, v int8) {
	s.log = append(s.log, undoRec{idx: int32(idx), prev: s.cells[idx]})
	s.cells[idx] = v
}

func (s *search) rewind(mark int) {
	for len(s.log) > mark {
		rec := s.log[len(s.log)-1]
		s.log = s.log[:len(s.log)-1]
		s.cells[rec.idx] = rec.prev
	}
}

// checkBudget enforces the node and wall-clock bounds. The node budget is
// checked first so a thrashing search within the time budget reports
// ErrTooComplex, not ErrTimeout. Cancellation is not a timeout; it
// propagates as context.Canceled so callers abort instead of rejecting
// the candidate.
func (s *search) checkBudget(ctx context.Context) error {
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		return ErrTooComplex
	}
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return ErrTimeout
	}
	return nil
}

func (s *search) row(r int) []int8 {
	copy(s.rowBuf, s.cells[r*s.t.Width:(r+1)*s.t.Width])
	return s.rowBuf
}

func (s *search) col(c int) []int8 {
	for r := 0; r < s.t.Height; r++ {
		s.colBuf[r] = s.cells[r*s.t.Width+c]
	}
	return s.colBuf
}

func (s *search) complete() bool {
	for _, c := range s.cells {
		if c == domain.Unknown {
			return false
		}
	}
	return true
}

// applyLine analyzes one line and commits every forced cell, updating the
// trace. pass 1 deductions are split overlap vs edge; later passes only
// fire through cross-line chains and are counted as such.
func (s *search) applyLine(line []int8, clue domain.Clue, pass int, index func(i int) int) (bool, error) {
	la, ok := analyzeLine(line, clue)
	if !ok {
		return false, errContradiction
	}
	changed := false
	for i := range line {
		if line[i] != domain.Unknown {
			continue
		}
		v, forced := forcedValue(la.masks[i])
		if !forced {
			continue
		}
		s.set(index(i), v)
		changed = true
		switch {
		case pass > 1:
			s.trace.CrossDeductions++
		case la.classify(clue, i, v) == dedOverlap:
			s.trace.OverlapDeductions++
		default:
			s.trace.EdgeDeductions++
		}
	}
	return changed, nil
}

// propagate drives the grid to a fixpoint: every row then every column,
// repeated until a full pass deduces nothing. A contradiction on any line
// aborts immediately.
func (s *search) propagate(ctx context.Context) error {
	w := s.t.Width
	for pass := 1; ; pass++ {
		if err := s.checkBudget(ctx); err != nil {
			return err
		}
		changed := false
		for r := 0; r < s.t.Height; r++ {
			ch, err := s.applyLine(s.row(r), s.t.RowClues[r], pass, func(i int) int { return r*w + i })
			if err != nil {
				return err
			}
			changed = changed || ch
		}
		for c := 0; c < s.t.Width; c++ {
			ch, err := s.applyLine(s.col(c), s.t.ColClues[c], pass, func(i int) int { return i*w + c })
			if err != nil {
				return err
			}
			changed = changed || ch
		}
		if !changed {
			return nil
		}
	}
}
