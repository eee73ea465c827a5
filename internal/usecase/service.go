package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"svw.info/nonogram/internal/clues"
	"svw.info/nonogram/internal/config"
	"svw.info/nonogram/internal/domain"
	"svw.info/nonogram/internal/ports"
	"svw.info/nonogram/internal/solver"
)

// Pipeline runs one candidate through validate → solve → score and a batch
// of candidates through a bounded worker pool.
type Pipeline struct {
	Validator ports.Validator
	Solver    ports.Solver
	Scorer    ports.Scorer
	Storage   ports.Storage
	Config    config.Config
	Logger    *slog.Logger
}

func NewPipeline(v ports.Validator, s ports.Solver, sc ports.Scorer, st ports.Storage, cfg config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Validator: v, Solver: s, Scorer: sc, Storage: st, Config: cfg, Logger: logger}
}

var errNotConfigured = errors.New("pipeline dependency not configured")

// Process validates, solves, and scores a single candidate. Exactly one of
// the puzzle and rejection results is non-nil unless an internal error
// occurred. A partial puzzle is never returned.
func (p *Pipeline) Process(ctx context.Context, cand *domain.Candidate) (*domain.Puzzle, *domain.Rejection, error) {
	if p.Validator == nil || p.Solver == nil || p.Scorer == nil {
		return nil, nil, errNotConfigured
	}
	if len(cand.Cells) != cand.Width*cand.Height {
		return nil, nil, fmt.Errorf("candidate %s: grid has %d cells, want %d",
			cand.ID, len(cand.Cells), cand.Width*cand.Height)
	}
	task := clues.FromCandidate(cand)

	rej, err := p.Validator.Validate(ctx, cand, task)
	if err != nil {
		return nil, nil, err
	}
	if rej != nil {
		return nil, rej, nil
	}

	sctx, cancel := context.WithTimeout(ctx, p.Config.SolveTimeout())
	defer cancel()
	start := time.Now()
	report, stats, err := p.Solver.Unique(sctx, task)
	if err != nil {
		if rej := classify(err, stats, time.Since(start)); rej != nil {
			return nil, rej, nil
		}
		return nil, nil, err
	}
	// The candidate satisfies its own derived clues, so a unique solution
	// can only be the candidate itself.
	if !slices.Equal(report.Solution, cand.Cells) {
		return nil, nil, fmt.Errorf("candidate %s: unique solution differs from source grid", cand.ID)
	}

	score, tier := p.Scorer.Score(task, report.Solution, report.Trace)
	return &domain.Puzzle{
		ID:        uuid.NewString(),
		Width:     cand.Width,
		Height:    cand.Height,
		Palette:   cand.Palette,
		RowClues:  task.RowClues,
		ColClues:  task.ColClues,
		Solution:  report.Solution,
		Score:     score,
		Tier:      tier,
		CreatedAt: time.Now().UnixNano(),
		Source:    cand.ID,
	}, nil, nil
}

// classify maps solver sentinels onto rejection records; unknown errors
// stay errors.
func classify(err error, stats ports.Stats, elapsed time.Duration) *domain.Rejection {
	switch {
	case errors.Is(err, solver.ErrMultipleSolutions):
		return &domain.Rejection{Reason: domain.NonUnique, Nodes: stats.Nodes, ElapsedMS: elapsed.Milliseconds()}
	case errors.Is(err, solver.ErrNoSolution):
		return &domain.Rejection{Reason: domain.Infeasible, Nodes: stats.Nodes}
	case errors.Is(err, solver.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return &domain.Rejection{Reason: domain.Timeout, Nodes: stats.Nodes, ElapsedMS: elapsed.Milliseconds()}
	case errors.Is(err, solver.ErrTooComplex):
		return &domain.Rejection{Reason: domain.TooComplex, Nodes: stats.Nodes, ElapsedMS: elapsed.Milliseconds()}
	}
	return nil
}

// Outcome is one candidate's batch result.
type Outcome struct {
	Candidate string
	Puzzle    *domain.Puzzle
	Rejection *domain.Rejection
	Err       error
}

// Report aggregates a batch run.
type Report struct {
	Outcomes []Outcome
	Accepted int
	Rejected map[domain.Reason]int
	Errors   int
}

// Batch processes candidates in parallel. Candidates are independent; a
// rejection or error on one never halts the others. Accepted puzzles are
// saved when storage is configured.
func (p *Pipeline) Batch(ctx context.Context, cands []*domain.Candidate) *Report {
	workers := p.Config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	outcomes := make([]Outcome, len(cands))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, cand := range cands {
		i, cand := i, cand
		g.Go(func() error {
			out := Outcome{Candidate: cand.ID}
			puz, rej, err := p.Process(ctx, cand)
			switch {
			case err != nil:
				out.Err = err
				p.Logger.Error("candidate failed", "candidate", cand.ID, "err", err)
			case rej != nil:
				out.Rejection = rej
				p.Logger.Info("rejected", "candidate", cand.ID, "reason", rej.Reason, "nodes", rej.Nodes)
			default:
				out.Puzzle = puz
				if p.Storage != nil {
					if err := p.Storage.Save(ctx, puz); err != nil {
						out.Err = err
						out.Puzzle = nil
						p.Logger.Error("save failed", "candidate", cand.ID, "err", err)
						break
					}
				}
				p.Logger.Info("accepted", "candidate", cand.ID, "id", puz.ID,
					"tier", puz.Tier, "score", puz.Score)
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()

	rep := &Report{Outcomes: outcomes, Rejected: make(map[domain.Reason]int)}
	for _, out := range outcomes {
		switch {
		case out.Err != nil:
			rep.Errors++
		case out.Rejection != nil:
			rep.Rejected[out.Rejection.Reason]++
		case out.Puzzle != nil:
			rep.Accepted++
		}
	}
	return rep
}

// Summary renders the per-reason counts for the end-of-run report.
func (r *Report) Summary() string {
	s := fmt.Sprintf("accepted: %d", r.Accepted)
	for _, reason := range []domain.Reason{
		domain.TooDense, domain.ColorsTooSimilar, domain.TooManyColors,
		domain.NonUnique, domain.Timeout, domain.TooComplex, domain.Infeasible,
	} {
		if n := r.Rejected[reason]; n > 0 {
			s += fmt.Sprintf("\n%s: %d", reason, n)
		}
	}
	if r.Errors > 0 {
		s += fmt.Sprintf("\nerrors: %d", r.Errors)
	}
	return s
}
