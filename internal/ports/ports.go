package ports

import (
	"context"
	"time"

	"svw.info/nonogram/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// SolveReport is the outcome of a successful solve or uniqueness proof.
type SolveReport struct {
	Solution []int8
	Trace    domain.SolveTrace
}

// Solver finds a task's solution and can prove uniqueness.
type Solver interface {
	Solve(ctx context.Context, t *domain.Task) (*SolveReport, Stats, error)
	Unique(ctx context.Context, t *domain.Task) (*SolveReport, Stats, error)
}

// Validator performs fast structural checks on a candidate before the
// solver runs. A nil rejection means the candidate passed.
type Validator interface {
	Validate(ctx context.Context, c *domain.Candidate, t *domain.Task) (*domain.Rejection, error)
}

// Scorer grades an accepted puzzle from its solve trace and structure.
type Scorer interface {
	Score(t *domain.Task, solution []int8, trace domain.SolveTrace) (float64, domain.Tier)
}

// Storage persists and retrieves accepted puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
