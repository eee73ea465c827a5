// Package scorer grades accepted puzzles. The score is a weighted sum of
// structural features and solve-trace counters; all weights are
// non-negative, so the score is monotone in grid dimension, color count,
// expensive-technique usage, and backtracking effort by construction.
package scorer

import (
	"math"

	"svw.info/nonogram/internal/domain"
)

// Weights is the scoring tuning surface. Humans effectively cannot
// backtrack, so any branching at all adds the flat penalty on top of the
// per-branch terms.
type Weights struct {
	Dimension     float64 `yaml:"dimension" validate:"gte=0"`
	Colors        float64 `yaml:"colors" validate:"gte=0"`
	Fragmentation float64 `yaml:"fragmentation" validate:"gte=0"`
	Sparsity      float64 `yaml:"sparsity" validate:"gte=0"`
	Edge          float64 `yaml:"edge" validate:"gte=0"`
	Cross         float64 `yaml:"cross" validate:"gte=0"`
	Backtrack     float64 `yaml:"backtrack" validate:"gte=0"`
	Branch        float64 `yaml:"branch" validate:"gte=0"`
	Depth         float64 `yaml:"depth" validate:"gte=0"`
}

// DefaultWeights were calibrated so that propagation-only small puzzles
// land in the trivial/easy band and any branch-requiring puzzle is pushed
// at least two tiers up.
func DefaultWeights() Weights {
	return Weights{
		Dimension:     0.4,
		Colors:        1.5,
		Fragmentation: 2.0,
		Sparsity:      3.0,
		Edge:          0.5,
		Cross:         0.3,
		Backtrack:     12.0,
		Branch:        2.0,
		Depth:         1.0,
	}
}

// TierCut maps an inclusive lower score bound to a tier.
type TierCut struct {
	Tier domain.Tier `yaml:"tier"`
	Min  float64     `yaml:"min" validate:"gte=0"`
}

// DefaultTiers returns the ascending threshold table.
func DefaultTiers() []TierCut {
	return []TierCut{
		{Tier: domain.Trivial, Min: 0},
		{Tier: domain.Easy, Min: 8},
		{Tier: domain.Medium, Min: 12},
		{Tier: domain.Hard, Min: 16},
		{Tier: domain.Challenging, Min: 22},
		{Tier: domain.Expert, Min: 30},
		{Tier: domain.Master, Min: 40},
	}
}

// Grader computes scores and maps them to tiers.
type Grader struct {
	weights Weights
	cuts    []TierCut
}

func New(w Weights, cuts []TierCut) *Grader {
	if len(cuts) == 0 {
		cuts = DefaultTiers()
	}
	return &Grader{weights: w, cuts: cuts}
}

// Score grades one accepted puzzle.
func (g *Grader) Score(t *domain.Task, solution []int8, trace domain.SolveTrace) (float64, domain.Tier) {
	w := g.weights

	maxDim := t.Width
	if t.Height > maxDim {
		maxDim = t.Height
	}
	filled := 0
	colorSeen := make(map[int8]bool)
	for _, c := range solution {
		if c > domain.Empty {
			filled++
			colorSeen[c] = true
		}
	}
	total := t.Width * t.Height
	fillRatio := float64(filled) / float64(total)
	runs := 0
	for _, c := range t.RowClues {
		runs += len(c)
	}
	for _, c := range t.ColClues {
		runs += len(c)
	}
	fragmentation := float64(runs) / float64(t.Width+t.Height)

	score := w.Dimension * float64(maxDim)
	score += w.Colors * float64(len(colorSeen))
	score += w.Fragmentation * fragmentation
	score += w.Sparsity * (1 - fillRatio)

	// Expensive-technique usage enters as raw counts. Dividing by grid
	// size would let a larger grid dilute the terms faster than the
	// dimension term grows, breaking monotonicity in maxDim.
	score += w.Edge * float64(trace.EdgeDeductions)
	score += w.Cross * float64(trace.CrossDeductions)

	if trace.Branches > 0 {
		score += w.Backtrack
		score += w.Branch * math.Log2(float64(trace.Branches)+1)
		score += w.Depth * float64(trace.MaxDepth)
	}

	return score, g.tierFor(score)
}

func (g *Grader) tierFor(score float64) domain.Tier {
	tier := g.cuts[0].Tier
	for _, cut := range g.cuts {
		if score >= cut.Min {
			tier = cut.Tier
		}
	}
	return tier
}
