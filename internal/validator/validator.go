// Package validator holds the fail-fast structural checks that run before
// the solver: they are pure functions of the palette and derived clues and
// reject unsuitable candidates without paying for a search.
package validator

import (
	"context"

	"svw.info/nonogram/internal/domain"
)

// Limits configures the structural checks.
type Limits struct {
	// MinColorDistance is the smallest allowed perceptual distance
	// between two non-background palette colors.
	MinColorDistance float64
	// MaxColors caps the palette size excluding background.
	MaxColors int
	// MaxRunsPerLine caps any single line's clue length.
	MaxRunsPerLine int
}

type Structural struct {
	limits Limits
}

func New(limits Limits) *Structural { return &Structural{limits: limits} }

// Validate applies the checks in cheapest-first order and returns the
// first failure. A nil rejection means the candidate may be solved.
func (v *Structural) Validate(ctx context.Context, c *domain.Candidate, t *domain.Task) (*domain.Rejection, error) {
	if r := v.checkPalette(c.Palette); r != nil {
		return r, nil
	}
	if r := v.checkClues(domain.AxisRow, t.RowClues, t.Width); r != nil {
		return r, nil
	}
	if r := v.checkClues(domain.AxisCol, t.ColClues, t.Height); r != nil {
		return r, nil
	}
	return nil, nil
}

func (v *Structural) checkPalette(p domain.Palette) *domain.Rejection {
	if p.ColorCount() > v.limits.MaxColors {
		return &domain.Rejection{Reason: domain.TooManyColors}
	}
	// background (index 0) is exempt from the separability requirement
	for a := 1; a < len(p); a++ {
		for b := a + 1; b < len(p); b++ {
			if d := p[a].Distance(p[b]); d < v.limits.MinColorDistance {
				return &domain.Rejection{
					Reason:   domain.ColorsTooSimilar,
					ColorA:   a,
					ColorB:   b,
					Distance: d,
				}
			}
		}
	}
	return nil
}

func (v *Structural) checkClues(axis domain.Axis, lines []domain.Clue, lineLen int) *domain.Rejection {
	for i, clue := range lines {
		if len(clue) > v.limits.MaxRunsPerLine {
			return &domain.Rejection{Reason: domain.TooDense, Axis: axis, Line: i}
		}
		if clue.MinLength() > lineLen {
			return &domain.Rejection{Reason: domain.Infeasible, Axis: axis, Line: i}
		}
	}
	return nil
}
