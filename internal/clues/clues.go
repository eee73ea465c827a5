// Package clues derives row and column run-length clues from a candidate
// grid and packages them as a solver task.
package clues

import "svw.info/nonogram/internal/domain"

// EncodeLine run-length encodes one line of determined cells, skipping
// background. Unknown cells must not appear in a candidate grid; they are
// treated as background here.
func EncodeLine(cells []int8) domain.Clue {
	clue := domain.Clue{}
	i := 0
	for i < len(cells) {
		c := cells[i]
		if c <= domain.Empty {
			i++
			continue
		}
		j := i
		for j < len(cells) && cells[j] == c {
			j++
		}
		clue = append(clue, domain.Run{Length: j - i, Color: int(c)})
		i = j
	}
	return clue
}

// FromCandidate builds the solver task for a candidate: every row and
// column of the ground-truth grid is encoded as an ordered run list.
func FromCandidate(c *domain.Candidate) *domain.Task {
	t := &domain.Task{
		Width:    c.Width,
		Height:   c.Height,
		Colors:   c.Palette.ColorCount(),
		RowClues: make([]domain.Clue, c.Height),
		ColClues: make([]domain.Clue, c.Width),
	}
	row := make([]int8, c.Width)
	for r := 0; r < c.Height; r++ {
		copy(row, c.Cells[r*c.Width:(r+1)*c.Width])
		t.RowClues[r] = EncodeLine(row)
	}
	col := make([]int8, c.Height)
	for cl := 0; cl < c.Width; cl++ {
		for r := 0; r < c.Height; r++ {
			col[r] = c.At(r, cl)
		}
		t.ColClues[cl] = EncodeLine(col)
	}
	return t
}
