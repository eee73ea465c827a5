package domain

import "math"

// Cell states. A cell is either undetermined or carries a color index,
// where index 0 means confirmed empty background.
const (
	Unknown int8 = -1
	Empty   int8 = 0
)

// Color is an RGB palette entry.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Distance returns a luminance-weighted Euclidean distance between two
// colors, weighting green over red over blue to approximate human
// perception. Range is 0 to roughly 441.
func (c Color) Distance(o Color) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(0.9*dr*dr + 1.5*dg*dg + 0.6*db*db)
}

// Palette is an ordered color list; index 0 is the background.
type Palette []Color

// ColorCount returns the number of palette entries excluding background.
func (p Palette) ColorCount() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Run is one colored segment of a line clue.
type Run struct {
	Length int `json:"length"`
	Color  int `json:"color"`
}

// Clue is the ordered run list for one row or column. Consecutive runs of
// the same color require at least one empty cell between them; runs of
// different colors may abut.
type Clue []Run

// MinLength returns the shortest line the clue fits in: run lengths plus
// the mandatory gaps between same-color neighbors.
func (c Clue) MinLength() int {
	n := 0
	for i, r := range c {
		n += r.Length
		if i > 0 && c[i-1].Color == r.Color {
			n++
		}
	}
	return n
}

// Candidate is an immutable input grid: the ground-truth solution extracted
// from an image, cells indexed row*Width+col.
type Candidate struct {
	ID      string  `json:"id,omitempty"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Palette Palette `json:"palette"`
	Cells   []int8  `json:"grid"`
}

// At returns the cell at (row, col).
func (c *Candidate) At(row, col int) int8 { return c.Cells[row*c.Width+col] }

// Task is the solver's input: dimensions, color count, and the derived
// row/column clues. It omits the candidate grid so the solver can only
// prove things from the clues.
type Task struct {
	Width    int
	Height   int
	Colors   int
	RowClues []Clue
	ColClues []Clue
}

// SolveTrace accumulates per-attempt counters consumed by the scorer.
type SolveTrace struct {
	// Cells resolved by the interval-overlap core of a single line pass.
	OverlapDeductions int
	// Cells resolved by edge alignment or pinned-run reasoning.
	EdgeDeductions int
	// Cells resolved only in fixpoint iterations after the first pass,
	// i.e. through cross-line dependency chains.
	CrossDeductions int
	// Branches explored and the deepest branch reached; both zero when
	// propagation alone solved the puzzle.
	Branches int
	MaxDepth int
}

// Puzzle is an accepted, proven-unique nonogram.
type Puzzle struct {
	ID        string  `json:"id"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Palette   Palette `json:"palette"`
	RowClues  []Clue  `json:"rowClues"`
	ColClues  []Clue  `json:"colClues"`
	Solution  []int8  `json:"solution"`
	Score     float64 `json:"score"`
	Tier      Tier    `json:"tier"`
	CreatedAt int64   `json:"createdAt,omitempty"`
	// Optional user metadata
	Source string `json:"source,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Tier      Tier   `json:"tier"`
	CreatedAt int64  `json:"createdAt"`
}

// Axis identifies whether a line diagnostic refers to a row or a column.
type Axis string

const (
	AxisRow Axis = "row"
	AxisCol Axis = "col"
)

// Rejection records why a candidate was refused, with the diagnostic
// context relevant to its reason.
type Rejection struct {
	Reason Reason `json:"reason"`
	// Line diagnostics (too_dense, infeasible)
	Axis Axis `json:"axis,omitempty"`
	Line int  `json:"line,omitempty"`
	// Palette diagnostics (colors_too_similar)
	ColorA   int     `json:"colorA,omitempty"`
	ColorB   int     `json:"colorB,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	// Search diagnostics (timeout, too_complex, valid_multiple)
	ElapsedMS int64 `json:"elapsedMs,omitempty"`
	Nodes     int   `json:"nodes,omitempty"`
}
