package solver

import (
	"math/bits"

	"svw.info/nonogram/internal/domain"
)

// Per-cell value masks: bit 0 is background, bit c is color c. Palettes are
// capped well below 16 colors, so uint16 is enough.
const emptyBit uint16 = 1

func colorBit(c int) uint16 { return 1 << uint(c) }

// lineAnalysis is the result of analyzing one line against its clue: for
// every cell, the set of values it takes in at least one consistent
// placement, plus each run's leftmost and rightmost feasible start.
type lineAnalysis struct {
	masks    []uint16
	minStart []int
	maxStart []int
}

func canEmpty(cells []int8, i int) bool {
	return cells[i] == domain.Unknown || cells[i] == domain.Empty
}

func canColor(cells []int8, i int, c int8) bool {
	return cells[i] == domain.Unknown || cells[i] == c
}

// analyzeLine computes the exact feasible value set of every cell in one
// line. It walks a (cell, run) state space whose transitions place runs in
// clue order, forbid overlapping a determined cell of another color, and
// insert the mandatory gap between same-color neighbors. The reported
// masks collect only transitions lying on complete consistent placements.
// Returns ok=false when no placement is consistent with the determined
// cells.
func analyzeLine(cells []int8, clue domain.Clue) (*lineAnalysis, bool) {
	n := len(cells)
	k := len(clue)

	// suffix[i][j]: cells i..n-1 can hold runs j..k-1.
	suffix := make([][]bool, n+1)
	for i := range suffix {
		suffix[i] = make([]bool, k+1)
	}
	suffix[n][k] = true
	for i := n - 1; i >= 0; i-- {
		suffix[i][k] = canEmpty(cells, i) && suffix[i+1][k]
	}
	// placeable reports whether run j starting at i fits its cells; the
	// continuation state is returned so the forward pass can share it.
	place := func(i, j int) (ti, tj int, ok bool) {
		run := clue[j]
		end := i + run.Length
		if end > n {
			return 0, 0, false
		}
		for p := i; p < end; p++ {
			if !canColor(cells, p, int8(run.Color)) {
				return 0, 0, false
			}
		}
		if j+1 < k && clue[j+1].Color == run.Color {
			if end >= n || !canEmpty(cells, end) {
				return 0, 0, false
			}
			return end + 1, j + 1, true
		}
		return end, j + 1, true
	}
	for j := k - 1; j >= 0; j-- {
		for i := n; i >= 0; i-- {
			ok := false
			if i < n && canEmpty(cells, i) && suffix[i+1][j] {
				ok = true
			}
			if !ok {
				if ti, tj, fits := place(i, j); fits && suffix[ti][tj] {
					ok = true
				}
			}
			suffix[i][j] = ok
		}
	}
	if !suffix[0][0] {
		return nil, false
	}

	la := &lineAnalysis{
		masks:    make([]uint16, n),
		minStart: make([]int, k),
		maxStart: make([]int, k),
	}
	for j := 0; j < k; j++ {
		la.minStart[j] = n
		la.maxStart[j] = -1
	}

	// Forward reachability from (0,0), gated by the suffix table so only
	// transitions on accepting paths contribute to the masks.
	reach := make([][]bool, n+1)
	for i := range reach {
		reach[i] = make([]bool, k+1)
	}
	reach[0][0] = true
	for i := 0; i <= n; i++ {
		for j := 0; j <= k; j++ {
			if !reach[i][j] {
				continue
			}
			if i < n && canEmpty(cells, i) && suffix[i+1][j] {
				reach[i+1][j] = true
				la.masks[i] |= emptyBit
			}
			if j < k {
				if ti, tj, fits := place(i, j); fits && suffix[ti][tj] {
					reach[ti][tj] = true
					run := clue[j]
					for p := i; p < i+run.Length; p++ {
						la.masks[p] |= colorBit(run.Color)
					}
					if ti == i+run.Length+1 {
						// mandatory same-color gap cell
						la.masks[i+run.Length] |= emptyBit
					}
					if i < la.minStart[j] {
						la.minStart[j] = i
					}
					if i > la.maxStart[j] {
						la.maxStart[j] = i
					}
				}
			}
		}
	}
	return la, true
}

// deduction classes feeding the solve trace.
type dedClass int

const (
	dedOverlap dedClass = iota
	dedEdge
)

// classify labels one forced cell. A colored cell inside its run's
// leftmost/rightmost overlap window is the basic interval deduction; a
// forced empty outside every run's feasible window likewise. Anything else
// required edge alignment or pinned-run reasoning.
func (la *lineAnalysis) classify(clue domain.Clue, i int, v int8) dedClass {
	if v == domain.Empty {
		for j, run := range clue {
			if i >= la.minStart[j] && i <= la.maxStart[j]+run.Length-1 {
				return dedEdge
			}
		}
		return dedOverlap
	}
	for j, run := range clue {
		if run.Color != int(v) {
			continue
		}
		if i >= la.maxStart[j] && i <= la.minStart[j]+run.Length-1 {
			return dedOverlap
		}
	}
	return dedEdge
}

// forcedValue returns the single value a cell's mask allows, if exactly one.
func forcedValue(mask uint16) (int8, bool) {
	if bits.OnesCount16(mask) != 1 {
		return 0, false
	}
	return int8(bits.TrailingZeros16(mask)), true
}
