package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/nonogram/internal/domain"
)

func squareTask(n, runsPerLine int) *domain.Task {
	clue := domain.Clue{}
	for i := 0; i < runsPerLine; i++ {
		clue = append(clue, domain.Run{Length: 1, Color: 1})
	}
	t := &domain.Task{Width: n, Height: n, Colors: 1}
	for i := 0; i < n; i++ {
		t.RowClues = append(t.RowClues, clue)
		t.ColClues = append(t.ColClues, clue)
	}
	return t
}

func solutionWithColors(cells int, colors ...int8) []int8 {
	sol := make([]int8, cells)
	for i, c := range colors {
		sol[i] = c
	}
	return sol
}

func grader() *Grader { return New(DefaultWeights(), DefaultTiers()) }

func TestScoreMonotoneInBacktracking(t *testing.T) {
	task := squareTask(5, 1)
	sol := solutionWithColors(25, 1, 1, 1)
	base := domain.SolveTrace{OverlapDeductions: 20}

	prev, _ := grader().Score(task, sol, base)
	for _, branches := range []int{1, 4, 16, 64} {
		tr := base
		tr.Branches = branches
		got, _ := grader().Score(task, sol, tr)
		assert.Greater(t, got, prev, "branches=%d", branches)
		prev = got
	}

	withDepth := base
	withDepth.Branches = 4
	shallow, _ := grader().Score(task, sol, withDepth)
	withDepth.MaxDepth = 5
	deep, _ := grader().Score(task, sol, withDepth)
	assert.Greater(t, deep, shallow)
}

func TestScoreMonotoneInExpensiveTechniques(t *testing.T) {
	task := squareTask(5, 1)
	sol := solutionWithColors(25, 1)
	base := domain.SolveTrace{OverlapDeductions: 10, EdgeDeductions: 2, CrossDeductions: 2}

	s0, _ := grader().Score(task, sol, base)
	moreEdge := base
	moreEdge.EdgeDeductions += 5
	s1, _ := grader().Score(task, sol, moreEdge)
	assert.Greater(t, s1, s0)

	moreCross := base
	moreCross.CrossDeductions += 5
	s2, _ := grader().Score(task, sol, moreCross)
	assert.Greater(t, s2, s0)
}

func TestScoreMonotoneInDimensionAndColors(t *testing.T) {
	trace := domain.SolveTrace{OverlapDeductions: 10}

	small, _ := grader().Score(squareTask(5, 1), solutionWithColors(25, 1), trace)
	large, _ := grader().Score(squareTask(10, 1), solutionWithColors(100, 1), trace)
	assert.Greater(t, large, small)

	// Growing the grid must never lower the score, even when the trace
	// carries edge and cross deductions.
	techTrace := domain.SolveTrace{OverlapDeductions: 10, EdgeDeductions: 25, CrossDeductions: 5}
	smallTech, _ := grader().Score(squareTask(5, 1), solutionWithColors(25, 1), techTrace)
	largeTech, _ := grader().Score(squareTask(10, 1), solutionWithColors(100, 1), techTrace)
	assert.Greater(t, largeTech, smallTech)

	oneColor, _ := grader().Score(squareTask(5, 1), solutionWithColors(25, 1, 1), trace)
	twoColors, _ := grader().Score(squareTask(5, 1), solutionWithColors(25, 1, 2), trace)
	assert.Greater(t, twoColors, oneColor)
}

func TestTierThresholdsAreInclusiveLowerBounds(t *testing.T) {
	g := grader()
	cases := []struct {
		score float64
		want  domain.Tier
	}{
		{0, domain.Trivial},
		{7.9, domain.Trivial},
		{8, domain.Easy},
		{12, domain.Medium},
		{21.9, domain.Hard},
		{22, domain.Challenging},
		{30, domain.Expert},
		{40, domain.Master},
		{400, domain.Master},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.tierFor(tc.score), "score %v", tc.score)
	}
}

func TestBacktrackingPushesTiersMateriallyHigher(t *testing.T) {
	task := squareTask(5, 1)
	sol := solutionWithColors(25, 1)

	easyTrace := domain.SolveTrace{OverlapDeductions: 25}
	easyScore, easyTier := grader().Score(task, sol, easyTrace)
	require.LessOrEqual(t, easyTier, domain.Easy, "propagation-only 5x5 must stay trivial/easy (score %v)", easyScore)

	hardTrace := domain.SolveTrace{OverlapDeductions: 10, EdgeDeductions: 5, Branches: 8, MaxDepth: 3}
	_, hardTier := grader().Score(task, sol, hardTrace)
	assert.GreaterOrEqual(t, int(hardTier)-int(easyTier), 2, "backtracking must cost at least two tiers")
}
