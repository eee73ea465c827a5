package solver

import "errors"

var (
	// ErrNoSolution means no grid satisfies the clues at all.
	ErrNoSolution = errors.New("no grid satisfies the clues")
	// ErrMultipleSolutions means at least two distinct solutions exist.
	ErrMultipleSolutions = errors.New("clues admit multiple solutions")
	// ErrTimeout means the wall-clock budget elapsed before a verdict.
	ErrTimeout = errors.New("solver timeout exceeded")
	// ErrTooComplex means the node budget was exhausted within the time
	// budget; the search was thrashing with poor progress.
	ErrTooComplex = errors.New("solver node budget exceeded")
)

// errContradiction prunes the current branch during search; it never
// escapes the solver.
var errContradiction = errors.New("contradiction")
