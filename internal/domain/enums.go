package domain

import "fmt"

// Tier labels how hard an accepted puzzle is for a human solver.
type Tier int

const (
	Trivial Tier = iota
	Easy
	Medium
	Hard
	Challenging
	Expert
	Master
)

var tierNames = [...]string{"trivial", "easy", "medium", "hard", "challenging", "expert", "master"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// MarshalText serializes the tier as its lowercase name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	for i, n := range tierNames {
		if n == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(b))
}

// Reason classifies why a candidate was rejected.
type Reason string

const (
	TooDense         Reason = "too_dense"
	ColorsTooSimilar Reason = "colors_too_similar"
	TooManyColors    Reason = "too_many_colors"
	NonUnique        Reason = "valid_multiple"
	Timeout          Reason = "timeout"
	TooComplex       Reason = "too_complex"
	Infeasible       Reason = "infeasible"
)
