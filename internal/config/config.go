// Package config holds the immutable knobs threaded into every component.
// Batch workers may run with different Config values concurrently; nothing
// here is global.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"svw.info/nonogram/internal/scorer"
)

// Config is the full tuning surface of a batch run.
type Config struct {
	// MinColorDistance is the smallest allowed perceptual distance
	// between two palette colors, on the 0-441 weighted scale.
	MinColorDistance float64 `yaml:"minColorDistance" validate:"gte=0,lte=442"`
	// MaxColors caps the palette size excluding background.
	MaxColors int `yaml:"maxColors" validate:"gte=1,lte=14"`
	// MaxRunsPerLine rejects lines denser than this many runs.
	MaxRunsPerLine int `yaml:"maxRunsPerLine" validate:"gte=1"`
	// TimeoutSeconds bounds one candidate's solve wall-clock time.
	TimeoutSeconds float64 `yaml:"timeoutSeconds" validate:"gt=0"`
	// MaxNodes bounds one candidate's branch expansions; 0 disables.
	MaxNodes int `yaml:"maxNodes" validate:"gte=0"`
	// Workers bounds the batch pool; 0 means one per CPU core.
	Workers int `yaml:"workers" validate:"gte=0"`

	Weights scorer.Weights   `yaml:"weights"`
	Tiers   []scorer.TierCut `yaml:"tiers" validate:"min=1,dive"`
}

// Default returns the calibrated baseline configuration.
func Default() Config {
	return Config{
		MinColorDistance: 35,
		MaxColors:        6,
		MaxRunsPerLine:   15,
		TimeoutSeconds:   30,
		MaxNodes:         500000,
		Workers:          0,
		Weights:          scorer.DefaultWeights(),
		Tiers:            scorer.DefaultTiers(),
	}
}

// SolveTimeout is TimeoutSeconds as a duration.
func (c Config) SolveTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges and that tier thresholds ascend.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].Min < c.Tiers[i-1].Min {
			return fmt.Errorf("invalid config: tier thresholds must ascend (%v before %v)",
				c.Tiers[i-1].Min, c.Tiers[i].Min)
		}
	}
	return nil
}
