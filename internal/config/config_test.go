package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 35.0, cfg.MinColorDistance)
	assert.Equal(t, 6, cfg.MaxColors)
	assert.Equal(t, 15, cfg.MaxRunsPerLine)
	assert.Equal(t, 30*time.Second, cfg.SolveTimeout())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
minColorDistance: 50
maxColors: 4
timeoutSeconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.MinColorDistance)
	assert.Equal(t, 4, cfg.MaxColors)
	assert.Equal(t, 5*time.Second, cfg.SolveTimeout())
	// untouched fields keep defaults
	assert.Equal(t, 15, cfg.MaxRunsPerLine)
	assert.NotEmpty(t, cfg.Tiers)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.MaxColors = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TimeoutSeconds = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Tiers[1].Min = 1000
	assert.Error(t, cfg.Validate(), "descending thresholds must fail")
}

func TestLoadRejectsMisspelledTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
tiers:
  - tier: trivial
    min: 0
  - tier: mediun
    min: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "mediun")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
