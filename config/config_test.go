package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, target.DefaultConfig(), cfg.Config)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, "jobs", cfg.Store.Dir)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "detect.yaml", `
weights:
  p: 0.6
  o: 0.1
thresholds:
  confirm_score: 0.7
probe:
  cv_folds: 5
  random_seed: 7
semantic_keywords: [objetivo, churn]
top_candidates: 3
logging:
  level: debug
  format: console
store:
  driver: sqlite
  dsn: "file:detect.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Weights.P)
	assert.Equal(t, 0.1, cfg.Weights.O)
	assert.Equal(t, 0.15, cfg.Weights.A, "unset keys keep defaults")
	assert.Equal(t, 0.7, cfg.Thresholds.ConfirmScore)
	assert.Equal(t, 0.10, cfg.Thresholds.GapThreshold)
	assert.Equal(t, 5, cfg.Probe.CVFolds)
	assert.Equal(t, uint64(7), cfg.Probe.RandomSeed)
	assert.Equal(t, []string{"objetivo", "churn"}, cfg.SemanticKeywords)
	assert.Equal(t, 3, cfg.TopCandidates)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:detect.db", cfg.Store.DSN)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TARGETDETECT_THRESHOLDS_GAP_THRESHOLD", "0.2")
	t.Setenv("TARGETDETECT_PROBE_MIN_SAMPLE_ROWS", "50")
	t.Setenv("TARGETDETECT_WORKERS", "2")

	path := writeFile(t, "detect.yaml", "thresholds:\n  gap_threshold: 0.05\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.2, cfg.Thresholds.GapThreshold)
	assert.Equal(t, 50, cfg.Probe.MinSampleRows)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"invalid threshold", "thresholds:\n  confirm_score: 1.5\n", "thresholds.confirm_score"},
		{"negative weight", "weights:\n  t: -1\n", "weights.t"},
		{"bad log level", "logging:\n  level: loud\n", "logging.level"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format"},
		{"bad driver", "store:\n  driver: postgres\n", "store.driver"},
		{"sqlite without dsn", "store:\n  driver: sqlite\n", "store.dsn"},
		{"file without dir", "store:\n  dir: \"\"\n", "store.dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.body))
			require.Error(t, err)

			var ce *errors.ConfigError
			require.True(t, errors.As(err, &ce), "%v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())

	c := Default()
	c.Store.Driver = DriverNone
	c.Store.Dir = ""
	assert.NoError(t, c.Validate())
}
