package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults tests that a bare environment yields the documented defaults
func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOLFSIGHT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxBytes)
	assert.Equal(t, 5.0, cfg.Analysis.BucketWidth)
	assert.Equal(t, 10, cfg.Analysis.MorningCutoffHr)
	assert.Empty(t, cfg.Narrative.APIKey, "narrative is disabled by default")
	assert.True(t, cfg.RateLimit.Enabled)
}

// TestLoadEnvOverrides tests environment variable precedence
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOLFSIGHT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("GOLFSIGHT_SERVER_PORT", "9090")
	t.Setenv("GOLFSIGHT_LOGGING_LEVEL", "debug")
	t.Setenv("GOLFSIGHT_ANALYSIS_BUCKET_WIDTH", "10")
	t.Setenv("GOLFSIGHT_ANALYSIS_SKILL_FIELD", "Index")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10.0, cfg.Analysis.BucketWidth)
	assert.Equal(t, "Index", cfg.Analysis.SkillField)
}

// TestLoadYAMLFile tests the optional file base with env precedence
func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golfsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
logging:
  level: warn
analysis:
  bucket_width: 3
`), 0o644))

	t.Setenv("GOLFSIGHT_CONFIG", path)
	t.Setenv("GOLFSIGHT_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "file value survives")
	assert.Equal(t, "error", cfg.Logging.Level, "environment wins over file")
	assert.Equal(t, 3.0, cfg.Analysis.BucketWidth)
}

// TestLoadValidation tests rejection of out-of-range values
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid log level", "GOLFSIGHT_LOGGING_LEVEL", "verbose"},
		{"invalid log format", "GOLFSIGHT_LOGGING_FORMAT", "xml"},
		{"port out of range", "GOLFSIGHT_SERVER_PORT", "70000"},
		{"non-positive bucket width", "GOLFSIGHT_ANALYSIS_BUCKET_WIDTH", "0"},
		{"cutoff beyond the day", "GOLFSIGHT_ANALYSIS_MORNING_CUTOFF_HOUR", "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOLFSIGHT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestLoadMalformedFile tests that a broken YAML file fails loudly
func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golfsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	t.Setenv("GOLFSIGHT_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}
