package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.UserID)
	assert.Equal(t, 10, cfg.SessionSize)
	assert.Equal(t, 20, cfg.DailyLimit)
	assert.Equal(t, 3.0, cfg.PreferredDifficulty)
	assert.True(t, cfg.Adaptive.Enabled)
	assert.NoError(t, cfg.Settings().Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, "repertoire")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	yaml := `
session_size: 6
daily_limit: 12
preferred_difficulty: 2.5
adaptive:
  enabled: false
  sensitivity: 0.5
  min_difficulty: 2
  max_difficulty: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.SessionSize)
	assert.Equal(t, 12, cfg.DailyLimit)
	assert.Equal(t, 2.5, cfg.PreferredDifficulty)
	assert.False(t, cfg.Adaptive.Enabled)
	assert.Equal(t, 0.5, cfg.Adaptive.Sensitivity)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, "repertoire")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	yaml := `
adaptive:
  sensitivity: 2.0
`
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(yaml), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
