package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at a temp directory and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, k := range []string{
		"RESOLUTION_HOME", "RESOLUTION_MORNING_HOUR", "RESOLUTION_PROBLEMS_FILE",
		"RESOLUTION_PLAN_FILE", "RESOLUTION_OPEN_BROWSER", "RESOLUTION_THEME",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
	return filepath.Join(xdg, "resolution")
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, dir, cfg.DataDir())
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.CachePath())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.General.ProblemsFile = "/data/leetcode.json"
	cfg.General.MorningHour = 7
	cfg.Pacing.MaxDaily = 5
	cfg.Rewards = map[string]int{"bible_chapter": 6}
	cfg.Appearance.Theme = "tokyo-night"
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[rewards]\ngoal_completed = 20\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Rewards["goal_completed"])
	assert.Equal(t, 6, cfg.General.MorningHour)
	assert.Equal(t, 3, cfg.Pacing.MinDaily)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.General.ProblemsFile = "/from/file.json"
	require.NoError(t, Save(cfg))

	t.Setenv("RESOLUTION_PROBLEMS_FILE", "/from/env.json")
	t.Setenv("RESOLUTION_HOME", "/tmp/res-home")
	t.Setenv("RESOLUTION_MORNING_HOUR", "8")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", got.General.ProblemsFile)
	assert.Equal(t, "/tmp/res-home", got.DataDir())
	assert.Equal(t, 8, got.General.MorningHour)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RESOLUTION_THEME=terminal\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RESOLUTION_THEME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"hour too large", func(c *Config) { c.General.MorningHour = 24 }},
		{"min daily zero", func(c *Config) { c.Pacing.MinDaily = 0 }},
		{"max below min", func(c *Config) { c.Pacing.MaxDaily = 2 }},
		{"negative reward", func(c *Config) { c.Rewards = map[string]int{"bible_chapter": -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
