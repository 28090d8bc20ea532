package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tick", func(c *Config) { c.GameTickPeriod = 0 }},
		{"negative ai speed", func(c *Config) { c.AIMaxSpeed = -1 }},
		{"zero deadzone", func(c *Config) { c.AIDeadzone = 0 }},
		{"zero win margin", func(c *Config) { c.WinMargin = 0 }},
		{"negative win margin", func(c *Config) { c.WinMargin = -2 }},
		{"zero threshold", func(c *Config) { c.WinThreshold = 0 }},
		{"zero serves per turn", func(c *Config) { c.ServesPerTurn = 0 }},
		{"idle ratio above one", func(c *Config) { c.AIIdleSpeedRatio = 1.5 }},
		{"paddle taller than field", func(c *Config) { c.PaddleHeight = c.FieldHeight + 1 }},
		{"degenerate field", func(c *Config) { c.FieldHeight = 0 }},
		{"zero ball speed", func(c *Config) { c.BallSpeed = 0 }},
		{"aim offset past paddle edge", func(c *Config) { c.AIAimOffset = c.PaddleHeight }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should wrap ErrInvalidConfig: %v", err)
		})
	}
}

func TestConfig_ValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AIDeadzone = 0
	cfg.WinMargin = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aiDeadzone")
	assert.Contains(t, err.Error(), "winMargin")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "pong.yaml", `
winThreshold: 5
winMargin: 1
aiDeadzone: 0.25
aiReactionTime: 150ms
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.WinThreshold)
	assert.Equal(t, 1, cfg.WinMargin)
	assert.Equal(t, 0.25, cfg.AIDeadzone)
	assert.Equal(t, 150*time.Millisecond, cfg.AIReactionTime)
	// Untouched options keep their defaults.
	assert.Equal(t, DefaultConfig().BallSpeed, cfg.BallSpeed)
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "pong.toml", `
winThreshold = 7
fieldWidth = 20.0
serveDelay = "1s"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.WinThreshold)
	assert.Equal(t, 20.0, cfg.FieldWidth)
	assert.Equal(t, time.Second, cfg.ServeDelay)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "winMargin: 0\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "pong.json", "{}"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "broken.yaml", "winMargin: [1,"))
	assert.Error(t, err)
}
