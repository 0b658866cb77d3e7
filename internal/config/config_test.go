package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Room.GridSize)
	assert.Equal(t, 0.45, cfg.Room.Wall.CeilingSlope)
	assert.Equal(t, 1.5, cfg.Room.Floor.Threshold)
	assert.Len(t, cfg.StarterPack, 5)
	assert.Len(t, cfg.Milestones, 3)
	assert.Equal(t, 21, cfg.Mail.TotalDays)
}

func TestLoad_FileOverridesOnlyWhatItNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ithaca_config.yml")
	body := "room:\n  grid_size: 5\nrewards:\n  confirm_divisor: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Room.GridSize)
	assert.Equal(t, 4, cfg.Rewards.ConfirmDivisor)
	// Untouched sections keep defaults.
	assert.Equal(t, 0.45, cfg.Room.Wall.CeilingSlope)
	assert.Len(t, cfg.Shop, 3)
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("room: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
