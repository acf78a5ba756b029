package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/video"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60.0, cfg.FOV)
	assert.True(t, cfg.ShowHUD)
	assert.Equal(t, video.Color{R: 100, G: 149, B: 237, A: 255}, cfg.Colors.Sky.Color())
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raycaster.json")
	data := `{"fov": 90, "show_hud": false, "colors": {"sky": [1, 2, 3]}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.FOV)
	assert.False(t, cfg.ShowHUD)
	assert.Equal(t, RGB{1, 2, 3}, cfg.Colors.Sky)

	def := Default()
	assert.Equal(t, def.WallHeight, cfg.WallHeight)
	assert.Equal(t, def.Colors.Ground, cfg.Colors.Ground)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{fov"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{})
	assert.Equal(t, Default(), cfg, "empty flags change nothing")

	cfg.Resolve(Flags{Texture: "walls.tga", FOV: 75, TargetFPS: 30})
	assert.Equal(t, "walls.tga", cfg.Texture)
	assert.Equal(t, 75.0, cfg.FOV)
	assert.Equal(t, 30, cfg.TargetFPS)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"straight angle fov", func(c *Config) { c.FOV = 180 }},
		{"zero wall height", func(c *Config) { c.WallHeight = 0 }},
		{"zero ray step", func(c *Config) { c.RayStep = 0 }},
		{"max distance below step", func(c *Config) { c.MaxRayDistance = 0.01 }},
		{"zero radius", func(c *Config) { c.CollisionRadius = 0 }},
		{"minimap too large", func(c *Config) { c.MinimapScale = 16 }},
		{"minimap zero", func(c *Config) { c.MinimapScale = 0 }},
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }},
		{"spawn outside", func(c *Config) { c.SpawnX = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))
		})
	}
}
