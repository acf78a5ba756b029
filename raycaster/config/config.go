package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/valerio/go-raycaster/raycaster/display"
	"github.com/valerio/go-raycaster/raycaster/video"
	"github.com/valerio/go-raycaster/raycaster/world"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// RGB is an opaque color, encoded in JSON as [r, g, b].
type RGB [3]uint8

// Color converts to a fully opaque frame buffer color.
func (c RGB) Color() video.Color {
	return video.Color{R: c[0], G: c[1], B: c[2], A: display.FullAlpha}
}

func hex(v uint32) RGB {
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// Colors holds the palette used for everything that is not textured.
type Colors struct {
	Sky           RGB `json:"sky"`
	Ground        RGB `json:"ground"`
	MinimapWall   RGB `json:"minimap_wall"`
	MinimapFloor  RGB `json:"minimap_floor"`
	MinimapRay    RGB `json:"minimap_ray"`
	MinimapPlayer RGB `json:"minimap_player"`
}

// Config holds the view, movement and presentation settings.
type Config struct {
	// View
	FOV            float64 `json:"fov"`
	WallHeight     float64 `json:"wall_height"`
	MaxRayDistance float64 `json:"max_ray_distance"`
	RayStep        float64 `json:"ray_step"`

	// Player
	CollisionRadius float64 `json:"collision_radius"`
	MoveSpeed       float64 `json:"move_speed"`
	TurnSpeed       float64 `json:"turn_speed"`
	SpawnX          float64 `json:"spawn_x"`
	SpawnY          float64 `json:"spawn_y"`
	SpawnAngle      float64 `json:"spawn_angle"`

	// HUD
	ShowHUD      bool `json:"show_hud"`
	MinimapScale int  `json:"minimap_scale"`

	Colors    Colors `json:"colors"`
	Texture   string `json:"texture"`
	TargetFPS int    `json:"target_fps"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Texture   string
	FOV       float64
	TargetFPS int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FOV:             display.DefaultFOV,
		WallHeight:      display.DefaultWallHeight,
		MaxRayDistance:  world.DefaultMaxDistance,
		RayStep:         world.DefaultRayStep,
		CollisionRadius: 1.0,
		MoveSpeed:       0.1,
		TurnSpeed:       3,
		SpawnX:          2.5,
		SpawnY:          2.5,
		SpawnAngle:      0,
		ShowHUD:         true,
		MinimapScale:    display.DefaultMinimapScale,
		Colors: Colors{
			Sky:           hex(display.SkyColor),
			Ground:        hex(display.GroundColor),
			MinimapWall:   hex(display.MinimapWallColor),
			MinimapFloor:  hex(display.MinimapFloorColor),
			MinimapRay:    hex(display.MinimapRayColor),
			MinimapPlayer: hex(display.MinimapPlayerColor),
		},
		TargetFPS: 60,
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides. Flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.TargetFPS > 0 {
		c.TargetFPS = flags.TargetFPS
	}
}

// Validate reports the first setting the renderer cannot work with.
func (c Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("config: fov %.1f outside (0, 180): %w", c.FOV, ErrInvalid)
	case c.WallHeight <= 0:
		return fmt.Errorf("config: wall_height must be positive: %w", ErrInvalid)
	case c.RayStep <= 0:
		return fmt.Errorf("config: ray_step must be positive: %w", ErrInvalid)
	case c.MaxRayDistance < c.RayStep:
		return fmt.Errorf("config: max_ray_distance %.2f below ray_step: %w", c.MaxRayDistance, ErrInvalid)
	case c.CollisionRadius <= 0:
		return fmt.Errorf("config: collision_radius must be positive: %w", ErrInvalid)
	case c.MinimapScale < 1 || c.MinimapScale*world.MapHeight > video.FramebufferHeight:
		return fmt.Errorf("config: minimap_scale %d does not fit the frame: %w", c.MinimapScale, ErrInvalid)
	case c.TargetFPS <= 0:
		return fmt.Errorf("config: target_fps must be positive: %w", ErrInvalid)
	case c.SpawnX < 0 || c.SpawnX >= world.MapWidth || c.SpawnY < 0 || c.SpawnY >= world.MapHeight:
		return fmt.Errorf("config: spawn (%.2f, %.2f) outside the map: %w", c.SpawnX, c.SpawnY, ErrInvalid)
	}
	return nil
}
