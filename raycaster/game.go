package raycaster

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/valerio/go-raycaster/raycaster/config"
	"github.com/valerio/go-raycaster/raycaster/display"
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/player"
	"github.com/valerio/go-raycaster/raycaster/texture"
	"github.com/valerio/go-raycaster/raycaster/video"
	"github.com/valerio/go-raycaster/raycaster/world"
)

// Game owns the frame buffer, the wall atlas, the map and the player, and
// renders one first-person frame per Render call.
type Game struct {
	cfg    config.Config
	frame  *video.FrameBuffer
	atlas  *texture.Atlas
	tiles  *world.TileMap
	player *player.Player

	showHUD bool
	frames  uint64
}

// New builds a game on the compiled-in maze. The atlas comes from
// cfg.Texture when set, otherwise from the compiled-in bitmap.
func New(cfg config.Config) (*Game, error) {
	var (
		atlas *texture.Atlas
		err   error
	)
	if cfg.Texture != "" {
		atlas, err = texture.Load(cfg.Texture)
	} else {
		atlas, err = texture.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("raycaster: load atlas: %w", err)
	}

	return NewWithAssets(cfg, world.DefaultMap(), atlas)
}

// NewWithAssets builds a game on an arbitrary map and atlas.
func NewWithAssets(cfg config.Config, tiles *world.TileMap, atlas *texture.Atlas) (*Game, error) {
	if tiles == nil || atlas == nil {
		return nil, errors.New("raycaster: map and atlas are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := player.New(tiles, cfg.SpawnX, cfg.SpawnY, cfg.SpawnAngle)
	p.SetRadius(cfg.CollisionRadius)
	p.SetRayParams(cfg.MaxRayDistance, cfg.RayStep)

	slog.Debug("game created",
		"spawn_x", cfg.SpawnX, "spawn_y", cfg.SpawnY, "angle", cfg.SpawnAngle,
		"fov", cfg.FOV, "variants", atlas.Variants())

	return &Game{
		cfg:     cfg,
		frame:   video.NewFrameBuffer(video.FramebufferWidth, video.FramebufferHeight),
		atlas:   atlas,
		tiles:   tiles,
		player:  p,
		showHUD: cfg.ShowHUD,
	}, nil
}

// UpdatePlayer turns the player by angleDelta degrees and moves it speed
// units forward, or sideways when strafe is set.
func (g *Game) UpdatePlayer(speed, angleDelta float64, strafe bool) {
	if !g.player.Update(speed, angleDelta, strafe) {
		slog.Debug("move rolled back", "x", g.player.X, "y", g.player.Y, "strafe", strafe)
	}
}

// ApplyMotion applies one tick of input: turn and forward movement first,
// then strafing as a separate move so each is collision checked on its own.
func (g *Game) ApplyMotion(m input.Motion) {
	if m.Forward != 0 || m.Turn != 0 {
		g.UpdatePlayer(m.Forward, m.Turn, false)
	}
	if m.Strafe != 0 {
		g.UpdatePlayer(m.Strafe, 0, true)
	}
}

// Render draws a complete frame and returns the frame buffer's bytes,
// row-major RGBA. The slice is overwritten by the next call.
func (g *Game) Render() []byte {
	g.frame.Clear()
	g.renderSky()
	g.renderView()
	if g.showHUD {
		g.drawHUD()
	}
	g.frames++
	return g.frame.Pix()
}

func (g *Game) renderSky() {
	w, h := g.frame.Width(), g.frame.Height()
	horizon := h / 2
	g.frame.FillRect(0, 0, w, horizon, g.cfg.Colors.Sky.Color())
	g.frame.FillRect(0, horizon, w, h-horizon, g.cfg.Colors.Ground.Color())
}

func (g *Game) renderView() {
	w, h := g.frame.Width(), g.frame.Height()
	center := h / 2
	fov := g.cfg.FOV

	for col := 0; col < w; col++ {
		offset := -fov/2 + fov*float64(col)/float64(w)

		hit, ok := g.player.Look(offset)
		if !ok {
			continue
		}

		dist := max(hit.Distance*math.Cos(world.Radians(offset)), display.MinWallDistance)
		half := int(g.cfg.WallHeight / dist / 2)

		texCol := g.atlas.Column(hit.WallType, faceFraction(hit.X, hit.Y))
		g.frame.DrawTexturedLine(col, center+half, col, center-half, g.atlas, texCol)
	}
}

// faceFraction returns the position of a hit along the wall face it struck.
// The axis on which the hit lies furthest from the tile center is the one
// the face is perpendicular to, so the other axis runs along the face.
func faceFraction(x, y float64) float64 {
	fx := x - math.Floor(x)
	fy := y - math.Floor(y)
	if math.Abs(fx-0.5) > math.Abs(fy-0.5) {
		return fy
	}
	return fx
}

func (g *Game) drawHUD() {
	colors := g.cfg.Colors
	scale := g.cfg.MinimapScale
	wall, floor := colors.MinimapWall.Color(), colors.MinimapFloor.Color()

	w, h := g.tiles.Size()
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			c := floor
			if g.tiles.IsWall(ix, iy) {
				c = wall
			}
			g.frame.FillRect(ix*scale, iy*scale, scale, scale, c)
		}
	}

	s := float64(scale)
	px, py := int(g.player.X*s), int(g.player.Y*s)
	for _, offset := range []float64{-g.cfg.FOV / 2, g.cfg.FOV / 2} {
		hit, ok := g.player.Look(offset)
		if !ok {
			continue
		}
		g.frame.DrawLine(px, py, int(hit.X*s), int(hit.Y*s), colors.MinimapRay.Color())
	}

	dot := display.PlayerDotSize
	g.frame.FillRect(px-dot/2, py-dot/2, dot, dot, colors.MinimapPlayer.Color())
}

// ToggleHUD shows or hides the minimap overlay.
func (g *Game) ToggleHUD() {
	g.showHUD = !g.showHUD
	slog.Info("hud toggled", "visible", g.showHUD)
}

// HUDVisible reports whether the minimap is drawn.
func (g *Game) HUDVisible() bool { return g.showHUD }

// HandleAction reacts to UI actions that change what is drawn.
func (g *Game) HandleAction(act action.Action, pressed bool) {
	if act == action.ToggleHUD && pressed {
		g.ToggleHUD()
	}
}

// CurrentFrame returns the frame buffer written by the last Render.
func (g *Game) CurrentFrame() *video.FrameBuffer {
	return g.frame
}

// Player returns a copy of the player state.
func (g *Game) Player() player.Player {
	return *g.player
}

// Frames returns the number of frames rendered so far.
func (g *Game) Frames() uint64 {
	return g.frames
}

// Status is a one-line summary for status bars and logs.
func (g *Game) Status() string {
	heading := math.Mod(g.player.Angle, 360)
	if heading < 0 {
		heading += 360
	}
	return fmt.Sprintf("pos %.2f,%.2f  heading %3.0f  frame %d", g.player.X, g.player.Y, heading, g.frames)
}
