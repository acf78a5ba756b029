package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-raycaster/raycaster"
	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/backend/ebiten"
	"github.com/valerio/go-raycaster/raycaster/backend/headless"
	"github.com/valerio/go-raycaster/raycaster/backend/sdl2"
	"github.com/valerio/go-raycaster/raycaster/backend/terminal"
	"github.com/valerio/go-raycaster/raycaster/config"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/display"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/timing"
)

func main() {
	app := cli.NewApp()

	app.Name = "raycaster"
	app.Usage = "A first-person tile maze renderer"
	app.Action = runRaycaster
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Value: "terminal",
			Usage: "Rendering backend: terminal, ebiten, sdl2 or headless",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a JSON config file",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "Wall texture atlas (BMP, TGA or PNG) overriding the built-in one",
		},
		cli.Float64Flag{
			Name:  "fov",
			Usage: "Horizontal field of view in degrees",
		},
		cli.IntFlag{
			Name:  "fps",
			Usage: "Target frame rate for interactive backends",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 runs until quit)",
			Value: 300,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save a snapshot every N frames in headless mode (0 disables)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory for snapshots (defaults to a temporary directory)",
		},
		cli.StringFlag{
			Name:  "snapshot-format",
			Value: string(debug.FormatPNG),
			Usage: "Snapshot image format: png or webp",
		},
		cli.IntFlag{
			Name:  "snapshot-scale",
			Value: 1,
			Usage: "Integer upscaling factor for snapshots",
		},
		cli.BoolFlag{
			Name:  "walk",
			Usage: "Hold forward and turn right for the whole headless run",
		},
		cli.BoolFlag{
			Name:  "vsync",
			Usage: "Enable vsync on window backends",
		},
		cli.BoolFlag{
			Name:  "fullscreen",
			Usage: "Start window backends in fullscreen",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running raycaster", "error", err)
		os.Exit(1)
	}
}

func runRaycaster(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	game, err := raycaster.New(cfg)
	if err != nil {
		return err
	}

	be, limiter, err := createBackend(c, cfg)
	if err != nil {
		return err
	}

	runner := raycaster.NewRunner(game, be, limiter, cfg.MoveSpeed, cfg.TurnSpeed)
	return runner.Run(backend.BackendConfig{
		Title:      "Raycaster",
		Scale:      display.DefaultPixelScale,
		VSync:      c.Bool("vsync"),
		Fullscreen: c.Bool("fullscreen"),
		TargetFPS:  cfg.TargetFPS,
		ShowDebug:  c.Bool("debug"),
	})
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	cfg.Resolve(config.Flags{
		Texture:   c.String("texture"),
		FOV:       c.Float64("fov"),
		TargetFPS: c.Int("fps"),
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func createBackend(c *cli.Context, cfg config.Config) (backend.Backend, timing.Limiter, error) {
	switch name := c.String("backend"); name {
	case "headless":
		format, err := debug.ParseFormat(c.String("snapshot-format"))
		if err != nil {
			return nil, nil, err
		}

		snapshots, err := headless.CreateSnapshotConfig(
			c.Int("snapshot-interval"),
			c.String("snapshot-dir"),
			"raycaster",
			format,
			c.Int("snapshot-scale"),
		)
		if err != nil {
			return nil, nil, err
		}

		var opts []headless.Option
		if c.Bool("walk") {
			opts = append(opts, headless.WithScript(action.MoveForward, action.TurnRight))
		}
		return headless.New(c.Int("frames"), snapshots, opts...), timing.NewNoOpLimiter(), nil
	case "terminal":
		return terminal.New(), timing.NewTickerLimiter(cfg.TargetFPS), nil
	case "sdl2":
		return sdl2.New(), timing.NewAdaptiveLimiter(cfg.TargetFPS), nil
	case "ebiten":
		// ebiten paces its own loop.
		return ebiten.New(), timing.NewNoOpLimiter(), nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}
