package headless

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/video"
)

// Backend implements the Backend interface for automated runs and batch
// snapshot generation.
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	script         []action.Action
	saved          []string
	lastFrame      *video.FrameBuffer
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	BaseName  string // Prefix for snapshot filenames
	Format    debug.Format
	Scale     int
}

// Option customizes a headless backend.
type Option func(*Backend)

// WithScript holds the given movement actions for the whole run, as if the
// keys were pressed on the first frame and never released.
func WithScript(acts ...action.Action) Option {
	return func(h *Backend) {
		h.script = append(h.script, acts...)
	}
}

// New creates a backend that quits after maxFrames frames. A non-positive
// maxFrames runs until the game stops on its own.
func New(maxFrames int, snapshotConfig SnapshotConfig, opts ...Option) *Backend {
	h := &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	level := slog.LevelInfo
	if config.ShowDebug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory,
		"script", len(h.script))

	return nil
}

// Update processes a frame and handles snapshots
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent

	h.frameCount++
	h.lastFrame = frame

	for _, act := range h.script {
		typ := event.Hold
		if h.frameCount == 1 {
			typ = event.Press
		}
		events = append(events, backend.InputEvent{Action: act, Type: typ})
	}

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	if h.frameCount%60 == 0 {
		attrs := []any{"completed", h.frameCount, "total", h.maxFrames}
		if h.config.Callbacks.Status != nil {
			attrs = append(attrs, "status", h.config.Callbacks.Status())
		}
		slog.Info("Frame progress", attrs...)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(frame)
		}

		slog.Info("Headless execution completed", "frames", h.frameCount, "snapshots", len(h.saved))
		events = append(events, backend.InputEvent{Action: action.Quit, Type: event.Press})
	}

	return events, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames presented so far.
func (h *Backend) Frames() int {
	return h.frameCount
}

// Saved returns the paths of the snapshots written so far.
func (h *Backend) Saved() []string {
	return h.saved
}

// HandleAction saves the last presented frame on request, even when
// periodic snapshots are off.
func (h *Backend) HandleAction(act action.Action) {
	if act == action.Snapshot {
		h.saveSnapshot(h.lastFrame)
	}
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, baseName string, format debug.Format, scale int) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		BaseName: baseName,
		Format:   format,
		Scale:    max(scale, 1),
	}
	if config.BaseName == "" {
		config.BaseName = "raycaster"
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "raycaster-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("headless: create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return config, fmt.Errorf("headless: create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	return config, nil
}

func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("No frame available for snapshot", "frame", h.frameCount)
		return
	}

	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.BaseName, h.frameCount)
	path, err := debug.SaveFrame(frame, baseName, h.snapshotConfig.Directory, h.snapshotConfig.Format, h.snapshotConfig.Scale)
	if err != nil {
		slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.saved = append(h.saved, path)
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.ActionHandler = (*Backend)(nil)
)
