package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/backend/headless"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/video"
)

func newFrame() *video.FrameBuffer {
	return video.NewFrameBuffer(video.FramebufferWidth, video.FramebufferHeight)
}

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		h := headless.New(3, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test"}))

		frame := newFrame()
		for i := 0; i < 3; i++ {
			events, err := h.Update(frame)
			require.NoError(t, err)

			if i < 2 {
				assert.Empty(t, events)
			} else {
				require.Len(t, events, 1)
				assert.Equal(t, action.Quit, events[0].Action)
				assert.Equal(t, event.Press, events[0].Type)
			}
		}
		assert.Equal(t, 3, h.Frames())
		assert.NoError(t, h.Cleanup())
	})

	t.Run("scripted movement", func(t *testing.T) {
		h := headless.New(0, headless.SnapshotConfig{}, headless.WithScript(action.MoveForward, action.TurnRight))
		require.NoError(t, h.Init(backend.BackendConfig{}))

		events, err := h.Update(newFrame())
		require.NoError(t, err)
		assert.Equal(t, []backend.InputEvent{
			{Action: action.MoveForward, Type: event.Press},
			{Action: action.TurnRight, Type: event.Press},
		}, events)

		events, err = h.Update(newFrame())
		require.NoError(t, err)
		assert.Equal(t, []backend.InputEvent{
			{Action: action.MoveForward, Type: event.Hold},
			{Action: action.TurnRight, Type: event.Hold},
		}, events)
	})
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	cfg, err := headless.CreateSnapshotConfig(2, dir, "maze", debug.FormatPNG, 1)
	require.NoError(t, err)
	require.True(t, cfg.Enabled)

	h := headless.New(5, cfg)
	require.NoError(t, h.Init(backend.BackendConfig{}))

	frame := newFrame()
	for i := 0; i < 5; i++ {
		_, err := h.Update(frame)
		require.NoError(t, err)
	}

	// frames 2 and 4, plus the final frame
	require.Len(t, h.Saved(), 3)
	for _, path := range h.Saved() {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	h.HandleAction(action.Snapshot)
	assert.Len(t, h.Saved(), 4)
}

func TestCreateSnapshotConfigDisabled(t *testing.T) {
	cfg, err := headless.CreateSnapshotConfig(0, "", "", debug.FormatPNG, 0)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "raycaster", cfg.BaseName)
	assert.Equal(t, 1, cfg.Scale)
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
