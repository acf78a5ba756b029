package backend

import (
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/video"
)

// Backend represents a complete presentation platform (rendering + input).
// Backends are responsible for:
// - Presenting frames on their specific output (terminal, window, files)
// - Translating platform-specific input events to actions
// - Handling backend-specific features (snapshots, log panes)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update presents the frame and returns the input collected since the
	// previous call. Movement actions are reported as Press, Hold and
	// Release; other actions as a single Press.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is one action reported by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// StepFunc advances the game by one tick given the input collected for it.
// It returns the frame to present and whether the session should continue.
type StepFunc func(events []InputEvent) (frame *video.FrameBuffer, running bool, err error)

// Driver is implemented by backends that must own the main loop, such as
// windowing libraries that call back into the program once per frame.
type Driver interface {
	Drive(step StepFunc) error
}

// ActionHandler is implemented by backends that react to UI actions
// themselves (snapshots of what they display, log filters).
type ActionHandler interface {
	HandleAction(act action.Action)
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title      string
	Scale      int
	VSync      bool
	Fullscreen bool
	TargetFPS  int              // Backends that pace themselves use it
	ShowDebug  bool             // Backends may ignore unsupported features
	Callbacks  BackendCallbacks // Callbacks for backend communication
}

// BackendCallbacks allows backends to query and signal the game
type BackendCallbacks struct {
	// OnQuit is called when the backend requests shutdown (e.g. window close)
	OnQuit func()

	// Status returns a one-line description of the game state (optional)
	Status func() string
}
