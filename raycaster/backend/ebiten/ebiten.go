package ebiten

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/display"
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/timing"
	"github.com/valerio/go-raycaster/raycaster/video"
)

// ErrDriverOnly is returned by Update: ebiten calls into the program from
// its own loop, so the backend can only be used through Drive.
var ErrDriverOnly = errors.New("ebiten backend must be driven with Drive")

// Backend presents frames in an ebiten window. Ebiten owns the main loop
// and paces it at the target TPS.
type Backend struct {
	config       backend.BackendConfig
	currentFrame *video.FrameBuffer
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init(config backend.BackendConfig) error {
	b.config = config

	scale := config.Scale
	if scale <= 0 {
		scale = display.DefaultPixelScale
	}

	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowSize(video.FramebufferWidth*scale, video.FramebufferHeight*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(config.Fullscreen)
	ebiten.SetVsyncEnabled(config.VSync)
	tps := config.TargetFPS
	if tps <= 0 {
		tps = timing.DefaultFPS
	}
	ebiten.SetTPS(tps)

	slog.Info("Ebiten backend initialized", "scale", scale, "tps", tps)
	return nil
}

func (b *Backend) Update(*video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrDriverOnly
}

func (b *Backend) Cleanup() error {
	return nil
}

// Drive runs the ebiten loop, calling step once per tick until it reports
// the session is over or the window is closed.
func (b *Backend) Drive(step backend.StepFunc) error {
	err := ebiten.RunGame(&gameAdapter{backend: b, step: step})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err == nil && b.config.Callbacks.OnQuit != nil {
		// window closed by the user
		b.config.Callbacks.OnQuit()
	}
	return err
}

// HandleAction processes backend-specific actions
func (b *Backend) HandleAction(act action.Action) {
	switch act {
	case action.Snapshot:
		debug.TakeSnapshot(b.currentFrame)
	case action.DebugLogLevelIncrease, action.DebugLogLevelDecrease:
		slog.Debug("Log level changes are not supported by the ebiten backend")
	}
}

// gameAdapter implements ebiten.Game on top of a StepFunc.
type gameAdapter struct {
	backend *Backend
	step    backend.StepFunc
}

func (g *gameAdapter) Update() error {
	frame, running, err := g.step(pollInput())
	if err != nil {
		return err
	}
	g.backend.currentFrame = frame
	if !running {
		return ebiten.Termination
	}
	return nil
}

func (g *gameAdapter) Draw(screen *ebiten.Image) {
	if frame := g.backend.currentFrame; frame != nil {
		screen.WritePixels(frame.Pix())
	}
}

func (g *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return video.FramebufferWidth, video.FramebufferHeight
}

// ebitenKeyNameMap converts ebiten keys to key names used in default mappings
var ebitenKeyNameMap = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyQ:          "q",
	ebiten.KeyE:          "e",
	ebiten.KeyM:          "m",
	ebiten.KeyP:          "p",
	ebiten.KeyArrowUp:    "Up",
	ebiten.KeyArrowDown:  "Down",
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyTab:        "Tab",
	ebiten.KeyF12:        "F12",
	ebiten.KeyEscape:     "Escape",
	ebiten.KeyEqual:      "=",
	ebiten.KeyMinus:      "-",
}

var keyMapping = buildKeyMapping()

func buildKeyMapping() map[ebiten.Key]action.Action {
	mapping := make(map[ebiten.Key]action.Action)
	for key, name := range ebitenKeyNameMap {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

// pollInput reads the keyboard state for this tick. Keys sharing an action
// are merged, so releasing one of them while another is down keeps it held.
func pollInput() []backend.InputEvent {
	type keyState struct{ justPressed, pressed, justReleased bool }
	states := make(map[action.Action]*keyState)

	for key, act := range keyMapping {
		st := states[act]
		if st == nil {
			st = &keyState{}
			states[act] = st
		}
		st.justPressed = st.justPressed || inpututil.IsKeyJustPressed(key)
		st.pressed = st.pressed || ebiten.IsKeyPressed(key)
		st.justReleased = st.justReleased || inpututil.IsKeyJustReleased(key)
	}

	var events []backend.InputEvent
	for _, act := range action.All() {
		st, ok := states[act]
		if !ok {
			continue
		}
		movement := action.GetInfo(act).Category == action.CategoryMovement

		switch {
		case st.justPressed:
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		case movement && st.pressed:
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		case movement && st.justReleased:
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	return events
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.Driver        = (*Backend)(nil)
	_ backend.ActionHandler = (*Backend)(nil)
)
