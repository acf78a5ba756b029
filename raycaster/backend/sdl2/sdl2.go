//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/display"
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/video"
)

type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.BackendConfig

	pending []backend.InputEvent
	held    map[sdl.Keycode]action.Action // movement keys currently down

	currentFrame *video.FrameBuffer
}

func New() *Backend {
	return &Backend{held: make(map[sdl.Keycode]action.Action)}
}

func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	scale := config.Scale
	if scale <= 0 {
		scale = display.DefaultPixelScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: init: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: create window: %w", err)
	}
	s.window = window

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if config.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create renderer: %w", err)
	}
	s.renderer = renderer

	// ABGR8888 is R,G,B,A in memory on little-endian hosts, the frame's layout.
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create texture: %w", err)
	}
	s.texture = texture

	slog.Info("SDL2 backend initialized", "scale", scale, "vsync", config.VSync)
	return nil
}

func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	events := s.pending
	s.pending = nil
	for _, act := range action.All() {
		if s.isHeld(act) {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	s.currentFrame = frame
	if err := s.renderFrame(frame); err != nil {
		return events, err
	}
	return events, nil
}

func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	if act == action.Snapshot {
		debug.TakeSnapshot(s.currentFrame)
	}
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		if s.config.Callbacks.OnQuit != nil {
			s.config.Callbacks.OnQuit()
		}
	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			return
		}
		movement := action.GetInfo(act).Category == action.CategoryMovement

		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat == 0:
			s.pending = append(s.pending, backend.InputEvent{Action: act, Type: event.Press})
			if movement {
				s.held[e.Keysym.Sym] = act
			}
		case e.Type == sdl.KEYUP && movement:
			delete(s.held, e.Keysym.Sym)
			if !s.isHeld(act) {
				s.pending = append(s.pending, backend.InputEvent{Action: act, Type: event.Release})
			}
		}
	}
}

// isHeld reports whether any key bound to act is down.
func (s *Backend) isHeld(act action.Action) bool {
	for _, a := range s.held {
		if a == act {
			return true
		}
	}
	return false
}

// sdlKeyNameMap converts SDL keycodes to key names used in default mappings
var sdlKeyNameMap = map[sdl.Keycode]string{
	sdl.K_w:      "w",
	sdl.K_a:      "a",
	sdl.K_s:      "s",
	sdl.K_d:      "d",
	sdl.K_q:      "q",
	sdl.K_e:      "e",
	sdl.K_m:      "m",
	sdl.K_p:      "p",
	sdl.K_UP:     "Up",
	sdl.K_DOWN:   "Down",
	sdl.K_LEFT:   "Left",
	sdl.K_RIGHT:  "Right",
	sdl.K_TAB:    "Tab",
	sdl.K_F12:    "F12",
	sdl.K_ESCAPE: "Escape",
	sdl.K_EQUALS: "=",
	sdl.K_PLUS:   "+",
	sdl.K_MINUS:  "-",
}

var keyMapping = buildKeyMapping()

func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for key, name := range sdlKeyNameMap {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	pix := frame.Pix()
	if err := s.texture.Update(nil, unsafe.Pointer(&pix[0]), frame.Width()*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("sdl2: update texture: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.ActionHandler = (*Backend)(nil)
)
