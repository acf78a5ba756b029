package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/backend/terminal/render"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/video"
)

const (
	minTermWidth  = 40
	minTermHeight = 12
	logPaneWidth  = 48
	logCapacity   = 200
)

// keyTimeout is how long a movement key counts as held after its last
// repeat. Terminals report no key releases, so held state expires instead.
const keyTimeout = 120 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	logBuffer  *render.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent
	signals    chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each movement key was seen
	activeKeys map[action.Action]bool      // Movement keys active in previous frame

	currentFrame *video.FrameBuffer
}

// New creates a new terminal backend
func New() *Backend {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	return &Backend{logLevel: level}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: create screen: %w", err)
	}
	return t.initScreen(config, screen)
}

func (t *Backend) initScreen(config backend.BackendConfig, screen tcell.Screen) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: init screen: %w", err)
	}
	t.screen = screen

	// Logs go to the pane; writing to stderr would corrupt the screen.
	t.logBuffer = render.NewLogBuffer(logCapacity)
	if config.ShowDebug {
		t.logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.logLevel)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	slog.Info("Terminal backend initialized", "colors", t.screen.Colors())
	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := time.Now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.Quit, Type: event.Press})
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.movementEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// movementEvents turns key timestamps into Press, Hold and Release events.
func (t *Backend) movementEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		typ := event.Hold
		if !t.activeKeys[act] {
			typ = event.Press
		}
		events = append(events, backend.InputEvent{Action: act, Type: typ})
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.Snapshot:
		debug.TakeSnapshot(t.currentFrame)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	info := action.GetInfo(act)
	slog.Debug("Key event", "key", ev.Name(), "action", info.Description, "category", info.Category)

	if info.Category == action.CategoryMovement {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyTab:    "Tab",
	tcell.KeyEscape: "Escape",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.Quit
	return mapping
}

// buildRuneMapping maps every single-character key name of the default
// mappings to its rune.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		if r := []rune(keyName); len(r) == 1 {
			mapping[r[0]] = act
		}
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()
	newLevel := oldLevel
	switch {
	case direction > 0 && oldLevel > slog.LevelDebug:
		newLevel = oldLevel - 4
	case direction < 0 && oldLevel < slog.LevelError:
		newLevel = oldLevel + 4
	}
	if newLevel != oldLevel {
		t.logLevel.Set(newLevel)
		slog.Warn("Log filter changed", "from", oldLevel, "to", newLevel)
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	// view on the left, logs on the right when there is room for both
	viewWidth := termWidth
	if termWidth >= 2*logPaneWidth {
		viewWidth = termWidth - logPaneWidth - 1
	}
	cols, rows := render.FitView(frame.Width(), frame.Height(), viewWidth, termHeight-2)

	t.drawTitle(termWidth)
	t.drawView(frame, cols, rows)

	if viewWidth < termWidth {
		dividerX := viewWidth
		borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		for y := 1; y < termHeight-1; y++ {
			t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
		}
		t.drawLogs(dividerX+2, 1, termWidth-dividerX-2, termHeight-2)
	} else if rows+2 < termHeight-1 {
		t.drawLogs(0, rows+2, termWidth, termHeight-rows-3)
	}

	t.drawStatus(termWidth, termHeight)
}

func (t *Backend) drawTitle(termWidth int) {
	title := t.config.Title
	if title == "" {
		title = "raycaster"
	}
	title = fmt.Sprintf(" %s  [logs: %s] ", title, t.logLevel.Level())
	t.drawText(1, 0, termWidth-1, title, tcell.StyleDefault.Foreground(tcell.ColorYellow))
}

func (t *Backend) drawView(frame *video.FrameBuffer, cols, rows int) {
	cells := render.SampleCells(frame, cols, rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cell := cells[cy*cols+cx]
			style := tcell.StyleDefault.
				Foreground(trueColor(cell.Top)).
				Background(trueColor(cell.Bottom))
			t.screen.SetContent(cx, cy+1, render.UpperHalfBlock, nil, style)
		}
	}
}

func trueColor(c video.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Backend) drawLogs(startX, startY, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(height) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		t.drawText(startX, startY+i, width, render.FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawStatus(termWidth, termHeight int) {
	text := " WASD/arrows move  Q/E strafe  Tab map  F12 snapshot  +/- logs  Esc quit "
	if t.config.Callbacks.Status != nil {
		text = " " + t.config.Callbacks.Status() + " |" + text
	}
	t.drawText(0, termHeight-1, termWidth, text, tcell.StyleDefault.Reverse(true))
}

// drawText writes s at (x, y), cut to width cells.
func (t *Backend) drawText(x, y, width int, s string, style tcell.Style) {
	for _, ch := range render.Truncate(s, width) {
		t.screen.SetContent(x, y, ch, nil, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.ActionHandler = (*Backend)(nil)
)
