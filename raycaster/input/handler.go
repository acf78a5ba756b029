package input

import (
	"time"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
)

const defaultDebounce = 300 * time.Millisecond

// Handler filters backend events, debouncing presses of UI and debug actions.
// Movement events and Hold/Release events always pass.
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
	now            func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  defaultDebounce,
		now:            time.Now,
	}
}

// ProcessEvent returns true if the event should be handled, false if it was
// debounced.
func (h *Handler) ProcessEvent(evt backend.InputEvent) bool {
	if evt.Type != event.Press || action.GetInfo(evt.Action).Category == action.CategoryMovement {
		return true
	}

	now := h.now()
	if lastTime, exists := h.lastActionTime[evt.Action]; exists {
		if now.Sub(lastTime) < h.debounceDelay {
			return false
		}
	}
	h.lastActionTime[evt.Action] = now
	return true
}

// Filter returns the events that survive debouncing, in order.
func (h *Handler) Filter(events []backend.InputEvent) []backend.InputEvent {
	kept := make([]backend.InputEvent, 0, len(events))
	for _, evt := range events {
		if h.ProcessEvent(evt) {
			kept = append(kept, evt)
		}
	}
	return kept
}
