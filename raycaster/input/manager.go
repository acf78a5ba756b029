package input

import (
	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
)

// Motion is the player movement requested for one tick.
type Motion struct {
	Forward float64 // units along the heading, negative moves back
	Strafe  float64 // units to the right of the heading, negative moves left
	Turn    float64 // degrees added to the heading, positive turns right
}

// IsZero reports whether the motion moves or turns the player at all.
func (m Motion) IsZero() bool {
	return m == Motion{}
}

// Manager tracks held movement keys and dispatches callbacks for the rest.
type Manager struct {
	handlers map[action.Action]map[event.Type][]func()
	held     map[action.Action]bool
}

func NewManager() *Manager {
	return &Manager{
		handlers: make(map[action.Action]map[event.Type][]func()),
		held:     make(map[action.Action]bool),
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if action.GetInfo(act).Category == action.CategoryMovement {
		switch evt {
		case event.Press, event.Hold:
			m.held[act] = true
		case event.Release:
			delete(m.held, act)
		}
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

// Dispatch triggers every event in order.
func (m *Manager) Dispatch(events []backend.InputEvent) {
	for _, evt := range events {
		m.Trigger(evt.Action, evt.Type)
	}
}

// IsHeld reports whether a movement action is currently held.
func (m *Manager) IsHeld(act action.Action) bool {
	return m.held[act]
}

// Hold marks a movement action as held until Release is triggered for it.
func (m *Manager) Hold(act action.Action) {
	m.Trigger(act, event.Hold)
}

// ReleaseAll drops every held movement action.
func (m *Manager) ReleaseAll() {
	for act := range m.held {
		m.Trigger(act, event.Release)
	}
}

// Motion combines the held movement actions into one tick of motion.
// Opposing actions cancel out.
func (m *Manager) Motion(moveSpeed, turnSpeed float64) Motion {
	axis := func(neg, pos action.Action) float64 {
		v := 0.0
		if m.held[pos] {
			v++
		}
		if m.held[neg] {
			v--
		}
		return v
	}

	return Motion{
		Forward: axis(action.MoveBackward, action.MoveForward) * moveSpeed,
		Strafe:  axis(action.StrafeLeft, action.StrafeRight) * moveSpeed,
		Turn:    axis(action.TurnLeft, action.TurnRight) * turnSpeed,
	}
}
