package raycaster

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-raycaster/raycaster/backend"
	"github.com/valerio/go-raycaster/raycaster/debug"
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/input/event"
	"github.com/valerio/go-raycaster/raycaster/timing"
	"github.com/valerio/go-raycaster/raycaster/video"
)

// Runner drives an Engine with the input and pacing of a Backend.
type Runner struct {
	engine  Engine
	backend backend.Backend
	limiter timing.Limiter
	manager *input.Manager
	handler *input.Handler

	moveSpeed float64
	turnSpeed float64
	running   bool
	ticks     int
}

// NewRunner wires the engine to the backend. A nil limiter runs unpaced.
func NewRunner(engine Engine, be backend.Backend, limiter timing.Limiter, moveSpeed, turnSpeed float64) *Runner {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}

	r := &Runner{
		engine:    engine,
		backend:   be,
		limiter:   limiter,
		manager:   input.NewManager(),
		handler:   input.NewHandler(),
		moveSpeed: moveSpeed,
		turnSpeed: turnSpeed,
		running:   true,
	}
	r.registerActions()
	return r
}

func (r *Runner) registerActions() {
	r.manager.On(action.Quit, event.Press, r.Stop)
	r.manager.On(action.ToggleHUD, event.Press, func() {
		r.engine.HandleAction(action.ToggleHUD, true)
	})
	r.manager.On(action.Snapshot, event.Press, func() {
		if h, ok := r.backend.(backend.ActionHandler); ok {
			h.HandleAction(action.Snapshot)
			return
		}
		debug.TakeSnapshot(r.engine.CurrentFrame())
	})

	for _, act := range []action.Action{action.DebugLogLevelIncrease, action.DebugLogLevelDecrease} {
		r.manager.On(act, event.Press, func() {
			if h, ok := r.backend.(backend.ActionHandler); ok {
				h.HandleAction(act)
			}
		})
	}
}

// Input exposes the input manager so callers can register extra callbacks.
func (r *Runner) Input() *input.Manager {
	return r.manager
}

// Stop ends the loop after the current tick.
func (r *Runner) Stop() {
	if r.running {
		slog.Info("Stopping", "ticks", r.ticks)
	}
	r.running = false
}

// Ticks returns the number of completed steps.
func (r *Runner) Ticks() int {
	return r.ticks
}

// Step handles one tick: input, motion and rendering.
func (r *Runner) Step(events []backend.InputEvent) (*video.FrameBuffer, bool, error) {
	r.manager.Dispatch(r.handler.Filter(events))
	if !r.running {
		return r.engine.CurrentFrame(), false, nil
	}

	r.engine.ApplyMotion(r.manager.Motion(r.moveSpeed, r.turnSpeed))
	r.engine.Render()
	r.ticks++

	return r.engine.CurrentFrame(), true, nil
}

// Run initializes the backend and loops until a Quit action, a backend
// error or the backend's own loop ends.
func (r *Runner) Run(cfg backend.BackendConfig) (err error) {
	if cfg.Callbacks.OnQuit == nil {
		cfg.Callbacks.OnQuit = r.Stop
	}
	if cfg.Callbacks.Status == nil {
		cfg.Callbacks.Status = r.engine.Status
	}

	if err := r.backend.Init(cfg); err != nil {
		return fmt.Errorf("raycaster: init backend: %w", err)
	}
	defer func() {
		if cerr := r.backend.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("raycaster: cleanup backend: %w", cerr)
		}
	}()

	if d, ok := r.backend.(backend.Driver); ok {
		return d.Drive(r.Step)
	}

	var events []backend.InputEvent
	for {
		frame, running, err := r.Step(events)
		if err != nil || !running {
			return err
		}

		events, err = r.backend.Update(frame)
		if err != nil {
			return fmt.Errorf("raycaster: update backend: %w", err)
		}

		r.limiter.WaitForNextFrame()
	}
}
