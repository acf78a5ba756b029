package raycaster

import (
	"github.com/valerio/go-raycaster/raycaster/input"
	"github.com/valerio/go-raycaster/raycaster/input/action"
	"github.com/valerio/go-raycaster/raycaster/video"
)

// Engine is what the Runner drives once per tick.
type Engine interface {
	ApplyMotion(m input.Motion)
	Render() []byte
	CurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	Status() string
}

var _ Engine = (*Game)(nil)
