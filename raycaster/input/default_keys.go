package input

import "github.com/valerio/go-raycaster/raycaster/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends can use these mappings as a base and override/extend as needed.
var DefaultKeyMap = map[string]action.Action{
	// Movement
	"w":     action.MoveForward,
	"Up":    action.MoveForward,
	"s":     action.MoveBackward,
	"Down":  action.MoveBackward,
	"a":     action.TurnLeft,
	"Left":  action.TurnLeft,
	"d":     action.TurnRight,
	"Right": action.TurnRight,
	"q":     action.StrafeLeft,
	"e":     action.StrafeRight,

	// View and session controls
	"Tab":    action.ToggleHUD,
	"m":      action.ToggleHUD, // Alternative key
	"F12":    action.Snapshot,
	"p":      action.Snapshot, // Alternative key
	"Escape": action.Quit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
