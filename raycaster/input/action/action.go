package action

// Action represents input actions that can be performed in the maze
type Action int

const (
	// Player movement
	MoveForward Action = iota
	MoveBackward
	TurnLeft
	TurnRight
	StrafeLeft
	StrafeRight

	// View and session controls
	ToggleHUD
	Snapshot
	Quit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease

	actionCount
)

// Category groups actions by how backends and the runner treat them.
type Category int

const (
	// CategoryMovement actions are held; backends report Press, Hold and Release.
	CategoryMovement Category = iota
	// CategoryUI actions fire once per press and are debounced.
	CategoryUI
	// CategoryDebug actions change diagnostics only.
	CategoryDebug
)

func (c Category) String() string {
	switch c {
	case CategoryMovement:
		return "movement"
	case CategoryUI:
		return "ui"
	case CategoryDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Info describes an action for logs and help text.
type Info struct {
	Description string
	Category    Category
}

var infos = [actionCount]Info{
	MoveForward:           {"Move forward", CategoryMovement},
	MoveBackward:          {"Move backward", CategoryMovement},
	TurnLeft:              {"Turn left", CategoryMovement},
	TurnRight:             {"Turn right", CategoryMovement},
	StrafeLeft:            {"Strafe left", CategoryMovement},
	StrafeRight:           {"Strafe right", CategoryMovement},
	ToggleHUD:             {"Toggle minimap", CategoryUI},
	Snapshot:              {"Save snapshot", CategoryUI},
	Quit:                  {"Quit", CategoryUI},
	DebugLogLevelIncrease: {"More verbose logs", CategoryDebug},
	DebugLogLevelDecrease: {"Less verbose logs", CategoryDebug},
}

// GetInfo returns the description and category of an action.
func GetInfo(act Action) Info {
	if act < 0 || act >= actionCount {
		return Info{Description: "Unknown", Category: CategoryDebug}
	}
	return infos[act]
}

// All returns every defined action in declaration order.
func All() []Action {
	acts := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		acts = append(acts, a)
	}
	return acts
}

func (a Action) String() string {
	return GetInfo(a).Description
}
