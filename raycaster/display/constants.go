package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for frame pixels
	DefaultPixelScale = 3
	// DefaultWindowWidth is the default window width (frame width * scale)
	DefaultWindowWidth = 320 * DefaultPixelScale // 960
	// DefaultWindowHeight is the default window height (frame height * scale)
	DefaultWindowHeight = 240 * DefaultPixelScale // 720
)

// View constants
const (
	// DefaultFOV is the horizontal field of view in degrees
	DefaultFOV = 60.0
	// DefaultWallHeight is the projected height of a wall one unit away
	DefaultWallHeight = 240.0
	// MinWallDistance keeps the projection finite when the camera touches a wall
	MinWallDistance = 0.05
	// DefaultMinimapScale is the minimap size of one tile in pixels
	DefaultMinimapScale = 4
	// PlayerDotSize is the side of the square drawn for the player on the minimap
	PlayerDotSize = 3
)

// Default palette, packed as 0xRRGGBB
const (
	// SkyColor fills the upper half of the view
	SkyColor = 0x6495ED
	// GroundColor fills the lower half of the view
	GroundColor = 0x3C3C3C
	// MinimapWallColor is used for wall tiles on the minimap
	MinimapWallColor = 0xDCDCDC
	// MinimapFloorColor is used for floor tiles on the minimap
	MinimapFloorColor = 0x141414
	// MinimapRayColor is used for the field of view boundary rays
	MinimapRayColor = 0xFFD700
	// MinimapPlayerColor is used for the player dot
	MinimapPlayerColor = 0xFF3030
)
