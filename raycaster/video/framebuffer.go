package video

import (
	"errors"
	"fmt"
)

const (
	// FramebufferWidth is the fixed horizontal resolution of the rendered view.
	FramebufferWidth = 320
	// FramebufferHeight is the fixed vertical resolution of the rendered view.
	FramebufferHeight = 240

	bytesPerPixel = 4
	clearByte     = 0xFF
)

// ErrOutOfBounds is returned by SetPixel when the coordinate lies outside the buffer.
var ErrOutOfBounds = errors.New("pixel out of bounds")

// Color is a single RGBA8 value.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{0xFF, 0xFF, 0xFF, 0xFF}
	Black = Color{0x00, 0x00, 0x00, 0xFF}
)

// Opaque returns c with alpha forced to 255.
func (c Color) Opaque() Color {
	c.A = 0xFF
	return c
}

// FrameBuffer is a row-major RGBA8 pixel buffer with its origin at the top-left.
type FrameBuffer struct {
	width  int
	height int
	pix    []byte
}

// NewFrameBuffer allocates a buffer filled with opaque white.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*bytesPerPixel),
	}
	fb.Clear()
	return fb
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Pix returns the raw RGBA bytes. The slice is owned by the buffer and is
// overwritten in place on every frame.
func (fb *FrameBuffer) Pix() []byte {
	return fb.pix
}

// Clear resets every byte to the initial opaque white fill.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pix {
		fb.pix[i] = clearByte
	}
}

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// SetPixel writes c at (x, y). Nothing is written when the coordinate is
// outside the buffer.
func (fb *FrameBuffer) SetPixel(x, y int, c Color) error {
	if !fb.inBounds(x, y) {
		return fmt.Errorf("set (%d, %d) on %dx%d: %w", x, y, fb.width, fb.height, ErrOutOfBounds)
	}

	i := (y*fb.width + x) * bytesPerPixel
	fb.pix[i] = c.R
	fb.pix[i+1] = c.G
	fb.pix[i+2] = c.B
	fb.pix[i+3] = c.A
	return nil
}

// TrySetPixel is the best-effort write used by every drawing routine: an
// out-of-bounds write is skipped and reported as false.
func (fb *FrameBuffer) TrySetPixel(x, y int, c Color) bool {
	return fb.SetPixel(x, y, c) == nil
}

// GetPixel reads the color at (x, y). Out-of-bounds reads return the zero Color.
func (fb *FrameBuffer) GetPixel(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Color{}
	}
	i := (y*fb.width + x) * bytesPerPixel
	return Color{fb.pix[i], fb.pix[i+1], fb.pix[i+2], fb.pix[i+3]}
}

// FillRect fills the w*h rectangle at (x, y), clipped to the buffer.
func (fb *FrameBuffer) FillRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.width), min(y+h, fb.height)

	for py := y0; py < y1; py++ {
		row := py * fb.width * bytesPerPixel
		for px := x0; px < x1; px++ {
			i := row + px*bytesPerPixel
			fb.pix[i] = c.R
			fb.pix[i+1] = c.G
			fb.pix[i+2] = c.B
			fb.pix[i+3] = c.A
		}
	}
}
