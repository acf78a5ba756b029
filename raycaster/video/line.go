package video

import "math"

// lineStep is the distance advanced per sample along a line. Half a pixel
// keeps diagonal lines free of gaps.
const lineStep = 0.5

// TextureSampler is the read-only texture access needed by DrawTexturedLine.
type TextureSampler interface {
	Sample(x, y int) Color
	TileHeight() int
}

// segment walks the line from (x0, y0) to (x1, y1) in lineStep increments and
// calls plot with the floored pixel coordinate and the progress t in [0, 1]
// measured from (x0, y0). The pair is first ordered by ascending x; progress
// is reported relative to the caller's original start point either way.
func segment(x0, y0, x1, y1 int, plot func(x, y int, t float64)) {
	swapped := false
	if x0 > x1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		swapped = true
	}

	progress := func(t float64) float64 {
		if swapped {
			return 1 - t
		}
		return t
	}

	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	length := math.Hypot(dx, dy)

	// zero-length segment: a single pixel, no direction to normalize
	if length == 0 {
		plot(x0, y0, 0)
		return
	}

	steps := int(length / lineStep)
	for i := 0; i <= steps; i++ {
		t := float64(i) * lineStep / length
		x := float64(x0) + dx*t
		y := float64(y0) + dy*t
		plot(int(math.Floor(x)), int(math.Floor(y)), progress(t))
	}

	if float64(steps)*lineStep < length {
		plot(x1, y1, progress(1))
	}
}

// DrawLine draws a solid segment between two points. Pixels falling outside
// the buffer are skipped.
func (fb *FrameBuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	segment(x0, y0, x1, y1, func(x, y int, _ float64) {
		fb.TrySetPixel(x, y, c)
	})
}

// DrawTexturedLine draws one textured wall slice. (x0, y0) is the bottom of the
// slice and maps to the last texel row; (x1, y1) maps to row 0. Every texel is
// sampled from the given atlas column and written fully opaque.
func (fb *FrameBuffer) DrawTexturedLine(x0, y0, x1, y1 int, tex TextureSampler, column int) {
	texHeight := tex.TileHeight()
	if texHeight <= 0 {
		return
	}

	segment(x0, y0, x1, y1, func(x, y int, t float64) {
		row := int((1 - t) * float64(texHeight))
		if row >= texHeight {
			row = texHeight - 1
		} else if row < 0 {
			row = 0
		}
		fb.TrySetPixel(x, y, tex.Sample(column, row).Opaque())
	})
}
