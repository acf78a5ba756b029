package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/valerio/go-raycaster/raycaster/video"
)

// UpperHalfBlock is drawn with the upper pixel as foreground and the lower
// pixel as background, so one terminal cell shows two stacked pixels.
const UpperHalfBlock = '▀'

// Cell is the pair of frame pixels shown by one terminal cell.
type Cell struct {
	Top, Bottom video.Color
}

// FitView returns the largest cell grid, at most maxCols by maxRows, that
// shows a frameW x frameH frame without distorting it. Each cell covers two
// pixel rows.
func FitView(frameW, frameH, maxCols, maxRows int) (cols, rows int) {
	if maxCols <= 0 || maxRows <= 0 || frameW <= 0 || frameH <= 0 {
		return 0, 0
	}

	cols = min(maxCols, frameW)
	rows = (cols*frameH + frameW) / (2 * frameW)
	if rows > maxRows {
		rows = maxRows
		cols = min(rows*2*frameW/frameH, maxCols)
	}
	return cols, max(rows, 1)
}

// SampleCells downsamples the frame onto a cols x rows cell grid with
// nearest-neighbor sampling, row-major.
func SampleCells(frame *video.FrameBuffer, cols, rows int) []Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	fw, fh := frame.Width(), frame.Height()
	pixelRows := rows * 2
	cells := make([]Cell, cols*rows)

	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * fh / pixelRows
		bottom := (2*cy + 1) * fh / pixelRows
		for cx := 0; cx < cols; cx++ {
			x := cx * fw / cols
			cells[cy*cols+cx] = Cell{
				Top:    frame.GetPixel(x, top),
				Bottom: frame.GetPixel(x, bottom),
			}
		}
	}
	return cells
}

// Truncate shortens s to at most width terminal cells, marking the cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
