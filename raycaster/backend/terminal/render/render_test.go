package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/video"
)

func TestLogBufferWrapsAround(t *testing.T) {
	lb := NewLogBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)

	assert.Len(t, lb.GetRecent(2), 2)

	lb.Clear()
	assert.Nil(t, lb.GetRecent(5))
	assert.Zero(t, lb.Len())
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	logger := slog.New(NewLogBufferHandler(lb, level))
	logger.Debug("hidden")
	logger.With("backend", "terminal").WithGroup("view").Info("resized", "cols", 80)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "resized backend=terminal view.cols=80", recent[0].Message)

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Equal(t, 2, lb.Len())
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, "13:04:05 [WRN] careful", FormatLogEntry(LogEntry{Time: ts, Level: slog.LevelWarn, Message: "careful"}))
	assert.Equal(t, "13:04:05 [DBG] x", FormatLogEntry(LogEntry{Time: ts, Level: slog.LevelDebug, Message: "x"}))
}

func TestFitView(t *testing.T) {
	tests := []struct {
		name             string
		maxCols, maxRows int
		cols, rows       int
	}{
		{"width bound", 160, 100, 160, 60},
		{"height bound", 200, 30, 80, 30},
		{"never wider than the frame", 500, 500, 320, 120},
		{"no room", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := FitView(320, 240, tt.maxCols, tt.maxRows)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)
		})
	}
}

func TestSampleCells(t *testing.T) {
	fb := video.NewFrameBuffer(4, 4)
	red := video.Color{R: 255, A: 255}
	blue := video.Color{B: 255, A: 255}
	fb.FillRect(0, 0, 4, 1, red)
	fb.FillRect(0, 1, 4, 1, blue)

	cells := SampleCells(fb, 2, 1)
	require.Len(t, cells, 2)
	assert.Equal(t, Cell{Top: red, Bottom: video.White}, cells[0], "two pixel rows span the whole frame")

	cells = SampleCells(fb, 4, 2)
	require.Len(t, cells, 8)
	assert.Equal(t, Cell{Top: red, Bottom: blue}, cells[0])
	assert.Equal(t, Cell{Top: video.White, Bottom: video.White}, cells[4])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "日本...", Truncate("日本語のテキスト", 7), "wide runes count as two cells")
}
