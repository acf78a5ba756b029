package debug

import (
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/video"
)

func testFrame() *video.FrameBuffer {
	fb := video.NewFrameBuffer(4, 2)
	fb.TrySetPixel(0, 0, video.Color{R: 255, A: 255})
	fb.TrySetPixel(3, 1, video.Color{B: 255, A: 255})
	return fb
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat("webp")
	require.NoError(t, err)
	assert.Equal(t, FormatWebP, f)

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFrameImageScale(t *testing.T) {
	img := FrameImage(testFrame(), 3)

	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	r, _, _, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r, "top-left pixel covers a 3x3 block")
	_, _, b, _ := img.At(11, 5).RGBA()
	assert.Equal(t, uint32(0xFFFF), b)
	r, g, b, _ := img.At(4, 1).RGBA()
	assert.Equal(t, [3]uint32{0xFFFF, 0xFFFF, 0xFFFF}, [3]uint32{r, g, b})
}

func TestSaveFramePNG(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveFrame(testFrame(), "frame_1", dir, FormatPNG, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "frame_1_"))
	assert.Equal(t, ".png", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestSaveFrameWebP(t *testing.T) {
	path, err := SaveFrame(testFrame(), "frame_2", t.TempDir(), FormatWebP, 1)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestSaveFrameErrors(t *testing.T) {
	_, err := SaveFrame(nil, "x", t.TempDir(), FormatPNG, 1)
	assert.Error(t, err)

	_, err = SaveFrame(testFrame(), "x", t.TempDir(), Format("bmp"), 1)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = SaveFrame(testFrame(), "x", filepath.Join(t.TempDir(), "missing"), FormatPNG, 1)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	t.Run("encoded data is flushed to disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ok.png")

		err := writeFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "pixels")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "pixels", string(data))
	})

	t.Run("failed encode removes the partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.png")
		errEncode := errors.New("encoder gave up")

		err := writeFile(path, func(w io.Writer) error {
			_, _ = io.WriteString(w, "half a frame")
			return errEncode
		})
		assert.ErrorIs(t, err, errEncode)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "partial snapshot left at %s", path)
	})
}
