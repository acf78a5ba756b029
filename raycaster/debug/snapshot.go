package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/valerio/go-raycaster/raycaster/video"
)

// Format is an image encoding for saved frames.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ErrUnknownFormat is returned for formats other than png and webp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// ParseFormat accepts "png" or "webp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatWebP:
		return f, nil
	default:
		return "", fmt.Errorf("debug: %q: %w", s, ErrUnknownFormat)
	}
}

// FrameImage copies a frame into an image, upscaled by an integer factor
// with nearest-neighbor sampling so pixels stay sharp.
func FrameImage(frame *video.FrameBuffer, scale int) *image.RGBA {
	w, h := frame.Width(), frame.Height()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(src.Pix, frame.Pix())

	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveFrame writes the frame to directory as <baseName>_<timestamp>.<format>
// and returns the path. An empty directory means the working directory.
func SaveFrame(frame *video.FrameBuffer, baseName, directory string, format Format, scale int) (string, error) {
	if frame == nil {
		return "", errors.New("debug: no frame to save")
	}
	if format == "" {
		format = FormatPNG
	}
	if format != FormatPNG && format != FormatWebP {
		return "", fmt.Errorf("debug: %q: %w", format, ErrUnknownFormat)
	}

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("debug: get current directory: %w", err)
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", baseName, timestamp, format))

	img := FrameImage(frame, scale)
	err := writeFile(filePath, func(w io.Writer) error {
		if format == FormatWebP {
			return nativewebp.Encode(w, img, nil)
		}
		return png.Encode(w, img)
	})
	if err != nil {
		return "", err
	}

	b := img.Bounds()
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "format", format)
	return filePath, nil
}

// writeFile creates path and fills it with encode. The file is removed if
// encoding or closing fails, so no partial snapshot is left behind.
func writeFile(path string, encode func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debug: create %s: %w", path, err)
	}

	if err := encode(file); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("debug: encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("debug: close %s: %w", path, err)
	}
	return nil
}

// TakeSnapshot handles the snapshot key for interactive backends.
func TakeSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	if _, err := SaveFrame(frame, "raycaster_snapshot", "", FormatPNG, 1); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}
