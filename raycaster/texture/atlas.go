package texture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/valerio/go-raycaster/raycaster/video"
)

const (
	// TileWidth and TileHeight are the dimensions of one wall variant.
	TileWidth  = 64
	TileHeight = 64
)

// ErrBadAtlasSize is returned when an image cannot hold whole 64x64 variants.
var ErrBadAtlasSize = errors.New("atlas must be a row of 64x64 tiles")

//go:embed assets/walls.bmp
var defaultAtlas []byte

// Atlas is a horizontal strip of wall textures. Wall identifier n uses the
// 64 columns starting at (n-1)*64.
type Atlas struct {
	img      *image.NRGBA
	variants int
}

// Default decodes the compiled-in wall atlas.
func Default() (*Atlas, error) {
	return Decode(bytes.NewReader(defaultAtlas))
}

// Load decodes an atlas from a BMP, TGA or PNG file.
func Load(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	return a, nil
}

var (
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
	bmpMagic = []byte("BM")
)

// Decode reads a PNG, BMP or TGA atlas and validates its layout. PNG and BMP
// are recognized by their magic bytes; anything else is read as TGA, which
// has none. tga registers an empty magic string with image.Decode, which
// would shadow every other format.
func Decode(r io.Reader) (*Atlas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("texture: read: %w", err)
	}

	var img image.Image
	format := sniffFormat(data)
	switch format {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		img, err = tga.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", format, err)
	}
	return FromImage(img, format)
}

func sniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return "png"
	case bytes.HasPrefix(data, bmpMagic):
		return "bmp"
	default:
		return "tga"
	}
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image, format string) (*Atlas, error) {
	b := img.Bounds()
	if b.Dx() < TileWidth || b.Dx()%TileWidth != 0 || b.Dy() < TileHeight {
		return nil, fmt.Errorf("texture: %s image is %dx%d: %w", format, b.Dx(), b.Dy(), ErrBadAtlasSize)
	}

	return &Atlas{
		img:      toNRGBA(img),
		variants: b.Dx() / TileWidth,
	}, nil
}

// toNRGBA converts any image to a zero-origin NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func (a *Atlas) TileWidth() int  { return TileWidth }
func (a *Atlas) TileHeight() int { return TileHeight }

// Variants returns the number of wall textures in the strip.
func (a *Atlas) Variants() int { return a.variants }

// Sample returns the texel at atlas coordinate (x, y), clamped to the image.
func (a *Atlas) Sample(x, y int) video.Color {
	b := a.img.Rect
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)

	i := a.img.PixOffset(x, y)
	p := a.img.Pix[i : i+4 : i+4]
	return video.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Column maps a position along a wall face, frac in [0, 1], to an atlas
// column inside the block of the given wall identifier. frac == 1 lands on
// the last column of the block. Identifiers past the last variant wrap.
func (a *Atlas) Column(wallType uint8, frac float64) int {
	col := int(frac * TileWidth)
	if col >= TileWidth {
		col = TileWidth - 1
	} else if col < 0 {
		col = 0
	}

	variant := 0
	if wallType > 0 {
		variant = int(wallType-1) % a.variants
	}
	return variant*TileWidth + col
}
