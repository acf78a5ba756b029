package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/valerio/go-raycaster/raycaster/texture"
)

const variants = 4

func main() {
	var out string
	flag.StringVar(&out, "out", filepath.Join("raycaster", "texture", "assets", "walls.bmp"), "Path of the atlas to write")
	flag.Parse()

	img := image.NewRGBA(image.Rect(0, 0, variants*texture.TileWidth, texture.TileHeight))
	for y := 0; y < texture.TileHeight; y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.SetRGBA(x, y, texel(x/texture.TileWidth, x%texture.TileWidth, y))
		}
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating %s: %v\n", out, err)
		os.Exit(1)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "error: encoding %s: %v\n", out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d variants)\n", out, variants)
}

// texel returns the colour of column u, row y of the given variant:
// 0 brick, 1 stone, 2 wood, 3 tiles.
func texel(variant, u, y int) color.RGBA {
	switch variant {
	case 0:
		off := 0
		if (y/16)%2 == 1 {
			off = texture.TileWidth / 2
		}
		if y%16 == 0 || (u+off)%32 == 0 {
			return rgb(180, 180, 170)
		}
		return rgb(150+(u*y)%20, 50, 40)
	case 1:
		n := (u*7 + y*13) % 29
		return rgb(110+n, 110+n, 115+n)
	case 2:
		if u%16 == 0 {
			return rgb(90, 60, 30)
		}
		return rgb(140+(y*3)%25, 95, 50)
	default:
		if u%16 == 0 || y%16 == 0 {
			return rgb(30, 30, 60)
		}
		if (u/16+y/16)%2 == 1 {
			return rgb(60, 90, 200)
		}
		return rgb(80, 120, 220)
	}
}

func rgb(r, g, b int) color.RGBA {
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
