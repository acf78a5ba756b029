package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/texture"
	"github.com/valerio/go-raycaster/raycaster/video"
)

func TestTexelsMatchEmbeddedAtlas(t *testing.T) {
	atlas, err := texture.Default()
	require.NoError(t, err)
	require.Equal(t, variants, atlas.Variants())

	for y := 0; y < texture.TileHeight; y++ {
		for x := 0; x < variants*texture.TileWidth; x++ {
			c := texel(x/texture.TileWidth, x%texture.TileWidth, y)
			want := video.Color{R: c.R, G: c.G, B: c.B, A: c.A}
			require.Equal(t, want, atlas.Sample(x, y), "texel (%d, %d)", x, y)
		}
	}
}
