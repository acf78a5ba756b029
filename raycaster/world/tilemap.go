package world

import (
	"errors"
	"fmt"
)

const (
	MapWidth  = 16
	MapHeight = 16

	// Floor is the only passable tile identifier.
	Floor uint8 = 0
)

// ErrBadMapSize is returned when a map is not exactly MapWidth x MapHeight.
var ErrBadMapSize = errors.New("map must be 16x16")

// TileMap is a fixed grid of tile identifiers indexed [y][x]. Any nonzero
// identifier is a wall and selects texture variant id-1.
type TileMap struct {
	tiles [MapHeight][MapWidth]uint8
}

// defaultTiles is the compiled-in maze. Every border tile is a wall, which
// guarantees that rays cast from inside the maze always terminate.
var defaultTiles = [MapHeight][MapWidth]uint8{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 3, 3, 0, 0, 0, 4, 4, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 4, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 2},
	{1, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 2},
	{1, 0, 0, 4, 4, 4, 0, 0, 0, 0, 3, 3, 3, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
	{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
}

// DefaultMap returns a copy of the compiled-in maze.
func DefaultMap() *TileMap {
	return &TileMap{tiles: defaultTiles}
}

// NewTileMap builds a map from rows indexed [y][x].
func NewTileMap(rows [][]uint8) (*TileMap, error) {
	if len(rows) != MapHeight {
		return nil, fmt.Errorf("world: %d rows: %w", len(rows), ErrBadMapSize)
	}

	m := &TileMap{}
	for y, row := range rows {
		if len(row) != MapWidth {
			return nil, fmt.Errorf("world: row %d has %d tiles: %w", y, len(row), ErrBadMapSize)
		}
		copy(m.tiles[y][:], row)
	}
	return m, nil
}

// InBounds reports whether (ix, iy) addresses a tile of the grid.
func (m *TileMap) InBounds(ix, iy int) bool {
	return ix >= 0 && iy >= 0 && ix < MapWidth && iy < MapHeight
}

// TileAt returns the identifier at (ix, iy). Callers must only pass
// coordinates for which InBounds holds.
func (m *TileMap) TileAt(ix, iy int) uint8 {
	return m.tiles[iy][ix]
}

// IsWall reports whether (ix, iy) is inside the grid and blocked.
func (m *TileMap) IsWall(ix, iy int) bool {
	return m.InBounds(ix, iy) && m.tiles[iy][ix] != Floor
}

// Size returns the grid dimensions.
func (m *TileMap) Size() (width, height int) {
	return MapWidth, MapHeight
}
