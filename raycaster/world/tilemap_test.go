package world

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	leftWall   uint8 = 1
	rightWall  uint8 = 2
	topWall    uint8 = 3
	bottomWall uint8 = 4
)

// enclosedMap returns an empty map walled on all four sides, with distinct
// identifiers per side, plus the given interior walls.
func enclosedMap(t *testing.T, interior map[[2]int]uint8) *TileMap {
	t.Helper()

	rows := make([][]uint8, MapHeight)
	for y := range rows {
		rows[y] = make([]uint8, MapWidth)
		rows[y][0] = leftWall
		rows[y][MapWidth-1] = rightWall
	}
	for x := 0; x < MapWidth; x++ {
		rows[0][x] = topWall
		rows[MapHeight-1][x] = bottomWall
	}
	for pos, id := range interior {
		rows[pos[1]][pos[0]] = id
	}

	m, err := NewTileMap(rows)
	require.NoError(t, err)
	return m
}

func TestNewTileMapRejectsBadSizes(t *testing.T) {
	_, err := NewTileMap(make([][]uint8, 3))
	assert.True(t, errors.Is(err, ErrBadMapSize))

	rows := make([][]uint8, MapHeight)
	for y := range rows {
		rows[y] = make([]uint8, MapWidth)
	}
	rows[5] = make([]uint8, MapWidth-1)
	_, err = NewTileMap(rows)
	assert.True(t, errors.Is(err, ErrBadMapSize))
}

func TestDefaultMapBordersAreWalled(t *testing.T) {
	m := DefaultMap()

	for i := 0; i < MapWidth; i++ {
		assert.True(t, m.IsWall(i, 0), "top (%d)", i)
		assert.True(t, m.IsWall(i, MapHeight-1), "bottom (%d)", i)
	}
	for i := 0; i < MapHeight; i++ {
		assert.True(t, m.IsWall(0, i), "left (%d)", i)
		assert.True(t, m.IsWall(MapWidth-1, i), "right (%d)", i)
	}
	assert.False(t, m.IsWall(-1, 3))
	assert.False(t, m.IsWall(2, 2))
}

func TestCastRaySingleInteriorWall(t *testing.T) {
	m := enclosedMap(t, map[[2]int]uint8{{3, 1}: 7})

	hit, ok := m.Cast(1, 1, 0)
	require.True(t, ok)
	assert.Equal(t, uint8(7), hit.WallType)
	assert.InDelta(t, 2.0, hit.Distance, DefaultRayStep)
	assert.InDelta(t, 3.0, hit.X, DefaultRayStep)
	assert.InDelta(t, 1.0, hit.Y, 1e-9)
}

func TestCastRayEnclosedMap(t *testing.T) {
	m := enclosedMap(t, nil)
	tolerance := DefaultRayStep + 1e-9

	tests := []struct {
		name     string
		angle    float64
		wantDist float64
		wantWall uint8
	}{
		{"east", 0, 6.5, rightWall},
		{"south", 90, 6.5, bottomWall},
		{"west", 180, 7.5, leftWall},
		{"north", 270, 7.5, topWall},
		{"north via negative angle", -90, 7.5, topWall},
		{"thirty degrees", 30, 6.5 / math.Cos(Radians(30)), rightWall},
		{"full turn wraps", 360, 6.5, rightWall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := m.Cast(8.5, 8.5, tt.angle)
			require.True(t, ok)
			assert.Equal(t, tt.wantWall, hit.WallType)
			assert.InDelta(t, tt.wantDist, hit.Distance, tolerance)
			assert.LessOrEqual(t, hit.Distance, DefaultMaxDistance)
		})
	}
}

func TestCastRayTerminatesAtEveryAngle(t *testing.T) {
	m := DefaultMap()
	for angle := 0.0; angle < 360; angle += 7.5 {
		_, ok := m.Cast(2.5, 2.5, angle)
		assert.True(t, ok, "angle %.1f", angle)
	}
}

func TestCastRayFromInsideWall(t *testing.T) {
	m := enclosedMap(t, nil)

	hit, ok := m.Cast(0.5, 4.5, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, hit.Distance)
	assert.Equal(t, leftWall, hit.WallType)
}

func TestCastRayNoHit(t *testing.T) {
	t.Run("max distance exceeded", func(t *testing.T) {
		m := enclosedMap(t, nil)
		_, ok := m.CastRay(8.5, 8.5, 0, 2, DefaultRayStep)
		assert.False(t, ok)
	})

	t.Run("open map leaves the grid", func(t *testing.T) {
		rows := make([][]uint8, MapHeight)
		for y := range rows {
			rows[y] = make([]uint8, MapWidth)
		}
		m, err := NewTileMap(rows)
		require.NoError(t, err)

		_, ok := m.CastRay(8.5, 8.5, 45, 1000, DefaultRayStep)
		assert.False(t, ok)
	})

	t.Run("non-positive step", func(t *testing.T) {
		m := enclosedMap(t, nil)
		_, ok := m.CastRay(8.5, 8.5, 0, 20, 0)
		assert.False(t, ok)
	})
}

func TestDirection(t *testing.T) {
	dx, dy := Direction(0)
	assert.InDelta(t, 1, dx, 1e-12)
	assert.InDelta(t, 0, dy, 1e-12)

	dx, dy = Direction(90)
	assert.InDelta(t, 0, dx, 1e-12)
	assert.InDelta(t, 1, dy, 1e-12)
}
