package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-raycaster/raycaster/world"
)

func enclosedMap(t *testing.T, interior map[[2]int]uint8) *world.TileMap {
	t.Helper()

	rows := make([][]uint8, world.MapHeight)
	for y := range rows {
		rows[y] = make([]uint8, world.MapWidth)
		rows[y][0] = 1
		rows[y][world.MapWidth-1] = 1
	}
	for x := 0; x < world.MapWidth; x++ {
		rows[0][x] = 1
		rows[world.MapHeight-1][x] = 1
	}
	for pos, id := range interior {
		rows[pos[1]][pos[0]] = id
	}

	m, err := world.NewTileMap(rows)
	require.NoError(t, err)
	return m
}

func TestUpdateMovesAlongHeading(t *testing.T) {
	tests := []struct {
		name         string
		angle        float64
		speed        float64
		strafe       bool
		wantX, wantY float64
	}{
		{"forward east", 0, 2, false, 10.5, 8.5},
		{"forward south", 90, 2, false, 8.5, 10.5},
		{"backward", 0, -2, false, 6.5, 8.5},
		{"strafe right of east is south", 0, 2, true, 8.5, 10.5},
		{"strafe left", 0, -2, true, 8.5, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(enclosedMap(t, nil), 8.5, 8.5, tt.angle)

			moved := p.Update(tt.speed, 0, tt.strafe)
			assert.True(t, moved)
			assert.InDelta(t, tt.wantX, p.X, 1e-9)
			assert.InDelta(t, tt.wantY, p.Y, 1e-9)
			assert.Equal(t, tt.angle, p.Angle)
		})
	}
}

func TestUpdateTurnsBeforeMoving(t *testing.T) {
	p := New(enclosedMap(t, nil), 8.5, 8.5, 0)

	p.Update(1, 90, false)

	assert.Equal(t, 90.0, p.Angle)
	assert.InDelta(t, 8.5, p.X, 1e-9)
	assert.InDelta(t, 9.5, p.Y, 1e-9)
}

func TestUpdateCollisionRollback(t *testing.T) {
	t.Run("move that keeps clear of walls is accepted", func(t *testing.T) {
		p := New(enclosedMap(t, nil), 8.5, 8.5, 0)
		assert.True(t, p.Update(5, 0, false))
		assert.InDelta(t, 13.5, p.X, 1e-9)
		assert.False(t, p.Collision())
	})

	t.Run("move into the radius is rolled back", func(t *testing.T) {
		p := New(enclosedMap(t, nil), 8.5, 8.5, 0)
		assert.False(t, p.Update(6, 0, false))
		assert.InDelta(t, 8.5, p.X, 1e-9)
		assert.InDelta(t, 8.5, p.Y, 1e-9)
	})

	t.Run("turn survives the rollback", func(t *testing.T) {
		p := New(enclosedMap(t, nil), 8.5, 8.5, 0)
		assert.False(t, p.Update(-7.5, 180, false))
		assert.Equal(t, 180.0, p.Angle)
		assert.InDelta(t, 8.5, p.X, 1e-9)
	})

	t.Run("exactly one rollback when already colliding", func(t *testing.T) {
		p := New(enclosedMap(t, nil), 1.2, 8.5, 0)
		require.True(t, p.Collision())

		assert.False(t, p.Update(0, 0, false))
		assert.InDelta(t, 1.2, p.X, 1e-9)
		assert.InDelta(t, 8.5, p.Y, 1e-9)
	})
}

func TestCollisionCornerRule(t *testing.T) {
	m := enclosedMap(t, nil)

	tests := []struct {
		name    string
		x, y    float64
		collide bool
	}{
		{"open center", 8.5, 8.5, false},
		{"distance exactly one from right wall corner", 14.0, 8.5, false},
		{"inside radius of right wall", 14.6, 8.5, true},
		{"just clear of right wall", 13.9, 8.5, false},
		{"left wall corner is offset toward player", 1.5, 8.5, false},
		{"inside radius of left wall", 1.4, 8.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(m, tt.x, tt.y, 0)
			assert.Equal(t, tt.collide, p.Collision())
		})
	}
}

func TestCollisionOutsideGrid(t *testing.T) {
	m := enclosedMap(t, nil)

	for _, pos := range [][2]float64{{-3.5, 8.5}, {8.5, -0.1}, {16.2, 8.5}, {8.5, 20}} {
		p := New(m, pos[0], pos[1], 0)
		assert.True(t, p.Collision(), "(%.1f, %.1f)", pos[0], pos[1])
	}

	p := New(m, 8.5, 8.5, 180)
	assert.False(t, p.Update(12, 0, false), "a jump past the wall is rejected")
	assert.InDelta(t, 8.5, p.X, 1e-9)
}

func TestCollisionWithRadius(t *testing.T) {
	p := New(enclosedMap(t, nil), 13.9, 8.5, 0)
	assert.False(t, p.Collision())

	p.SetRadius(1.5)
	assert.True(t, p.Collision())
}

func TestLook(t *testing.T) {
	p := New(enclosedMap(t, map[[2]int]uint8{{3, 1}: 5}), 1, 1, 0)

	hit, ok := p.Look(0)
	require.True(t, ok)
	assert.Equal(t, uint8(5), hit.WallType)
	assert.InDelta(t, 2.0, hit.Distance, world.DefaultRayStep)

	p.Angle = 90
	hit, ok = p.Look(-90)
	require.True(t, ok)
	assert.Equal(t, uint8(5), hit.WallType, "offset is added to the heading")
}
