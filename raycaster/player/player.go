package player

import (
	"math"

	"github.com/valerio/go-raycaster/raycaster/world"
)

// DefaultRadius is the collision radius in world units.
const DefaultRadius = 1.0

// Player is a position and heading in tile units. Angle is in degrees; 0
// points along +x and 90 along +y.
type Player struct {
	X, Y  float64
	Angle float64

	tiles       *world.TileMap
	radius      float64
	maxDistance float64
	step        float64
}

// New places a player on the given map with the default collision radius and
// ray parameters.
func New(tiles *world.TileMap, x, y, angle float64) *Player {
	return &Player{
		X:           x,
		Y:           y,
		Angle:       angle,
		tiles:       tiles,
		radius:      DefaultRadius,
		maxDistance: world.DefaultMaxDistance,
		step:        world.DefaultRayStep,
	}
}

// SetRadius overrides the collision radius.
func (p *Player) SetRadius(r float64) {
	p.radius = r
}

// SetRayParams overrides the march limits used by Look.
func (p *Player) SetRayParams(maxDistance, step float64) {
	p.maxDistance = maxDistance
	p.step = step
}

// Look casts a ray from the player's position at Angle+offsetDeg.
func (p *Player) Look(offsetDeg float64) (world.RayHit, bool) {
	return p.tiles.CastRay(p.X, p.Y, p.Angle+offsetDeg, p.maxDistance, p.step)
}

// Update turns the player by angleDelta and then moves it speed units along
// the heading, or perpendicular to it when strafing. A move that ends in a
// collision is rolled back once and the player stays where it was; the
// turn is kept. It reports whether the move was kept.
func (p *Player) Update(speed, angleDelta float64, strafe bool) bool {
	p.Angle += angleDelta

	heading := p.Angle
	if strafe {
		heading += 90
	}
	dx, dy := world.Direction(heading)
	dx *= speed
	dy *= speed

	p.X += dx
	p.Y += dy
	if !p.Collision() {
		return true
	}

	p.X -= dx
	p.Y -= dy
	return false
}

// Collision reports whether any wall tile in the 4x4 block around the
// player's rounded position has its test corner closer than the collision
// radius. The test corner of a tile is its origin, moved half a tile along
// each axis on which the player lies beyond it. A position outside the grid
// always collides.
func (p *Player) Collision() bool {
	if !p.tiles.InBounds(int(math.Floor(p.X)), int(math.Floor(p.Y))) {
		return true
	}

	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))
	w, h := p.tiles.Size()

	for iy := max(cy-2, 0); iy <= min(cy+1, h-1); iy++ {
		for ix := max(cx-2, 0); ix <= min(cx+1, w-1); ix++ {
			if p.tiles.TileAt(ix, iy) == world.Floor {
				continue
			}

			tx, ty := float64(ix), float64(iy)
			if p.X > tx {
				tx += 0.5
			}
			if p.Y > ty {
				ty += 0.5
			}

			if math.Hypot(tx-p.X, ty-p.Y) < p.radius {
				return true
			}
		}
	}
	return false
}
