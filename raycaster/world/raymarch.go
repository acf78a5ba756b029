package world

import "math"

const (
	DefaultMaxDistance = 20.0
	DefaultRayStep     = 0.1
)

// RayHit describes the first wall tile a ray entered.
type RayHit struct {
	X, Y     float64 // world position of the sample that entered the wall
	Distance float64 // marched distance from the origin
	WallType uint8   // identifier of the struck tile
}

// Radians converts a heading in degrees.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Direction returns the unit vector for a heading in degrees. 0 points along
// +x and 90 along +y.
func Direction(deg float64) (dx, dy float64) {
	rad := Radians(deg)
	return math.Cos(rad), math.Sin(rad)
}

// Cast marches a ray with the default distance and step.
func (m *TileMap) Cast(ox, oy, angleDeg float64) (RayHit, bool) {
	return m.CastRay(ox, oy, angleDeg, DefaultMaxDistance, DefaultRayStep)
}

// CastRay steps a point from (ox, oy) along angleDeg in increments of step
// and stops at the first wall tile. It reports no hit once maxDistance is
// exceeded or the point leaves the grid.
func (m *TileMap) CastRay(ox, oy, angleDeg, maxDistance, step float64) (RayHit, bool) {
	if step <= 0 {
		return RayHit{}, false
	}

	dx, dy := Direction(angleDeg)

	// distance is derived from the step counter so it does not accumulate error
	for i := 0; ; i++ {
		dist := float64(i) * step
		if dist > maxDistance {
			return RayHit{}, false
		}

		x := ox + dx*dist
		y := oy + dy*dist
		ix := int(math.Floor(x))
		iy := int(math.Floor(y))

		if !m.InBounds(ix, iy) {
			return RayHit{}, false
		}

		if tile := m.tiles[iy][ix]; tile != Floor {
			return RayHit{X: x, Y: y, Distance: dist, WallType: tile}, true
		}
	}
}
