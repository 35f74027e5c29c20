// Package geom holds the pure geometry used by the stage simulation.
// Everything here is side-effect free so the stepper, resolver, and
// sequencer share one set of primitives.
package geom

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SquaresOverlap reports whether two axis-aligned squares, given by center
// and side length, overlap. Touching edges do not count as overlap.
func SquaresOverlap(ax, ay, aSide, bx, by, bSide float64) bool {
	half := (aSide + bSide) / 2
	return math.Abs(ax-bx) < half && math.Abs(ay-by) < half
}

// Separate returns the displacement to apply to each of two centers so that
// their distance becomes exactly minDist, splitting the correction equally.
// Centers already at least minDist apart get zero displacement. Coincident
// centers fall back to pushing apart along +X.
func Separate(ax, ay, bx, by, minDist float64) (adx, ady, bdx, bdy float64) {
	dx := bx - ax
	dy := by - ay
	dist := math.Hypot(dx, dy)
	if dist >= minDist {
		return 0, 0, 0, 0
	}
	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx = dx / dist
		ny = dy / dist
	}
	push := (minDist - dist) / 2
	return -nx * push, -ny * push, nx * push, ny * push
}

// HeadingVector decomposes a magnitude along a direction given in degrees.
// Direction 0 points up on screen and increasing values sweep clockwise,
// so the angle is rotated by -90 degrees before the trig decomposition.
// Screen Y grows downward.
func HeadingVector(magnitude, dirDegrees float64) (vx, vy float64) {
	rad := (dirDegrees - 90) * math.Pi / 180
	return magnitude * math.Cos(rad), magnitude * math.Sin(rad)
}

// NormalizeDegrees reduces d modulo 360 into [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
