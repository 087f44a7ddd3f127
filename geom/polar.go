package geom

import "math"

// PolarFromXY converts Cartesian (x, y) to polar (r, theta degrees).
// r is computed with math.Hypot, so extreme component magnitudes do
// not overflow or underflow, and is always >= 0. theta is in
// (-180, 180]. When r is below Epsilon the direction is not
// resolvable: theta is 0 and degenerate is true.
func PolarFromXY(x, y float64) (r, theta float64, degenerate bool) {
	r = math.Hypot(x, y)
	if r < Epsilon {
		return r, 0, true
	}
	return r, Atan2d(y, x), false
}

// XYFromPolar converts polar (r, theta degrees) to Cartesian (x, y).
// Negative r is accepted and points opposite theta.
func XYFromPolar(r, theta float64) (x, y float64) {
	return r * Cosd(theta), r * Sind(theta)
}
