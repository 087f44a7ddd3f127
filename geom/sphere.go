package geom

import "gonum.org/v1/gonum/spatial/r3"

// Spherical direction helpers shared by everything that points:
// azimuth is measured from +X toward +Y, altitude from the XY plane
// toward +Z, both in degrees.

// VecFromAzAlt returns the unit direction vector for (az, alt).
func VecFromAzAlt(az, alt float64) r3.Vec {
	ca := Cosd(alt)
	return r3.Vec{X: ca * Cosd(az), Y: ca * Sind(az), Z: Sind(alt)}
}

// AzAltFromVec returns the direction angles of v, which need not be a
// unit vector. At the poles the azimuth is unresolvable: az is 0 and
// degenerate is true, matching the PolarFromXY convention.
func AzAltFromVec(v r3.Vec) (az, alt float64, degenerate bool) {
	rxy, az, degenerate := PolarFromXY(v.X, v.Y)
	_, alt, _ = PolarFromXY(rxy, v.Z)
	return az, alt, degenerate
}

// Separation returns the angular distance between directions a and b
// in degrees, in [0, 180]. Zero-length input yields NaN.
func Separation(a, b r3.Vec) float64 {
	d := r3.Dot(r3.Unit(a), r3.Unit(b))

	// Unit vectors can dot to just past +-1.
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return Acosd(d)
}
