package geom

import "math"

// Degree-argument trigonometry. Thin wrappers over the radian math
// functions with the conversion applied at the boundary; domain edge
// cases (out-of-range inverse arguments, non-finite inputs, both
// Atan2d arguments zero) behave exactly as the radian originals do.
// No range reduction is performed here; callers wrap results when a
// canonical range matters.

// Sind returns the sine of ang degrees.
func Sind(ang float64) float64 {
	return math.Sin(ang * RadPerDeg)
}

// Cosd returns the cosine of ang degrees.
func Cosd(ang float64) float64 {
	return math.Cos(ang * RadPerDeg)
}

// Tand returns the tangent of ang degrees.
func Tand(ang float64) float64 {
	return math.Tan(ang * RadPerDeg)
}

// Asind returns the arcsine of x in degrees. |x| > 1 yields NaN.
func Asind(x float64) float64 {
	return math.Asin(x) * DegPerRad
}

// Acosd returns the arccosine of x in degrees. |x| > 1 yields NaN.
func Acosd(x float64) float64 {
	return math.Acos(x) * DegPerRad
}

// Atand returns the arctangent of x in degrees.
func Atand(x float64) float64 {
	return math.Atan(x) * DegPerRad
}

// Atan2d returns the angle of the point (x, y) in degrees, in
// (-180, 180] with the quadrant convention of math.Atan2.
// Atan2d(0, 0) is 0.
func Atan2d(y, x float64) float64 {
	return math.Atan2(y, x) * DegPerRad
}
