package geom

import "math"

// Angle wrapping. Each function reduces its input with a single
// floor-division rather than repeated +-360 steps, so precision and
// cost do not degrade for large magnitudes. Rounding in the division
// can land the result exactly on the excluded upper bound or a hair
// outside the range; the paired post-checks fold it back in.

// WrapPos wraps an angle in degrees into [0, 360).
// WrapPos(360) == 0 exactly. Non-finite input yields NaN.
func WrapPos(ang float64) float64 {
	wrapped := ang - 360*math.Floor(ang/360)
	if wrapped >= 360 {
		wrapped -= 360
	}
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped
}

// WrapCtr wraps an angle in degrees into [-180, 180).
// WrapCtr(180) == -180 exactly. Non-finite input yields NaN.
func WrapCtr(ang float64) float64 {
	wrapped := ang - 360*math.Floor((ang+180)/360)
	if wrapped >= 180 {
		wrapped -= 360
	}
	if wrapped < -180 {
		wrapped += 360
	}
	return wrapped
}

// WrapNear wraps an angle in degrees into [refAng-180, refAng+180),
// the half-turn neighborhood of refAng. WrapNear(ang, 0) equals
// WrapCtr(ang). Non-finite ang or refAng yields NaN.
func WrapNear(ang, refAng float64) float64 {
	wrapped := refAng + WrapCtr(ang-refAng)
	if wrapped-refAng >= 180 {
		wrapped -= 360
	}
	if wrapped-refAng < -180 {
		wrapped += 360
	}
	return wrapped
}
