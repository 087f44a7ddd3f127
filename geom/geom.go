// Package geom provides the angle and coordinate primitives for pointing mounts.
//
// All angles are float64 degrees. Every function is pure and stateless:
// no globals, no locks, no allocation beyond return values, so any call
// is safe from any goroutine. NaN and infinite inputs to the wrapping,
// trigonometric and polar functions propagate NaN through standard
// floating-point semantics; only RotationMatrix rejects bad input with
// an error rather than returning a degenerate matrix.
package geom

import "math"

// Degree/radian conversion factors.
const (
	DegPerRad = 180 / math.Pi
	RadPerDeg = math.Pi / 180
)

// Floating-point limits, mirroring the numeric-limits constants the
// surrounding toolkit shares.
const (
	// Epsilon is the gap between 1 and the next larger float64.
	// It is also the magnitude threshold below which a vector is
	// treated as directionless (PolarFromXY, RotationMatrix).
	Epsilon = 0x1p-52

	// MaxFloat is the largest finite float64.
	MaxFloat = math.MaxFloat64

	// MinFloat is the smallest positive normal float64.
	MinFloat = 0x1p-1022
)
