package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidAxis reports a rotation axis whose direction cannot be
// resolved: zero, shorter than Epsilon, or non-finite.
var ErrInvalidAxis = errors.New("rotation axis must be finite with norm >= Epsilon")

// RotationMatrix builds the 3x3 proper rotation matrix for a
// right-handed rotation of rotAngle degrees about axis. The axis
// magnitude is ignored; only its direction matters. Rodrigues'
// formula on the unit axis k:
//
//	M = I*cos(th) + (k outer k)*(1-cos(th)) + skew(k)*sin(th)
//
// The result satisfies M*Mt = I and det(M) = +1 to floating-point
// tolerance, and rotAngle 0 yields the identity for any valid axis.
// An axis with norm below Epsilon, or with any non-finite component,
// returns a nil matrix and an error matching ErrInvalidAxis.
func RotationMatrix(axis r3.Vec, rotAngle float64) (*r3.Mat, error) {
	n := r3.Norm(axis)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < Epsilon {
		return nil, fmt.Errorf("axis (%g, %g, %g): %w", axis.X, axis.Y, axis.Z, ErrInvalidAxis)
	}
	k := r3.Scale(1/n, axis)

	s := Sind(rotAngle)
	c := Cosd(rotAngle)
	t := 1 - c

	return r3.NewMat([]float64{
		c + k.X*k.X*t, k.X*k.Y*t - k.Z*s, k.X*k.Z*t + k.Y*s,
		k.Y*k.X*t + k.Z*s, c + k.Y*k.Y*t, k.Y*k.Z*t - k.X*s,
		k.Z*k.X*t - k.Y*s, k.Z*k.Y*t + k.X*s, c + k.Z*k.Z*t,
	}), nil
}
