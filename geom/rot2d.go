package geom

// Rot2D rotates the 2D vector (x, y) counterclockwise by ang degrees:
//
//	rotX = x*cosd(ang) - y*sind(ang)
//	rotY = x*sind(ang) + y*cosd(ang)
//
// Rotation by 0 returns (x, y) unchanged. Rotating by ang then -ang
// recovers the input to floating-point precision.
//
// Rot2D also changes frames. With frame B posed in frame A at offset
// (bx, by) and orientation bang (see Frame2D), a point transforms as
//
//	A to B: Rot2D(xA-bx, yA-by, -bang)
//	B to A: (bx, by) + Rot2D(xB, yB, +bang)
func Rot2D(x, y, ang float64) (rotX, rotY float64) {
	s := Sind(ang)
	c := Cosd(ang)
	return x*c - y*s, x*s + y*c
}

// Frame2D is the pose of one 2D frame expressed in another: the child
// frame's origin sits at (X, Y) in the parent, with its axes rotated
// Ang degrees counterclockwise from the parent's.
type Frame2D struct {
	X, Y float64
	Ang  float64
}

// ToFrame maps a point from parent coordinates into the child frame.
func (f Frame2D) ToFrame(x, y float64) (fx, fy float64) {
	return Rot2D(x-f.X, y-f.Y, -f.Ang)
}

// FromFrame maps a point from the child frame back to parent
// coordinates. It is the exact inverse of ToFrame up to
// floating-point rounding.
func (f Frame2D) FromFrame(fx, fy float64) (x, y float64) {
	rx, ry := Rot2D(fx, fy, f.Ang)
	return f.X + rx, f.Y + ry
}
