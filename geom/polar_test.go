package geom

import (
	"math"
	"testing"
)

func TestPolarFromXY(t *testing.T) {
	testCases := []struct {
		x, y, wantR, wantTheta float64
	}{
		{3, 4, 5, 53.13010235415598},
		{1, 0, 1, 0},
		{0, 1, 1, 90},
		{-1, 0, 1, 180},
		{0, -1, 1, -90},
		{-3, -4, 5, -126.86989764584402},
		{1, 1, math.Sqrt2, 45},
	}

	for _, tc := range testCases {
		r, theta, degenerate := PolarFromXY(tc.x, tc.y)
		if degenerate {
			t.Errorf("PolarFromXY(%g, %g): unexpected degenerate", tc.x, tc.y)
		}
		if math.Abs(r-tc.wantR) > 1e-9 || math.Abs(theta-tc.wantTheta) > 1e-9 {
			t.Errorf("PolarFromXY(%g, %g): expected (%g, %g), got (%g, %g)",
				tc.x, tc.y, tc.wantR, tc.wantTheta, r, theta)
		}
	}
}

func TestPolarFromXYDegenerate(t *testing.T) {
	testCases := []struct{ x, y float64 }{
		{0, 0},
		{1e-17, 0},
		{0, -1e-17},
		{1e-17, 1e-17},
	}

	for _, tc := range testCases {
		r, theta, degenerate := PolarFromXY(tc.x, tc.y)
		if !degenerate {
			t.Errorf("PolarFromXY(%g, %g): expected degenerate", tc.x, tc.y)
		}
		if theta != 0 {
			t.Errorf("PolarFromXY(%g, %g): expected theta 0, got %g", tc.x, tc.y, theta)
		}
		if r < 0 || r >= Epsilon {
			t.Errorf("PolarFromXY(%g, %g): degenerate r = %g out of expected range", tc.x, tc.y, r)
		}
	}
}

func TestPolarFromXYExtremeMagnitudes(t *testing.T) {
	// hypot must not overflow for large components.
	r, theta, degenerate := PolarFromXY(1e200, 1e200)
	if math.IsInf(r, 1) || degenerate {
		t.Errorf("PolarFromXY(1e200, 1e200): r = %g, degenerate = %v", r, degenerate)
	}
	if math.Abs(theta-45) > 1e-12 {
		t.Errorf("PolarFromXY(1e200, 1e200): expected theta 45, got %g", theta)
	}
	if math.Abs(r-1e200*math.Sqrt2) > 1e186 {
		t.Errorf("PolarFromXY(1e200, 1e200): expected r %g, got %g", 1e200*math.Sqrt2, r)
	}
}

func TestXYFromPolar(t *testing.T) {
	testCases := []struct {
		r, theta, wantX, wantY float64
	}{
		{5, 53.13010235415598, 3, 4},
		{1, 0, 1, 0},
		{1, 90, 0, 1},
		{2, 180, -2, 0},
		{0, 123, 0, 0},
		{-5, 0, -5, 0},  // negative radius points opposite theta
		{-1, 90, 0, -1},
	}

	for _, tc := range testCases {
		x, y := XYFromPolar(tc.r, tc.theta)
		if math.Abs(x-tc.wantX) > 1e-9 || math.Abs(y-tc.wantY) > 1e-9 {
			t.Errorf("XYFromPolar(%g, %g): expected (%g, %g), got (%g, %g)",
				tc.r, tc.theta, tc.wantX, tc.wantY, x, y)
		}
	}
}

func TestPolarRoundTrip(t *testing.T) {
	testCases := []struct{ x, y float64 }{
		{3, 4},
		{-3, 4},
		{-3, -4},
		{3, -4},
		{1e-6, 2e-6},
		{12345.6, -0.001},
		{1e150, -1e150},
	}

	for _, tc := range testCases {
		r, theta, degenerate := PolarFromXY(tc.x, tc.y)
		if degenerate {
			t.Errorf("PolarFromXY(%g, %g): unexpected degenerate", tc.x, tc.y)
			continue
		}
		x, y := XYFromPolar(r, theta)
		scale := math.Max(math.Abs(tc.x), math.Abs(tc.y))
		if math.Abs(x-tc.x) > 1e-9*scale || math.Abs(y-tc.y) > 1e-9*scale {
			t.Errorf("round trip (%g, %g) -> (%g, %g)", tc.x, tc.y, x, y)
		}
	}
}

func TestPolarRoundTripDegenerate(t *testing.T) {
	// The degenerate case round-trips to the origin, not the input.
	r, theta, degenerate := PolarFromXY(1e-17, -1e-17)
	if !degenerate {
		t.Fatal("expected degenerate")
	}
	x, y := XYFromPolar(r, theta)
	if math.Abs(x) > Epsilon || math.Abs(y) > Epsilon {
		t.Errorf("degenerate round trip: expected origin, got (%g, %g)", x, y)
	}
}
