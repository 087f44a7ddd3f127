package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestVecFromAzAlt(t *testing.T) {
	testCases := []struct {
		az, alt float64
		want    r3.Vec
	}{
		{0, 0, r3.Vec{X: 1}},
		{90, 0, r3.Vec{Y: 1}},
		{180, 0, r3.Vec{X: -1}},
		{-90, 0, r3.Vec{Y: -1}},
		{0, 90, r3.Vec{Z: 1}},
		{0, -90, r3.Vec{Z: -1}},
		{45, 45, r3.Vec{X: 0.5, Y: 0.5, Z: math.Sqrt2 / 2}},
	}

	for _, tc := range testCases {
		got := VecFromAzAlt(tc.az, tc.alt)
		if vecDist(got, tc.want) > 1e-12 {
			t.Errorf("VecFromAzAlt(%g, %g): expected %+v, got %+v", tc.az, tc.alt, tc.want, got)
		}
		if math.Abs(r3.Norm(got)-1) > 1e-15 {
			t.Errorf("VecFromAzAlt(%g, %g): norm %g, expected 1", tc.az, tc.alt, r3.Norm(got))
		}
	}
}

func TestAzAltRoundTrip(t *testing.T) {
	azs := []float64{-179, -90.5, -10, 0, 33.75, 90, 179.99}
	alts := []float64{-89, -45.25, 0, 12.5, 60, 89}

	for _, az := range azs {
		for _, alt := range alts {
			gotAz, gotAlt, degenerate := AzAltFromVec(VecFromAzAlt(az, alt))
			if degenerate {
				t.Errorf("(%g, %g): unexpected degenerate", az, alt)
				continue
			}
			if math.Abs(WrapCtr(gotAz-az)) > 1e-10 || math.Abs(gotAlt-alt) > 1e-10 {
				t.Errorf("round trip (%g, %g): got (%g, %g)", az, alt, gotAz, gotAlt)
			}
		}
	}
}

func TestAzAltFromVecScaleInvariant(t *testing.T) {
	v := VecFromAzAlt(33, 21)
	az1, alt1, _ := AzAltFromVec(v)
	az2, alt2, _ := AzAltFromVec(r3.Scale(1e6, v))
	if math.Abs(az1-az2) > 1e-10 || math.Abs(alt1-alt2) > 1e-10 {
		t.Errorf("scaling changed direction: (%g, %g) vs (%g, %g)", az1, alt1, az2, alt2)
	}
}

func TestAzAltFromVecPole(t *testing.T) {
	az, alt, degenerate := AzAltFromVec(r3.Vec{Z: 1})
	if !degenerate {
		t.Error("expected degenerate at the pole")
	}
	if az != 0 {
		t.Errorf("expected az 0 at the pole, got %g", az)
	}
	if math.Abs(alt-90) > 1e-12 {
		t.Errorf("expected alt 90 at the pole, got %g", alt)
	}

	_, alt, degenerate = AzAltFromVec(r3.Vec{Z: -2.5})
	if !degenerate || math.Abs(alt+90) > 1e-12 {
		t.Errorf("south pole: expected (degenerate, -90), got (%v, %g)", degenerate, alt)
	}
}

func TestSeparation(t *testing.T) {
	testCases := []struct {
		a, b r3.Vec
		want float64
	}{
		{r3.Vec{X: 1}, r3.Vec{X: 1}, 0},
		{r3.Vec{X: 1}, r3.Vec{Y: 1}, 90},
		{r3.Vec{X: 1}, r3.Vec{X: -1}, 180},
		{r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, 45},
		{r3.Vec{X: 5}, r3.Vec{X: 0.2}, 0}, // magnitude must not matter
	}

	for _, tc := range testCases {
		if got := Separation(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Separation(%+v, %+v): expected %g, got %g", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestSeparationMatchesAngleDelta(t *testing.T) {
	// On the horizon, separation equals the azimuth delta.
	a := VecFromAzAlt(10, 0)
	b := VecFromAzAlt(10.5, 0)
	if got := Separation(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected separation 0.5, got %g", got)
	}
}

func TestSeparationZeroVector(t *testing.T) {
	if got := Separation(r3.Vec{}, r3.Vec{X: 1}); !math.IsNaN(got) {
		t.Errorf("expected NaN for zero-length input, got %g", got)
	}
}
