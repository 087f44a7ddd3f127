package main

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
)

// badModelCost is returned for candidate vectors that cannot form a
// rotation, steering the optimizer back toward valid models.
const badModelCost = 1e6

// Observation pairs a commanded sky direction with where the mount
// actually pointed.
type Observation struct {
	TrueAz, TrueAlt float64
	ObsAz, ObsAlt   float64
}

// GenerateObservations simulates a pointing run on a mount with the
// configured misalignment and returns noisy az/alt pairs.
func GenerateObservations(cfg *config.Config, n int, noiseSigma float64, seed int64) ([]Observation, error) {
	axis := cfg.Mount.MisalignAxis
	model, err := geom.RotationMatrix(r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}, cfg.Mount.MisalignAngle)
	if err != nil {
		return nil, fmt.Errorf("building true mount model: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	obs := make([]Observation, n)
	for i := range obs {
		az := rng.Float64() * 360
		alt := cfg.Targets.MinAlt + rng.Float64()*(cfg.Targets.MaxAlt-cfg.Targets.MinAlt)

		v := model.MulVec(geom.VecFromAzAlt(az, alt))
		obsAz, obsAlt, _ := geom.AzAltFromVec(v)

		obs[i] = Observation{
			TrueAz:  az,
			TrueAlt: alt,
			ObsAz:   geom.WrapPos(obsAz + rng.NormFloat64()*noiseSigma),
			ObsAlt:  obsAlt + rng.NormFloat64()*noiseSigma,
		}
	}
	return obs, nil
}

// ResidualRMS scores a candidate mount model against the observations
// as the RMS angular separation between predicted and observed
// pointing directions.
func ResidualRMS(obs []Observation, axis r3.Vec, angleDeg float64) float64 {
	model, err := geom.RotationMatrix(axis, angleDeg)
	if err != nil {
		return badModelCost
	}

	var sum float64
	for _, o := range obs {
		pred := model.MulVec(geom.VecFromAzAlt(o.TrueAz, o.TrueAlt))
		sep := geom.Separation(pred, geom.VecFromAzAlt(o.ObsAz, o.ObsAlt))
		sum += sep * sep
	}
	return math.Sqrt(sum / float64(len(obs)))
}

// Canonicalize maps the redundant (axis, angle) pair onto a unit axis
// with a non-negative angle; (k, a) and (-k, -a) are the same rotation.
func Canonicalize(axis r3.Vec, angleDeg float64) (r3.Vec, float64) {
	if angleDeg < 0 {
		axis = r3.Scale(-1, axis)
		angleDeg = -angleDeg
	}
	if n := r3.Norm(axis); n >= geom.Epsilon {
		axis = r3.Scale(1/n, axis)
	}
	return axis, angleDeg
}
