package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
)

// DriftSystem advances every target along its drift rates plus seeded
// jitter. Azimuth stays in [0, 360); altitude bounces off the
// configured band so targets never leave the observable sky.
type DriftSystem struct {
	filter ecs.Filter1[Target]
	rng    *rand.Rand

	jitterSigma float64
	minAlt      float64
	maxAlt      float64
}

func NewDriftSystem(w *ecs.World, rng *rand.Rand, cfg config.TargetsConfig) *DriftSystem {
	return &DriftSystem{
		filter:      *ecs.NewFilter1[Target](w),
		rng:         rng,
		jitterSigma: cfg.JitterSigma,
		minAlt:      cfg.MinAlt,
		maxAlt:      cfg.MaxAlt,
	}
}

func (s *DriftSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		target := query.Get()

		az := target.Az + (target.DriftAz+s.rng.NormFloat64()*s.jitterSigma)*dt
		target.Az = geom.WrapPos(az)

		alt := target.Alt + (target.DriftAlt+s.rng.NormFloat64()*s.jitterSigma)*dt
		if alt > s.maxAlt {
			alt = s.maxAlt
			target.DriftAlt = -target.DriftAlt
		} else if alt < s.minAlt {
			alt = s.minAlt
			target.DriftAlt = -target.DriftAlt
		}
		target.Alt = alt
	}
}
