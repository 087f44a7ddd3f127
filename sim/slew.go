package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/telemetry"
)

// SlewSystem moves every mount toward its commanded position at the
// configured axis rates. Commands come from CommandSystem already on
// the near branch, so the axis deltas are plain differences.
type SlewSystem struct {
	filter    ecs.Filter2[Target, Mount]
	collector *telemetry.Collector
	sessions  *telemetry.SessionTracker

	rateAz  float64
	rateAlt float64
}

func NewSlewSystem(w *ecs.World, cfg config.MountConfig, collector *telemetry.Collector, sessions *telemetry.SessionTracker) *SlewSystem {
	return &SlewSystem{
		filter:    *ecs.NewFilter2[Target, Mount](w),
		collector: collector,
		sessions:  sessions,
		rateAz:    cfg.SlewRateAz,
		rateAlt:   cfg.SlewRateAlt,
	}
}

func (s *SlewSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		target, mount := query.Get()

		stepAz := clampMag(mount.CmdAz-mount.Az, s.rateAz*dt)
		stepAlt := clampMag(mount.CmdAlt-mount.Alt, s.rateAlt*dt)

		mount.Az += stepAz
		mount.Alt += stepAlt
		mount.TravelAz += math.Abs(stepAz)

		s.collector.RecordSlew(stepAz, stepAlt)
		s.sessions.RecordTravel(target.ID, math.Abs(stepAz), math.Abs(stepAlt))
	}
}

func clampMag(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
