package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
	"github.com/mountlab/gimbal/telemetry"
)

// CommandSystem turns each target's true direction into mount axis
// commands. It applies the mount-model misalignment rotation, a
// refraction lift, the altitude travel limits, and picks the azimuth
// branch nearest the mount's current axis position.
type CommandSystem struct {
	filter    ecs.Filter2[Target, Mount]
	collector *telemetry.Collector
	sessions  *telemetry.SessionTracker

	misalign    *r3.Mat
	refractionK float64
	minAlt      float64
	maxAlt      float64
}

func NewCommandSystem(w *ecs.World, misalign *r3.Mat, cfg config.MountConfig, collector *telemetry.Collector, sessions *telemetry.SessionTracker) *CommandSystem {
	return &CommandSystem{
		filter:      *ecs.NewFilter2[Target, Mount](w),
		collector:   collector,
		sessions:    sessions,
		misalign:    misalign,
		refractionK: cfg.RefractionK,
		minAlt:      cfg.MinAlt,
		maxAlt:      cfg.MaxAlt,
	}
}

func (s *CommandSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		target, mount := query.Get()

		v := geom.VecFromAzAlt(target.Az, target.Alt)
		appAz, appAlt, _ := geom.AzAltFromVec(s.misalign.MulVec(v))

		// Refraction lifts the apparent image, so the mount aims high
		// by k*tan(zenith distance).
		corr := s.refractionK * geom.Tand(90-appAlt)
		s.collector.RecordRefraction(corr)

		cmdAlt := appAlt + corr
		if cmdAlt > s.maxAlt {
			cmdAlt = s.maxAlt
			s.collector.RecordAltClamp()
			s.sessions.RecordAltClamp(target.ID)
		} else if cmdAlt < s.minAlt {
			cmdAlt = s.minAlt
			s.collector.RecordAltClamp()
			s.sessions.RecordAltClamp(target.ID)
		}

		// A naive 0..360 difference crossing the seam would command a
		// near-full revolution.
		naive := geom.WrapPos(appAz) - geom.WrapPos(mount.Az)
		if math.Abs(naive) > 180 {
			s.collector.RecordWrapSave()
			s.sessions.RecordWrapSave(target.ID)
		}

		mount.CmdAz = geom.WrapNear(appAz, mount.Az)
		mount.CmdAlt = cmdAlt
	}
}
