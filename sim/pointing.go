package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
	"github.com/mountlab/gimbal/telemetry"
)

// PointingSystem measures how well each mount is tracking: the
// separation between commanded and actual direction, and where the
// target's image lands on the rotated instrument focal plane.
type PointingSystem struct {
	filter    ecs.Filter3[Target, Mount, Pointing]
	collector *telemetry.Collector
	sessions  *telemetry.SessionTracker

	instr   geom.Frame2D
	samples []telemetry.PointingSample
}

func NewPointingSystem(w *ecs.World, cfg config.MountConfig, collector *telemetry.Collector, sessions *telemetry.SessionTracker) *PointingSystem {
	return &PointingSystem{
		filter:    *ecs.NewFilter3[Target, Mount, Pointing](w),
		collector: collector,
		sessions:  sessions,
		instr:     geom.Frame2D{Ang: cfg.InstrumentRot},
	}
}

func (s *PointingSystem) Update(tick int, dt float64) {
	query := s.filter.Query()
	for query.Next() {
		target, mount, pointing := query.Get()

		actual := geom.VecFromAzAlt(geom.WrapPos(mount.Az), mount.Alt)
		wanted := geom.VecFromAzAlt(geom.WrapPos(mount.CmdAz), mount.CmdAlt)
		errDeg := geom.Separation(actual, wanted)

		// Tracking lag displaces the image in the sky frame. Azimuth
		// error shrinks by cos(alt) on its way to the tangent plane.
		lagX := geom.WrapCtr(mount.CmdAz-mount.Az) * geom.Cosd(mount.Alt)
		lagY := mount.CmdAlt - mount.Alt
		fx, fy := s.instr.ToFrame(target.OffsetX+lagX, target.OffsetY+lagY)

		r, posAngle, degenerate := geom.PolarFromXY(fx, fy)
		pointing.ErrDeg = errDeg
		pointing.OffsetR = r
		pointing.PosAngle = posAngle
		pointing.Degenerate = degenerate

		s.collector.RecordPointing(errDeg, r, degenerate)
		s.sessions.RecordPointing(target.ID, errDeg, degenerate)
		s.samples = append(s.samples, telemetry.PointingSample{
			Tick:        tick,
			SimTimeSec:  float64(tick) * dt,
			TargetID:    target.ID,
			ErrDeg:      errDeg,
			OffsetRDeg:  r,
			PosAngleDeg: posAngle,
			Degenerate:  degenerate,
		})
	}
}

// DrainSamples hands the per-tick samples accumulated since the last
// drain to the caller and resets the buffer.
func (s *PointingSystem) DrainSamples() []telemetry.PointingSample {
	out := s.samples
	s.samples = nil
	return out
}
