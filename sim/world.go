package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
	"github.com/mountlab/gimbal/telemetry"
)

// World holds the complete simulation state: one entity per tracking
// session, the systems that advance it, and the telemetry collectors.
type World struct {
	world *ecs.World
	rng   *rand.Rand

	mapper *ecs.Map3[Target, Mount, Pointing]
	filter ecs.Filter3[Target, Mount, Pointing]

	drift    *DriftSystem
	command  *CommandSystem
	slew     *SlewSystem
	pointing *PointingSystem

	collector *telemetry.Collector
	sessions  *telemetry.SessionTracker
	perf      *telemetry.PerfCollector
	windows   []telemetry.WindowStats

	seed         int64
	tick         int
	dt           float64
	targetCount  int
	targetsCfg   config.TargetsConfig
	misalignAxis r3.Vec
}

// Session is a copy of one tracking session's components, in spawn
// order, for rendering and inspection.
type Session struct {
	Target   Target
	Mount    Mount
	Pointing Pointing
}

// NewWorld builds a simulation from the config, spawning one session
// per configured target. The seed fixes every random draw, so equal
// seeds replay equal runs.
func NewWorld(cfg *config.Config, seed int64) (*World, error) {
	axis := cfg.Mount.MisalignAxis
	misalign, err := geom.RotationMatrix(r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}, cfg.Mount.MisalignAngle)
	if err != nil {
		return nil, fmt.Errorf("building misalignment model: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))
	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Sim.DT)
	sessions := telemetry.NewSessionTracker()

	w := &World{
		world:        world,
		rng:          rng,
		mapper:       ecs.NewMap3[Target, Mount, Pointing](world),
		filter:       *ecs.NewFilter3[Target, Mount, Pointing](world),
		collector:    collector,
		sessions:     sessions,
		perf:         telemetry.NewPerfCollector(cfg.Derived.WindowTicks),
		seed:         seed,
		dt:           cfg.Sim.DT,
		targetCount:  cfg.Targets.Count,
		targetsCfg:   cfg.Targets,
		misalignAxis: r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]},
	}

	w.drift = NewDriftSystem(world, rng, cfg.Targets)
	w.command = NewCommandSystem(world, misalign, cfg.Mount, collector, sessions)
	w.slew = NewSlewSystem(world, cfg.Mount, collector, sessions)
	w.pointing = NewPointingSystem(world, cfg.Mount, collector, sessions)

	w.spawnSessions(cfg.Targets)
	return w, nil
}

// spawnSessions creates the initial tracking sessions. The first
// target sits exactly on boresight so zero-offset frames show up in
// the telemetry; the rest get a random focal-plane offset.
func (w *World) spawnSessions(cfg config.TargetsConfig) {
	for i := 0; i < cfg.Count; i++ {
		target := Target{
			ID:       i,
			Az:       w.rng.Float64() * 360,
			Alt:      cfg.MinAlt + w.rng.Float64()*(cfg.MaxAlt-cfg.MinAlt),
			DriftAz:  (2*w.rng.Float64() - 1) * cfg.DriftAzMax,
			DriftAlt: (2*w.rng.Float64() - 1) * cfg.DriftAltMax,
		}
		if i > 0 {
			radius := cfg.OffsetRadiusMax * w.rng.Float64()
			target.OffsetX, target.OffsetY = geom.XYFromPolar(radius, w.rng.Float64()*360)
		}

		mount := Mount{
			Az:     target.Az,
			Alt:    target.Alt,
			CmdAz:  target.Az,
			CmdAlt: target.Alt,
		}

		w.mapper.NewEntity(&target, &mount, &Pointing{})
		w.sessions.Register(i)
	}
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.perf.StartTick()

	w.perf.StartPhase(telemetry.PhaseDrift)
	w.drift.Update(w.dt)

	w.perf.StartPhase(telemetry.PhaseCommand)
	w.command.Update()

	w.perf.StartPhase(telemetry.PhaseSlew)
	w.slew.Update(w.dt)

	w.perf.StartPhase(telemetry.PhasePointing)
	w.pointing.Update(w.tick, w.dt)

	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.tick++
	if w.collector.ShouldFlush(w.tick) {
		w.windows = append(w.windows, w.collector.Flush(w.tick, w.targetCount))
	}

	w.perf.EndTick()
}

// DrainWindows hands out the window stats completed since the last
// drain and resets the buffer.
func (w *World) DrainWindows() []telemetry.WindowStats {
	out := w.windows
	w.windows = nil
	return out
}

// DrainSamples hands out the per-tick pointing samples accumulated
// since the last drain.
func (w *World) DrainSamples() []telemetry.PointingSample {
	return w.pointing.DrainSamples()
}

// Scramble sends every target to a fresh random direction, forcing
// the mounts into full slews.
func (w *World) Scramble() {
	cfg := w.targetsCfg
	query := w.filter.Query()
	for query.Next() {
		target, _, _ := query.Get()
		target.Az = w.rng.Float64() * 360
		target.Alt = cfg.MinAlt + w.rng.Float64()*(cfg.MaxAlt-cfg.MinAlt)
	}
}

// SetJitterSigma changes the drift jitter applied from the next step
// on. Changing it mid-run diverges from the seeded replay.
func (w *World) SetJitterSigma(sigma float64) {
	w.drift.jitterSigma = sigma
}

// SetSlewRates changes the mount axis rate limits, in degrees per
// second, from the next step on.
func (w *World) SetSlewRates(azRate, altRate float64) {
	w.slew.rateAz = azRate
	w.slew.rateAlt = altRate
}

// SetMisalignAngle rebuilds the misalignment model about the
// configured axis with a new rotation angle.
func (w *World) SetMisalignAngle(angleDeg float64) error {
	m, err := geom.RotationMatrix(w.misalignAxis, angleDeg)
	if err != nil {
		return fmt.Errorf("rebuilding misalignment model: %w", err)
	}
	w.command.misalign = m
	return nil
}

// Snapshot copies every session's components in spawn order.
func (w *World) Snapshot() []Session {
	out := make([]Session, 0, w.targetCount)
	query := w.filter.Query()
	for query.Next() {
		target, mount, pointing := query.Get()
		out = append(out, Session{Target: *target, Mount: *mount, Pointing: *pointing})
	}
	return out
}

// SessionSummaries returns per-target run statistics, sorted by target.
func (w *World) SessionSummaries() []telemetry.SessionStats {
	return w.sessions.Summaries()
}

// BuildSnapshot captures the full tracking state for offline
// inspection, tagged with the incident that triggered it (may be nil).
func (w *World) BuildSnapshot(incident *telemetry.Incident) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    w.seed,
		Tick:       w.tick,
		SimTimeSec: w.SimTime(),
		Incident:   incident,
	}
	for _, s := range w.Snapshot() {
		snap.Sessions = append(snap.Sessions, telemetry.SessionState{
			TargetID:   s.Target.ID,
			TargetAz:   s.Target.Az,
			TargetAlt:  s.Target.Alt,
			DriftAz:    s.Target.DriftAz,
			DriftAlt:   s.Target.DriftAlt,
			OffsetX:    s.Target.OffsetX,
			OffsetY:    s.Target.OffsetY,
			MountAz:    s.Mount.Az,
			MountAlt:   s.Mount.Alt,
			CmdAz:      s.Mount.CmdAz,
			CmdAlt:     s.Mount.CmdAlt,
			TravelAz:   s.Mount.TravelAz,
			ErrDeg:     s.Pointing.ErrDeg,
			OffsetR:    s.Pointing.OffsetR,
			PosAngle:   s.Pointing.PosAngle,
			Degenerate: s.Pointing.Degenerate,
		})
	}
	return snap
}

// Tick reports the number of completed steps.
func (w *World) Tick() int { return w.tick }

// DT reports the simulation time step in seconds.
func (w *World) DT() float64 { return w.dt }

// SimTime reports the elapsed simulated time in seconds.
func (w *World) SimTime() float64 { return float64(w.tick) * w.dt }

// Perf exposes the per-tick timing collector.
func (w *World) Perf() *telemetry.PerfCollector { return w.perf }
