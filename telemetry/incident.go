package telemetry

import (
	"fmt"
	"log/slog"
)

// IncidentType identifies the kind of tracking incident.
type IncidentType string

const (
	IncidentErrSpike  IncidentType = "err_spike"
	IncidentLostTrack IncidentType = "lost_track"
	IncidentSeamCross IncidentType = "seam_crossing"
	IncidentLimitRide IncidentType = "limit_ride"
	IncidentSettled   IncidentType = "settled"
)

const (
	// Spikes below this RMS are measurement noise, not incidents
	spikeFloorDeg = 0.01

	// A window whose worst error exceeds this has lost the target
	lostTrackErrDeg = 1.0

	// RMS below this counts as calm when waiting for a spike to settle
	settledRMSDeg = 0.005

	// Calm windows in a row before declaring the spike settled
	settledWindowRun = 3
)

// Incident is an automatically detected moment worth reviewing in a run.
type Incident struct {
	Type        IncidentType
	Tick        int
	Description string
}

// LogIncident logs the incident using slog.
func (in Incident) LogIncident() {
	slog.Info("incident",
		"type", string(in.Type),
		"tick", in.Tick,
		"description", in.Description,
	)
}

// IncidentDetector watches window stats for tracking incidents.
type IncidentDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	inSpike        bool // a spike has fired and not yet settled
	settledWindows int  // consecutive calm windows since the spike
}

// NewIncidentDetector creates a detector with the given history size.
func NewIncidentDetector(historySize int) *IncidentDetector {
	if historySize < 4 {
		historySize = 4 // minimum for a usable rolling baseline
	}
	return &IncidentDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered incidents.
func (d *IncidentDetector) Check(stats WindowStats) []Incident {
	var incidents []Incident

	if d.historyFull || d.historyIdx > 0 {
		if in := d.checkErrSpike(stats); in != nil {
			incidents = append(incidents, *in)
		}
		if in := d.checkLostTrack(stats); in != nil {
			incidents = append(incidents, *in)
		}
		if in := d.checkSeamCrossing(stats); in != nil {
			incidents = append(incidents, *in)
		}
		if in := d.checkLimitRide(stats); in != nil {
			incidents = append(incidents, *in)
		}
		if in := d.checkSettled(stats); in != nil {
			incidents = append(incidents, *in)
		}
	}

	d.addToHistory(stats)
	return incidents
}

func (d *IncidentDetector) addToHistory(stats WindowStats) {
	d.history[d.historyIdx] = stats
	d.historyIdx = (d.historyIdx + 1) % d.historySize
	if d.historyIdx == 0 {
		d.historyFull = true
	}
}

func (d *IncidentDetector) getHistory() []WindowStats {
	if d.historyFull {
		return d.history
	}
	return d.history[:d.historyIdx]
}

func (d *IncidentDetector) checkErrSpike(stats WindowStats) *Incident {
	history := d.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.ErrRMSDeg
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.ErrRMSDeg > avg*2.0 && stats.ErrRMSDeg > spikeFloorDeg {
		d.inSpike = true
		d.settledWindows = 0
		return &Incident{
			Type:        IncidentErrSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("RMS error %.4f deg is %.1fx the rolling average (%.4f)", stats.ErrRMSDeg, stats.ErrRMSDeg/avg, avg),
		}
	}

	return nil
}

func (d *IncidentDetector) checkLostTrack(stats WindowStats) *Incident {
	if stats.ErrMaxDeg <= lostTrackErrDeg {
		return nil
	}

	d.inSpike = true
	d.settledWindows = 0
	return &Incident{
		Type:        IncidentLostTrack,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Worst error %.2f deg, mount far off target", stats.ErrMaxDeg),
	}
}

func (d *IncidentDetector) checkSeamCrossing(stats WindowStats) *Incident {
	if stats.WrapSaves == 0 {
		return nil
	}

	return &Incident{
		Type:        IncidentSeamCross,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d commands rewrapped across the azimuth seam", stats.WrapSaves),
	}
}

func (d *IncidentDetector) checkLimitRide(stats WindowStats) *Incident {
	ticks := stats.WindowEndTick - stats.WindowStartTick
	samples := ticks * stats.TargetCount
	if samples == 0 {
		return nil
	}

	// Riding the limit: at least half the window's commands clamped
	if stats.AltClamps*2 >= samples {
		return &Incident{
			Type:        IncidentLimitRide,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d commands clamped at the altitude limits", stats.AltClamps, samples),
		}
	}

	return nil
}

func (d *IncidentDetector) checkSettled(stats WindowStats) *Incident {
	if !d.inSpike {
		return nil
	}

	if stats.ErrRMSDeg < settledRMSDeg {
		d.settledWindows++
	} else {
		d.settledWindows = 0
	}

	if d.settledWindows == settledWindowRun {
		d.inSpike = false
		d.settledWindows = 0
		return &Incident{
			Type:        IncidentSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Tracking calm for %d windows after a spike", settledWindowRun),
		}
	}

	return nil
}
