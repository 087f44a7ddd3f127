package telemetry

import (
	"testing"
)

func hasIncident(incidents []Incident, want IncidentType) bool {
	for _, in := range incidents {
		if in.Type == want {
			return true
		}
	}
	return false
}

func TestIncidentDetector_ErrSpike(t *testing.T) {
	d := NewIncidentDetector(10)

	// Calm baseline
	for i := 0; i < 5; i++ {
		d.Check(WindowStats{WindowEndTick: i * 20, ErrRMSDeg: 0.002})
	}

	// 10x the rolling average, above the noise floor
	incidents := d.Check(WindowStats{WindowEndTick: 120, ErrRMSDeg: 0.02})
	if !hasIncident(incidents, IncidentErrSpike) {
		t.Error("expected err_spike incident")
	}
}

func TestIncidentDetector_SpikeBelowFloorIgnored(t *testing.T) {
	d := NewIncidentDetector(10)

	for i := 0; i < 5; i++ {
		d.Check(WindowStats{WindowEndTick: i * 20, ErrRMSDeg: 0.0001})
	}

	// 10x average but still tiny
	incidents := d.Check(WindowStats{WindowEndTick: 120, ErrRMSDeg: 0.001})
	if hasIncident(incidents, IncidentErrSpike) {
		t.Error("expected no err_spike below the noise floor")
	}
}

func TestIncidentDetector_LostTrack(t *testing.T) {
	d := NewIncidentDetector(10)
	d.Check(WindowStats{WindowEndTick: 20})

	incidents := d.Check(WindowStats{WindowEndTick: 40, ErrMaxDeg: 2.5})
	if !hasIncident(incidents, IncidentLostTrack) {
		t.Error("expected lost_track incident")
	}
}

func TestIncidentDetector_SeamCrossing(t *testing.T) {
	d := NewIncidentDetector(10)
	d.Check(WindowStats{WindowEndTick: 20})

	incidents := d.Check(WindowStats{WindowEndTick: 40, WrapSaves: 2})
	if !hasIncident(incidents, IncidentSeamCross) {
		t.Error("expected seam_crossing incident")
	}
}

func TestIncidentDetector_LimitRide(t *testing.T) {
	d := NewIncidentDetector(10)
	d.Check(WindowStats{WindowStartTick: 0, WindowEndTick: 20, TargetCount: 4})

	incidents := d.Check(WindowStats{
		WindowStartTick: 20,
		WindowEndTick:   40,
		TargetCount:     4,
		AltClamps:       50,
	})
	if !hasIncident(incidents, IncidentLimitRide) {
		t.Error("expected limit_ride incident")
	}
}

func TestIncidentDetector_SettledAfterSpike(t *testing.T) {
	d := NewIncidentDetector(10)

	for i := 0; i < 4; i++ {
		d.Check(WindowStats{WindowEndTick: i * 20, ErrRMSDeg: 0.002})
	}
	d.Check(WindowStats{WindowEndTick: 80, ErrRMSDeg: 0.05}) // spike

	var settled bool
	for i := 0; i < 3; i++ {
		incidents := d.Check(WindowStats{WindowEndTick: 100 + i*20, ErrRMSDeg: 0.001})
		if hasIncident(incidents, IncidentSettled) {
			settled = true
		}
	}
	if !settled {
		t.Error("expected settled incident after three calm windows")
	}
}
