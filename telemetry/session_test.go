package telemetry

import (
	"math"
	"testing"
)

func TestSessionTrackerAccumulates(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Register(0)
	tracker.Register(1)

	tracker.RecordPointing(0, 0.1, false)
	tracker.RecordPointing(0, 0.3, true)
	tracker.RecordTravel(0, 2.5, 0.5)
	tracker.RecordTravel(0, 1.5, 0.25)
	tracker.RecordWrapSave(0)
	tracker.RecordAltClamp(0)
	tracker.RecordAltClamp(0)

	s := tracker.Get(0)
	if s == nil {
		t.Fatal("Get(0) returned nil")
	}
	if s.Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", s.Ticks)
	}
	if s.ErrMaxDeg != 0.3 {
		t.Errorf("ErrMaxDeg = %v, want 0.3", s.ErrMaxDeg)
	}
	if s.DegenerateFrames != 1 {
		t.Errorf("DegenerateFrames = %d, want 1", s.DegenerateFrames)
	}
	if s.TravelAzDeg != 4.0 {
		t.Errorf("TravelAzDeg = %v, want 4.0", s.TravelAzDeg)
	}
	if s.TravelAltDeg != 0.75 {
		t.Errorf("TravelAltDeg = %v, want 0.75", s.TravelAltDeg)
	}
	if s.WrapSaves != 1 || s.AltClamps != 2 {
		t.Errorf("WrapSaves = %d, AltClamps = %d, want 1 and 2", s.WrapSaves, s.AltClamps)
	}

	// Untouched target stays zeroed
	if other := tracker.Get(1); other.Ticks != 0 {
		t.Errorf("target 1 Ticks = %d, want 0", other.Ticks)
	}
}

func TestSessionTrackerIgnoresUnknownTarget(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Register(0)

	// Must not panic or create phantom entries
	tracker.RecordPointing(7, 1.0, false)
	tracker.RecordTravel(7, 1.0, 1.0)
	tracker.RecordWrapSave(7)

	if tracker.Count() != 1 {
		t.Errorf("Count = %d, want 1", tracker.Count())
	}
	if tracker.Get(7) != nil {
		t.Error("Get(7) should return nil")
	}
}

func TestSessionTrackerSummaries(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Register(2)
	tracker.Register(0)
	tracker.Register(1)

	tracker.RecordPointing(1, 0.2, false)
	tracker.RecordPointing(1, 0.4, false)

	summaries := tracker.Summaries()
	if len(summaries) != 3 {
		t.Fatalf("len(summaries) = %d, want 3", len(summaries))
	}
	for i, s := range summaries {
		if s.TargetID != i {
			t.Errorf("summaries[%d].TargetID = %d, want %d", i, s.TargetID, i)
		}
	}
	if math.Abs(summaries[1].ErrMeanDeg-0.3) > 1e-12 {
		t.Errorf("ErrMeanDeg = %v, want 0.3", summaries[1].ErrMeanDeg)
	}
	if summaries[0].ErrMeanDeg != 0 {
		t.Errorf("empty session ErrMeanDeg = %v, want 0", summaries[0].ErrMeanDeg)
	}
}
