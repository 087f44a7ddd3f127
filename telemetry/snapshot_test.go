package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	dir := t.TempDir()

	snap := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		Tick:       1234,
		SimTimeSec: 61.7,
		Sessions: []SessionState{
			{
				TargetID:  0,
				TargetAz:  120.5,
				TargetAlt: 45.2,
				DriftAz:   0.8,
				DriftAlt:  -0.1,
				MountAz:   120.4,
				MountAlt:  45.1,
				CmdAz:     120.5,
				CmdAlt:    45.2,
				TravelAz:  310.6,
				ErrDeg:    0.12,
				OffsetR:   0.12,
				PosAngle:  -35.0,
			},
			{
				TargetID:   1,
				TargetAz:   359.9,
				TargetAlt:  12.0,
				MountAz:    360.1,
				MountAlt:   12.0,
				CmdAz:      359.9,
				Degenerate: true,
			},
		},
		Incident: &Incident{
			Type: IncidentLostTrack,
			Tick: 1234,
		},
	}

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != snap.Version {
		t.Errorf("Version = %d, want %d", loaded.Version, snap.Version)
	}
	if loaded.RNGSeed != snap.RNGSeed {
		t.Errorf("RNGSeed = %d, want %d", loaded.RNGSeed, snap.RNGSeed)
	}
	if loaded.Tick != snap.Tick {
		t.Errorf("Tick = %d, want %d", loaded.Tick, snap.Tick)
	}
	if len(loaded.Sessions) != len(snap.Sessions) {
		t.Fatalf("Sessions count = %d, want %d", len(loaded.Sessions), len(snap.Sessions))
	}
	if loaded.Sessions[0].TravelAz != snap.Sessions[0].TravelAz {
		t.Errorf("TravelAz = %v, want %v", loaded.Sessions[0].TravelAz, snap.Sessions[0].TravelAz)
	}
	if !loaded.Sessions[1].Degenerate {
		t.Error("Sessions[1].Degenerate not preserved")
	}
	if loaded.Incident == nil || loaded.Incident.Type != IncidentLostTrack {
		t.Errorf("Incident not preserved: %+v", loaded.Incident)
	}
}

func TestSnapshotFilename(t *testing.T) {
	dir := t.TempDir()

	withIncident := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Incident: &Incident{
			Type: IncidentSeamCross,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(withIncident, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	want := filepath.Join(dir, "snapshot_5000_seam_crossing.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	plain := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
	}
	path, err = SaveSnapshot(plain, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	want = filepath.Join(dir, "snapshot_3000.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}
