package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds every tracking session's state at one tick, for
// offline inspection of a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick       int     `json:"tick"`
	SimTimeSec float64 `json:"sim_time_sec"`

	Sessions []SessionState `json:"sessions"`

	Incident *Incident `json:"incident,omitempty"`
}

// SessionState holds one tracking session's complete state.
type SessionState struct {
	TargetID  int     `json:"target_id"`
	TargetAz  float64 `json:"target_az"`
	TargetAlt float64 `json:"target_alt"`
	DriftAz   float64 `json:"drift_az"`
	DriftAlt  float64 `json:"drift_alt"`
	OffsetX   float64 `json:"offset_x"`
	OffsetY   float64 `json:"offset_y"`

	MountAz  float64 `json:"mount_az"`
	MountAlt float64 `json:"mount_alt"`
	CmdAz    float64 `json:"cmd_az"`
	CmdAlt   float64 `json:"cmd_alt"`
	TravelAz float64 `json:"travel_az"`

	ErrDeg     float64 `json:"err_deg"`
	OffsetR    float64 `json:"offset_r_deg"`
	PosAngle   float64 `json:"pos_angle_deg"`
	Degenerate bool    `json:"degenerate"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Incident != nil {
		// Sanitize incident type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Incident.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
