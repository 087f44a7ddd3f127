package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Sim.DT <= 0 {
		t.Errorf("expected positive sim.dt, got %g", cfg.Sim.DT)
	}
	if cfg.Targets.Count < 1 {
		t.Errorf("expected at least one target, got %d", cfg.Targets.Count)
	}
	if len(cfg.Mount.MisalignAxis) != 3 {
		t.Errorf("expected 3 misalign axis components, got %d", len(cfg.Mount.MisalignAxis))
	}
	if cfg.Derived.TotalTicks <= 0 {
		t.Errorf("expected positive derived tick count, got %d", cfg.Derived.TotalTicks)
	}
	if cfg.Derived.WindowTicks < 1 {
		t.Errorf("expected window ticks >= 1, got %d", cfg.Derived.WindowTicks)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	overlay := []byte("sim:\n  dt: 0.1\nmount:\n  slew_rate_az: 9.5\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Sim.DT != 0.1 {
		t.Errorf("expected overridden dt 0.1, got %g", cfg.Sim.DT)
	}
	if cfg.Mount.SlewRateAz != 9.5 {
		t.Errorf("expected overridden slew rate 9.5, got %g", cfg.Mount.SlewRateAz)
	}
	// Fields absent from the overlay keep their defaults.
	if cfg.Screen.Width != 1280 {
		t.Errorf("expected default screen width 1280, got %d", cfg.Screen.Width)
	}
	if cfg.Targets.Count != 8 {
		t.Errorf("expected default target count 8, got %d", cfg.Targets.Count)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name, yaml string
	}{
		{"zero dt", "sim:\n  dt: 0\n"},
		{"negative duration", "sim:\n  duration_sec: -5\n"},
		{"inverted alt limits", "mount:\n  min_alt: 80\n  max_alt: 10\n"},
		{"short axis", "mount:\n  misalign_axis: [1, 0]\n"},
	}

	for _, tc := range testCases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
			t.Fatalf("%s: writing config: %v", tc.name, err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Mount.MisalignAngle = 0.42

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reread, err := Load(path)
	if err != nil {
		t.Fatalf("rereading config: %v", err)
	}
	if reread.Mount.MisalignAngle != 0.42 {
		t.Errorf("expected misalign angle 0.42 after round trip, got %g", reread.Mount.MisalignAngle)
	}
}
