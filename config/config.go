// Package config provides configuration loading and access for the tracking harness.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tracking harness parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Targets   TargetsConfig   `yaml:"targets"`
	Mount     MountConfig     `yaml:"mount"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds the step loop parameters.
type SimConfig struct {
	DT          float64 `yaml:"dt"`           // Seconds per tick
	DurationSec float64 `yaml:"duration_sec"` // Headless run length
	Seed        int64   `yaml:"seed"`         // 0 = derive from wall clock
}

// TargetsConfig holds sky target generation parameters.
type TargetsConfig struct {
	Count           int     `yaml:"count"`
	MinAlt          float64 `yaml:"min_alt"`           // Spawn altitude floor, degrees
	MaxAlt          float64 `yaml:"max_alt"`           // Spawn altitude ceiling, degrees
	DriftAzMax      float64 `yaml:"drift_az_max"`      // Max azimuth drift rate, deg/sec
	DriftAltMax     float64 `yaml:"drift_alt_max"`     // Max altitude drift rate, deg/sec
	JitterSigma     float64 `yaml:"jitter_sigma"`      // Per-tick drift noise, degrees
	OffsetRadiusMax float64 `yaml:"offset_radius_max"` // Max focal-plane offset, degrees
}

// MountConfig holds the mount model parameters.
type MountConfig struct {
	SlewRateAz    float64   `yaml:"slew_rate_az"`   // deg/sec
	SlewRateAlt   float64   `yaml:"slew_rate_alt"`  // deg/sec
	MinAlt        float64   `yaml:"min_alt"`        // Mechanical altitude floor, degrees
	MaxAlt        float64   `yaml:"max_alt"`        // Mechanical altitude ceiling, degrees
	MisalignAxis  []float64 `yaml:"misalign_axis"`  // Rotation axis of the misalignment model
	MisalignAngle float64   `yaml:"misalign_angle"` // Misalignment rotation, degrees
	RefractionK   float64   `yaml:"refraction_k"`   // Alt correction = k * tand(zenith distance)
	InstrumentRot float64   `yaml:"instrument_rot"` // Focal plane rotation vs sky, degrees
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	OutputDir   string  `yaml:"output_dir"`   // Empty = no CSV output
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TotalTicks  int // Sim.DurationSec / Sim.DT
	WindowTicks int // Telemetry.StatsWindow / Sim.DT, at least 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects parameter combinations the harness cannot run with.
func (c *Config) validate() error {
	if c.Sim.DT <= 0 {
		return fmt.Errorf("sim.dt must be positive, got %g", c.Sim.DT)
	}
	if c.Sim.DurationSec <= 0 {
		return fmt.Errorf("sim.duration_sec must be positive, got %g", c.Sim.DurationSec)
	}
	if c.Targets.Count < 1 {
		return fmt.Errorf("targets.count must be at least 1, got %d", c.Targets.Count)
	}
	if c.Targets.MinAlt >= c.Targets.MaxAlt {
		return fmt.Errorf("targets.min_alt %g must be below targets.max_alt %g", c.Targets.MinAlt, c.Targets.MaxAlt)
	}
	if c.Mount.MinAlt >= c.Mount.MaxAlt {
		return fmt.Errorf("mount.min_alt %g must be below mount.max_alt %g", c.Mount.MinAlt, c.Mount.MaxAlt)
	}
	if n := len(c.Mount.MisalignAxis); n != 3 {
		return fmt.Errorf("mount.misalign_axis must have 3 components, got %d", n)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %g", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TotalTicks = int(c.Sim.DurationSec / c.Sim.DT)
	c.Derived.WindowTicks = int(c.Telemetry.StatsWindow / c.Sim.DT)
	if c.Derived.WindowTicks < 1 {
		c.Derived.WindowTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
