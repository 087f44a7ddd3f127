// Package main runs the tracking simulation headless and writes
// windowed telemetry to CSV.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/sim"
	"github.com/mountlab/gimbal/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	duration := flag.Float64("duration", 0, "Simulated seconds to run (0 = use config)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	logSamples := flag.Bool("log-samples", false, "Write per-tick pointing samples to samples.csv")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for state snapshots on incidents (empty = disabled)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// CLI overrides
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
		cfg.Derived.WindowTicks = int(*statsWindow / cfg.Sim.DT)
	}
	if *duration > 0 {
		cfg.Sim.DurationSec = *duration
		cfg.Derived.TotalTicks = int(*duration / cfg.Sim.DT)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Sim.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	world, err := sim.NewWorld(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	detector := telemetry.NewIncidentDetector(10)

	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	slog.Info("starting tracking run",
		"seed", rngSeed,
		"targets", cfg.Targets.Count,
		"duration_sec", cfg.Sim.DurationSec,
		"dt", cfg.Sim.DT,
		"stats_window", cfg.Telemetry.StatsWindow,
		"output_dir", om.Dir(),
	)

	for world.Tick() < cfg.Derived.TotalTicks {
		world.Step()

		// Drain every tick so the buffer never grows unbounded
		samples := world.DrainSamples()
		if *logSamples {
			if err := om.WriteSamples(samples); err != nil {
				slog.Warn("failed to write samples", "error", err)
			}
		}

		for _, stats := range world.DrainWindows() {
			stats.LogStats()
			if err := om.WriteWindow(stats); err != nil {
				slog.Warn("failed to write window stats", "error", err)
			}
			if err := om.WritePerf(world.Perf().Stats(), stats.WindowEndTick); err != nil {
				slog.Warn("failed to write perf stats", "error", err)
			}

			for _, incident := range detector.Check(stats) {
				incident.LogIncident()
				if err := om.WriteIncident(incident); err != nil {
					slog.Warn("failed to write incident", "error", err)
				}

				// Save a state snapshot on every incident
				if *snapshotDir != "" {
					path, err := telemetry.SaveSnapshot(world.BuildSnapshot(&incident), *snapshotDir)
					if err != nil {
						slog.Warn("failed to save snapshot", "error", err)
					} else {
						slog.Info("snapshot saved", "path", path)
					}
				}
			}
		}
	}

	if err := om.WriteSessions(world.SessionSummaries()); err != nil {
		slog.Warn("failed to write session summaries", "error", err)
	}

	slog.Info("run complete",
		"ticks", world.Tick(),
		"sim_time_sec", world.SimTime(),
	)
}
