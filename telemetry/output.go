package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/mountlab/gimbal/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	windowsFile   *os.File
	samplesFile   *os.File
	perfFile      *os.File
	incidentsFile *os.File

	// Track if headers have been written
	windowsHeaderWritten   bool
	samplesHeaderWritten   bool
	perfHeaderWritten      bool
	incidentsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open windows.csv
	windowsPath := filepath.Join(dir, "windows.csv")
	f, err := os.Create(windowsPath)
	if err != nil {
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowsFile = f

	// Open samples.csv
	samplesPath := filepath.Join(dir, "samples.csv")
	f, err = os.Create(samplesPath)
	if err != nil {
		om.windowsFile.Close()
		return nil, fmt.Errorf("creating samples.csv: %w", err)
	}
	om.samplesFile = f

	// Open perf.csv
	perfPath := filepath.Join(dir, "perf.csv")
	f, err = os.Create(perfPath)
	if err != nil {
		om.windowsFile.Close()
		om.samplesFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	// Open incidents.csv
	incidentsPath := filepath.Join(dir, "incidents.csv")
	f, err = os.Create(incidentsPath)
	if err != nil {
		om.windowsFile.Close()
		om.samplesFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating incidents.csv: %w", err)
	}
	om.incidentsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.windowsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
		om.windowsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
	}

	return nil
}

// WriteSamples writes per-tick tracking records to samples.csv.
func (om *OutputManager) WriteSamples(samples []PointingSample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.samplesHeaderWritten {
		if err := gocsv.Marshal(samples, om.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		om.samplesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, om.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}

	csvRecord := stats.ToCSV(windowEnd)
	records := []PerfStatsCSV{csvRecord}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteIncident writes an incident record to incidents.csv.
func (om *OutputManager) WriteIncident(in Incident) error {
	if om == nil {
		return nil
	}

	records := []Incident{in}

	if !om.incidentsHeaderWritten {
		if err := gocsv.Marshal(records, om.incidentsFile); err != nil {
			return fmt.Errorf("writing incident: %w", err)
		}
		om.incidentsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.incidentsFile); err != nil {
			return fmt.Errorf("writing incident: %w", err)
		}
	}

	return nil
}

// WriteSessions writes the per-target run summaries to sessions.csv.
// Called once at the end of a run.
func (om *OutputManager) WriteSessions(sessions []SessionStats) error {
	if om == nil || len(sessions) == 0 {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "sessions.csv"))
	if err != nil {
		return fmt.Errorf("creating sessions.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(sessions, f); err != nil {
		return fmt.Errorf("writing sessions: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.windowsFile != nil {
		if err := om.windowsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.samplesFile != nil {
		if err := om.samplesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.incidentsFile != nil {
		if err := om.incidentsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
