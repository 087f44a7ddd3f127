// Package telemetry provides windowed pointing statistics and CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated tracking statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Targets tracked at window end
	TargetCount int `csv:"targets"`

	// Pointing error distribution over all per-tick target samples
	ErrMeanDeg float64 `csv:"err_mean_deg"`
	ErrP50Deg  float64 `csv:"err_p50_deg"`
	ErrP90Deg  float64 `csv:"err_p90_deg"`
	ErrMaxDeg  float64 `csv:"err_max_deg"`
	ErrRMSDeg  float64 `csv:"err_rms_deg"`

	// Focal plane offsets
	OffsetMeanDeg    float64 `csv:"offset_mean_deg"`
	DegenerateFrames int     `csv:"degenerate_frames"` // Samples with no resolvable offset direction

	// Mount motion during window
	SlewAzDeg  float64 `csv:"slew_az_deg"`  // Accumulated azimuth travel
	SlewAltDeg float64 `csv:"slew_alt_deg"` // Accumulated altitude travel
	WrapSaves  int     `csv:"wrap_saves"`   // Commands rewrapped to avoid a long-way slew
	AltClamps  int     `csv:"alt_clamps"`   // Commands limited by the mechanical altitude range

	// Mean refraction correction applied
	RefractionMeanDeg float64 `csv:"refraction_mean_deg"`
}

// ComputeErrorStats calculates the pointing error distribution for a window.
// Returns zeros for an empty sample set.
func ComputeErrorStats(values []float64) (mean, p50, p90, max, rms float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	max = sorted[n-1]
	rms = math.Sqrt(floats.Dot(sorted, sorted) / float64(n))

	return mean, p50, p90, max, rms
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("targets", s.TargetCount),
		slog.Float64("err_mean_deg", s.ErrMeanDeg),
		slog.Float64("err_p50_deg", s.ErrP50Deg),
		slog.Float64("err_p90_deg", s.ErrP90Deg),
		slog.Float64("err_max_deg", s.ErrMaxDeg),
		slog.Float64("err_rms_deg", s.ErrRMSDeg),
		slog.Float64("offset_mean_deg", s.OffsetMeanDeg),
		slog.Int("degenerate_frames", s.DegenerateFrames),
		slog.Float64("slew_az_deg", s.SlewAzDeg),
		slog.Float64("slew_alt_deg", s.SlewAltDeg),
		slog.Int("wrap_saves", s.WrapSaves),
		slog.Int("alt_clamps", s.AltClamps),
		slog.Float64("refraction_mean_deg", s.RefractionMeanDeg),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"targets", s.TargetCount,
		"err_mean_deg", s.ErrMeanDeg,
		"err_p50_deg", s.ErrP50Deg,
		"err_p90_deg", s.ErrP90Deg,
		"err_max_deg", s.ErrMaxDeg,
		"err_rms_deg", s.ErrRMSDeg,
		"offset_mean_deg", s.OffsetMeanDeg,
		"degenerate_frames", s.DegenerateFrames,
		"slew_az_deg", s.SlewAzDeg,
		"slew_alt_deg", s.SlewAltDeg,
		"wrap_saves", s.WrapSaves,
		"alt_clamps", s.AltClamps,
		"refraction_mean_deg", s.RefractionMeanDeg,
	)
}

// PointingSample is one per-tick, per-target tracking record for CSV export.
type PointingSample struct {
	Tick        int     `csv:"tick"`
	SimTimeSec  float64 `csv:"sim_time"`
	TargetID    int     `csv:"target"`
	ErrDeg      float64 `csv:"err_deg"`
	OffsetRDeg  float64 `csv:"offset_r_deg"`
	PosAngleDeg float64 `csv:"pos_angle_deg"`
	Degenerate  bool    `csv:"degenerate"`
}
