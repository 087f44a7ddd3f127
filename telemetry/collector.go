package telemetry

// Collector accumulates per-tick tracking samples within time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Accumulators for the current window
	errSamples       []float64
	offsetSum        float64
	offsetCount      int
	degenerateFrames int
	slewAz           float64
	slewAlt          float64
	wrapSaves        int
	altClamps        int
	refractionSum    float64
	refractionCount  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordPointing records one target's tracking state for the current tick.
func (c *Collector) RecordPointing(errDeg, offsetRDeg float64, degenerate bool) {
	c.errSamples = append(c.errSamples, errDeg)
	c.offsetSum += offsetRDeg
	c.offsetCount++
	if degenerate {
		c.degenerateFrames++
	}
}

// RecordSlew records one tick of mount motion.
func (c *Collector) RecordSlew(dAz, dAlt float64) {
	if dAz < 0 {
		dAz = -dAz
	}
	if dAlt < 0 {
		dAlt = -dAlt
	}
	c.slewAz += dAz
	c.slewAlt += dAlt
}

// RecordWrapSave records a command that was rewrapped to avoid slewing
// the long way around the azimuth axis.
func (c *Collector) RecordWrapSave() {
	c.wrapSaves++
}

// RecordAltClamp records a command limited by the mechanical altitude range.
func (c *Collector) RecordAltClamp() {
	c.altClamps++
}

// RecordRefraction records the altitude correction applied this tick.
func (c *Collector) RecordRefraction(corrDeg float64) {
	c.refractionSum += corrDeg
	c.refractionCount++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets accumulators for the next window.
func (c *Collector) Flush(currentTick, targetCount int) WindowStats {
	errMean, errP50, errP90, errMax, errRMS := ComputeErrorStats(c.errSamples)

	var offsetMean float64
	if c.offsetCount > 0 {
		offsetMean = c.offsetSum / float64(c.offsetCount)
	}
	var refractionMean float64
	if c.refractionCount > 0 {
		refractionMean = c.refractionSum / float64(c.refractionCount)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		TargetCount: targetCount,

		ErrMeanDeg: errMean,
		ErrP50Deg:  errP50,
		ErrP90Deg:  errP90,
		ErrMaxDeg:  errMax,
		ErrRMSDeg:  errRMS,

		OffsetMeanDeg:    offsetMean,
		DegenerateFrames: c.degenerateFrames,

		SlewAzDeg:  c.slewAz,
		SlewAltDeg: c.slewAlt,
		WrapSaves:  c.wrapSaves,
		AltClamps:  c.altClamps,

		RefractionMeanDeg: refractionMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.errSamples = c.errSamples[:0]
	c.offsetSum = 0
	c.offsetCount = 0
	c.degenerateFrames = 0
	c.slewAz = 0
	c.slewAlt = 0
	c.wrapSaves = 0
	c.altClamps = 0
	c.refractionSum = 0
	c.refractionCount = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
