package telemetry

import "sort"

// SessionStats accumulates per-target statistics over a whole run.
type SessionStats struct {
	TargetID int `csv:"target"`
	Ticks    int `csv:"ticks"`

	// Pointing error
	ErrSumDeg  float64 `csv:"-"`
	ErrMeanDeg float64 `csv:"err_mean_deg"`
	ErrMaxDeg  float64 `csv:"err_max_deg"`

	DegenerateFrames int `csv:"degenerate_frames"`

	// Mount motion attributed to this target
	TravelAzDeg  float64 `csv:"travel_az_deg"`
	TravelAltDeg float64 `csv:"travel_alt_deg"`
	WrapSaves    int     `csv:"wrap_saves"`
	AltClamps    int     `csv:"alt_clamps"`
}

// SessionTracker manages per-target run statistics.
type SessionTracker struct {
	stats map[int]*SessionStats
}

// NewSessionTracker creates a new session tracker.
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		stats: make(map[int]*SessionStats),
	}
}

// Register creates session stats for a new target.
func (st *SessionTracker) Register(targetID int) {
	st.stats[targetID] = &SessionStats{
		TargetID: targetID,
	}
}

// Get returns the session stats for a target, or nil if not found.
func (st *SessionTracker) Get(targetID int) *SessionStats {
	return st.stats[targetID]
}

// RecordPointing accumulates one tick's pointing error.
func (st *SessionTracker) RecordPointing(targetID int, errDeg float64, degenerate bool) {
	if s := st.stats[targetID]; s != nil {
		s.Ticks++
		s.ErrSumDeg += errDeg
		if errDeg > s.ErrMaxDeg {
			s.ErrMaxDeg = errDeg
		}
		if degenerate {
			s.DegenerateFrames++
		}
	}
}

// RecordTravel adds mount travel on both axes.
func (st *SessionTracker) RecordTravel(targetID int, azDeg, altDeg float64) {
	if s := st.stats[targetID]; s != nil {
		s.TravelAzDeg += azDeg
		s.TravelAltDeg += altDeg
	}
}

// RecordWrapSave increments the rewrapped command count.
func (st *SessionTracker) RecordWrapSave(targetID int) {
	if s := st.stats[targetID]; s != nil {
		s.WrapSaves++
	}
}

// RecordAltClamp increments the altitude limit count.
func (st *SessionTracker) RecordAltClamp(targetID int) {
	if s := st.stats[targetID]; s != nil {
		s.AltClamps++
	}
}

// Count returns the number of tracked targets.
func (st *SessionTracker) Count() int {
	return len(st.stats)
}

// Summaries returns finished stats for all targets, sorted by target ID.
// Means are computed here so accumulation stays cheap.
func (st *SessionTracker) Summaries() []SessionStats {
	out := make([]SessionStats, 0, len(st.stats))
	for _, s := range st.stats {
		summary := *s
		if summary.Ticks > 0 {
			summary.ErrMeanDeg = summary.ErrSumDeg / float64(summary.Ticks)
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TargetID < out[j].TargetID
	})
	return out
}
