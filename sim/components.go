// Package sim runs the deterministic tracking simulation behind the
// viewer and the batch tools.
package sim

// Target is a drifting sky position being tracked.
type Target struct {
	ID       int
	Az, Alt  float64 // true direction, degrees
	DriftAz  float64 // deg/sec
	DriftAlt float64 // deg/sec

	// Focal-plane offset of the image from boresight, sky frame, degrees
	OffsetX, OffsetY float64
}

// Mount is the alt-azimuth mount state for one tracking session.
// Az is kept on an unwrapped axis so cable-wrap travel accumulates;
// wrap into a display range only at the edges.
type Mount struct {
	Az, Alt       float64 // current axis positions, degrees
	CmdAz, CmdAlt float64 // commanded positions, degrees
	TravelAz      float64 // cumulative azimuth travel, degrees
}

// Pointing holds the per-tick derived tracking results for a session.
type Pointing struct {
	ErrDeg     float64 // separation between commanded and actual direction
	OffsetR    float64 // focal-plane image radius from boresight, degrees
	PosAngle   float64 // focal-plane position angle, degrees
	Degenerate bool    // image too close to boresight to have a direction
}
