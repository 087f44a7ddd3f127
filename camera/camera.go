// Package camera provides a pan/zoom viewport onto the sky chart.
package camera

import "math"

const (
	azSpan  = 360
	altSpan = 90
)

// Camera controls the viewport into the azimuth/altitude chart.
// Azimuth wraps at the 0/360 seam; altitude is held inside the
// 0..90 band.
type Camera struct {
	// View center in degrees
	Az, Alt float32

	// Zoom level (1.0 = the whole sky fits the panel)
	Zoom float32

	// Panel dimensions in pixels
	ViewW, ViewH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the full sky at 1:1 zoom.
func New(viewW, viewH float32) *Camera {
	return &Camera{
		Az:      azSpan / 2,
		Alt:     altSpan / 2,
		Zoom:    1.0,
		ViewW:   viewW,
		ViewH:   viewH,
		MinZoom: 1.0,
		MaxZoom: 8.0,
	}
}

// scale returns pixels per degree on each axis at the current zoom.
func (c *Camera) scale() (px, py float32) {
	return c.ViewW / azSpan * c.Zoom, c.ViewH / altSpan * c.Zoom
}

// SkyToScreen converts a sky direction to panel pixel coordinates.
// Azimuth takes the shortest way around the seam, and altitude grows
// up the panel.
func (c *Camera) SkyToScreen(az, alt float32) (sx, sy float32) {
	px, py := c.scale()
	sx = c.ViewW/2 + seamDelta(az, c.Az)*px
	sy = c.ViewH/2 - (alt-c.Alt)*py
	return sx, sy
}

// ScreenToSky converts panel pixel coordinates back to a sky direction.
func (c *Camera) ScreenToSky(sx, sy float32) (az, alt float32) {
	px, py := c.scale()
	az = wrapAz(c.Az + (sx-c.ViewW/2)/px)
	alt = clamp(c.Alt-(sy-c.ViewH/2)/py, 0, altSpan)
	return az, alt
}

// IsVisible returns true if a marker at (az, alt) with the given
// angular margin could be visible on the panel (conservative check
// for culling).
func (c *Camera) IsVisible(az, alt, marginDeg float32) bool {
	halfAz := azSpan / (2 * c.Zoom)
	halfAlt := altSpan / (2 * c.Zoom)
	return absf(seamDelta(az, c.Az)) <= halfAz+marginDeg &&
		absf(alt-c.Alt) <= halfAlt+marginDeg
}

// SeamGhost returns a second panel position for markers straddling the
// azimuth seam, so they show on both panel edges. ok is false when the
// marker is clear of the seam.
func (c *Camera) SeamGhost(az, alt, marginDeg float32) (sx, sy float32, ok bool) {
	halfAz := azSpan / (2 * c.Zoom)
	d := seamDelta(az, c.Az)

	px, py := c.scale()
	sy = c.ViewH/2 - (alt-c.Alt)*py

	if d > halfAz-marginDeg && d < halfAz+marginDeg {
		// Near the right edge of the view, ghost on the left
		return c.ViewW/2 + (d-azSpan)*px, sy, true
	}
	if d < -halfAz+marginDeg && d > -halfAz-marginDeg {
		// Near the left edge of the view, ghost on the right
		return c.ViewW/2 + (d+azSpan)*px, sy, true
	}
	return 0, 0, false
}

// Pan moves the camera by the given delta in panel pixels.
// Azimuth wraps around the seam; altitude stops at the band edges.
func (c *Camera) Pan(dx, dy float32) {
	px, py := c.scale()
	c.Az = wrapAz(c.Az + dx/px)
	c.Alt = c.clampAlt(c.Alt - dy/py)
}

// SetZoom sets the zoom level, clamped to min/max, and keeps the
// visible band inside the chart.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.Alt = c.clampAlt(c.Alt)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the full-sky view.
func (c *Camera) Reset() {
	c.Az = azSpan / 2
	c.Alt = altSpan / 2
	c.Zoom = 1.0
}

// clampAlt keeps the visible altitude band inside 0..90.
func (c *Camera) clampAlt(alt float32) float32 {
	half := altSpan / (2 * c.Zoom)
	return clamp(alt, half, altSpan-half)
}

// seamDelta computes the shortest signed azimuth distance from 'from'
// to 'to' across the 0/360 seam.
func seamDelta(to, from float32) float32 {
	d := to - from
	if d > azSpan/2 {
		d -= azSpan
	} else if d < -azSpan/2 {
		d += azSpan
	}
	return d
}

// wrapAz wraps an azimuth into [0, 360).
func wrapAz(az float32) float32 {
	r := float32(math.Mod(float64(az), azSpan))
	if r < 0 {
		r += azSpan
	}
	return r
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
