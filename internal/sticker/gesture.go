package sticker

import (
	"math"
	"time"
)

const (
	// DoubleTapWindow is the longest pause between two taps that still counts
	// as a double-tap.
	DoubleTapWindow = 300 * time.Millisecond
	// DoubleTapSlop is how far, in pixels, the second tap may land from the first.
	DoubleTapSlop = 10.0
)

// TapDetector recognises double-taps from a stream of single taps.
type TapDetector struct {
	Window time.Duration
	Slop   float64

	pending bool
	lastAt  time.Time
	lastX   float64
	lastY   float64
}

// NewTapDetector returns a detector using DoubleTapWindow and DoubleTapSlop.
func NewTapDetector() *TapDetector {
	return &TapDetector{Window: DoubleTapWindow, Slop: DoubleTapSlop}
}

// Tap records a tap at (x, y) and reports whether it completes a double-tap.
// A completed double-tap clears the detector so a third tap starts over.
func (d *TapDetector) Tap(at time.Time, x, y float64) bool {
	if d.pending && at.Sub(d.lastAt) <= d.Window && math.Hypot(x-d.lastX, y-d.lastY) <= d.Slop {
		d.pending = false
		return true
	}
	d.pending = true
	d.lastAt = at
	d.lastX = x
	d.lastY = y
	return false
}

// Cancel forgets a pending first tap, e.g. when the pointer starts dragging.
func (d *TapDetector) Cancel() {
	d.pending = false
}
