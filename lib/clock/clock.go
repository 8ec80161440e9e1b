// Package clock implements the fixed-tick scheduler and tap-tempo
// machinery described in §4.6: Clock advances a master phase/beat
// counter, and MasterClock holds the primary Clock alongside N auxiliary
// independently tap-tempo'd clocks. Clock-locked animators follow the
// primary clock only.
package clock

import "time"

// DefaultBPM seeds a cold tap-tempo estimator before any taps arrive,
// matching the "cold estimator uses a default BPM" state in §4.9.
const DefaultBPM = 120.0

// Clock tracks one beat-synchronized phase/counter, independently
// tap-temp'd. beatTime is continuous (not wrapped) for clock-locked Animator
// consumers — lib/anim.Animator multiplies its own speed against this
// value and takes the result modulo 1 itself, so accumulated beat count
// never gets lost to wraparound here.
type Clock struct {
	bpm       float64
	beatTime  float64 // continuous elapsed beats since start/reset
	tap       TapSync
}

// NewClock returns a Clock at the cold default tempo.
func NewClock() *Clock {
	return &Clock{bpm: DefaultBPM}
}

// Advance steps beatTime forward by the number of beats elapsed in dt at
// the current bpm.
func (c *Clock) Advance(dt time.Duration) {
	beatsPerSecond := c.bpm / 60.0
	c.beatTime += beatsPerSecond * dt.Seconds()
}

// BeatTime returns the continuous elapsed beat count, the reference phase
// clock-locked animators multiply their own speed against.
func (c *Clock) BeatTime() float64 { return c.beatTime }

// Phase returns BeatTime wrapped into [0, 1), the radial-unit phase used
// by anything consuming "where in the current beat are we".
func (c *Clock) Phase() float64 {
	p := c.beatTime - float64(int64(c.beatTime))
	if p < 0 {
		p += 1
	}
	return p
}

// BPM returns the clock's current tempo estimate.
func (c *Clock) BPM() float64 { return c.bpm }

// SetBPM directly sets the tempo, bypassing tap estimation (e.g. loaded
// from a snapshot or operator entry).
func (c *Clock) SetBPM(bpm float64) {
	if bpm > 0 {
		c.bpm = bpm
	}
}

// Tap registers a tap-tempo event at time t and updates bpm from the
// estimator once it has enough samples.
func (c *Clock) Tap(t time.Time) {
	if period, ok := c.tap.Tap(t); ok {
		c.bpm = 60.0 / period
	}
}

// Nudge resyncs phase to 0, per the explicit "nudge" command in §4.6.
func (c *Clock) Nudge() {
	c.beatTime = float64(int64(c.beatTime))
}
