package clock

import (
	"fmt"
	"time"
)

// NAux is the number of auxiliary clocks a MasterClock publishes
// alongside its primary ShowClock, per §3's "typically 4" and grounded on
// the original's 4-clock bank.
const NAux = 4

// ClockIdx is a validated index into a MasterClock's auxiliary bank.
// Values are only constructed via ParseClockIdx, so any ClockIdx in hand
// is known in-range — the control mapper validates external indices at
// the boundary, never inside the tick loop.
type ClockIdx int

// ParseClockIdx validates an external (e.g. control-surface-supplied)
// clock index into a ClockIdx.
func ParseClockIdx(i int) (ClockIdx, error) {
	if i < 0 || i >= NAux {
		return 0, fmt.Errorf("clock: index %d out of range [0,%d)", i, NAux)
	}
	return ClockIdx(i), nil
}

// MasterClock owns the primary Clock plus NAux independently
// tap-tempo'd auxiliary clocks (§3: "A MasterClock may also publish N
// auxiliary clocks"). Animators have no clock selector: clock-locked
// animators always follow the primary clock, and the auxiliary clocks are
// only tapped, nudged and persisted.
type MasterClock struct {
	Primary *Clock
	aux     [NAux]*Clock
}

// NewMasterClock builds a MasterClock with a cold primary clock and
// NAux cold auxiliary clocks.
func NewMasterClock() *MasterClock {
	mc := &MasterClock{Primary: NewClock()}
	for i := range mc.aux {
		mc.aux[i] = NewClock()
	}
	return mc
}

// Aux returns the auxiliary clock at idx.
func (mc *MasterClock) Aux(idx ClockIdx) *Clock {
	return mc.aux[idx]
}

// Advance steps the primary clock and every auxiliary clock by dt.
func (mc *MasterClock) Advance(dt time.Duration) {
	mc.Primary.Advance(dt)
	for _, c := range mc.aux {
		c.Advance(dt)
	}
}
