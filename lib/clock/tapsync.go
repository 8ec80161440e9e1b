package clock

import (
	"sort"
	"time"
)

// tapWindow is K from §4.6: "median of pairwise deltas in a sliding
// window of the last K taps (K=4)".
const tapWindow = 4

// TapState reports the tap-tempo estimator's confidence, per §4.9's
// cold -> warm -> locked state machine.
type TapState int

const (
	TapCold TapState = iota
	TapWarm
	TapLocked
)

// TapSync is the tap-tempo estimator. It keeps the last K tap timestamps
// and derives a beat period as the median of their pairwise deltas. A tap
// that arrives more than twice the current estimate after the previous
// one clears the earlier taps and starts a new window from itself.
type TapSync struct {
	taps   []time.Time
	period float64 // seconds; 0 until warm
}

// Tap registers a tap at time t. It returns the updated period estimate
// in seconds and true once at least two taps have been accepted (warm or
// locked); before that it returns (0, false).
func (ts *TapSync) Tap(t time.Time) (float64, bool) {
	if len(ts.taps) > 0 {
		last := ts.taps[len(ts.taps)-1]
		delta := t.Sub(last).Seconds()
		if ts.period > 0 && delta > 2*ts.period {
			// Outlier: treat this tap as the start of a new sequence
			// rather than polluting the window with a bad delta.
			ts.taps = ts.taps[:0]
		}
	}

	ts.taps = append(ts.taps, t)
	if len(ts.taps) > tapWindow {
		ts.taps = ts.taps[len(ts.taps)-tapWindow:]
	}

	if len(ts.taps) < 2 {
		return 0, false
	}

	deltas := make([]float64, 0, len(ts.taps)-1)
	for i := 1; i < len(ts.taps); i++ {
		deltas = append(deltas, ts.taps[i].Sub(ts.taps[i-1]).Seconds())
	}
	sort.Float64s(deltas)
	ts.period = deltas[len(deltas)/2]
	return ts.period, true
}

// State reports the estimator's current confidence tier.
func (ts *TapSync) State() TapState {
	switch {
	case len(ts.taps) >= tapWindow:
		return TapLocked
	case len(ts.taps) >= 2:
		return TapWarm
	default:
		return TapCold
	}
}

// Reset clears all taps, returning the estimator to cold.
func (ts *TapSync) Reset() {
	ts.taps = nil
	ts.period = 0
}
