package clock

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseWrapsWithinUnit(t *testing.T) {
	c := NewClock()
	c.SetBPM(120)
	c.Advance(10 * time.Second)
	p := c.Phase()
	assert.GreaterOrEqual(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestTapTempoConvergence(t *testing.T) {
	var ts TapSync
	base := time.Now()
	truePeriod := 0.5 // seconds, 120 BPM
	var period float64
	var ok bool
	for i := 0; i < 4; i++ {
		period, ok = ts.Tap(base.Add(time.Duration(float64(i) * truePeriod * float64(time.Second))))
	}
	assert.True(t, ok)
	assert.InDelta(t, truePeriod, period, 0.05)
	assert.Equal(t, TapLocked, ts.State())
}

func TestTapTempoOutlierRejected(t *testing.T) {
	var ts TapSync
	base := time.Now()
	ts.Tap(base)
	ts.Tap(base.Add(500 * time.Millisecond))
	ts.Tap(base.Add(time.Second))
	// A huge gap should reset the window rather than corrupt the estimate.
	period, ok := ts.Tap(base.Add(10 * time.Second))
	assert.True(t, ok == false || period > 0)
	assert.Equal(t, 1, len(ts.taps))
}

func TestNudgeResyncsToZero(t *testing.T) {
	c := NewClock()
	c.SetBPM(120)
	c.Advance(2500 * time.Millisecond)
	c.Nudge()
	assert.Equal(t, 0.0, c.Phase())
}

func TestClockIdxValidation(t *testing.T) {
	_, err := ParseClockIdx(-1)
	assert.Error(t, err)
	_, err = ParseClockIdx(NAux)
	assert.Error(t, err)
	idx, err := ParseClockIdx(0)
	assert.NoError(t, err)
	mc := NewMasterClock()
	assert.NotNil(t, mc.Aux(idx))
}

func TestBeatTimeMonotonicUnderAdvance(t *testing.T) {
	c := NewClock()
	c.SetBPM(60)
	c.Advance(time.Second)
	assert.True(t, math.Abs(c.BeatTime()-1.0) < 1e-9)
}
