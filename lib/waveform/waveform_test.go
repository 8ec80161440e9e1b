package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicity(t *testing.T) {
	for _, k := range []Kind{Sine, Triangle, Square, Sawtooth} {
		for _, p := range []float64{0, 0.1, 0.37, 0.5, 0.99} {
			a := Eval(k, p, 0.1, 0.8, false)
			b := Eval(k, p+1, 0.1, 0.8, false)
			assert.InDelta(t, a, b, 1e-9, "kind=%v phase=%v", k, p)
		}
	}
}

func TestRangeBipolar(t *testing.T) {
	for _, k := range []Kind{Sine, Triangle, Square, Sawtooth} {
		for p := 0.0; p < 1; p += 0.01 {
			v := Eval(k, p, 0.2, 1, false)
			assert.GreaterOrEqual(t, v, -1.0001)
			assert.LessOrEqual(t, v, 1.0001)
		}
	}
}

func TestRangeUnipolarPulse(t *testing.T) {
	for _, k := range []Kind{Sine, Triangle, Square, Sawtooth} {
		for p := 0.0; p < 1; p += 0.01 {
			v := Eval(k, p, 0.2, 1, true)
			assert.GreaterOrEqual(t, v, -0.0001)
			assert.LessOrEqual(t, v, 1.0001)
		}
	}
}

func TestDutyCycleZeroIsAlwaysZero(t *testing.T) {
	for _, k := range []Kind{Sine, Triangle, Square, Sawtooth} {
		for p := 0.0; p < 1; p += 0.05 {
			assert.Equal(t, 0.0, Eval(k, p, 0, 0, false))
		}
	}
}

func TestBareWaveAtFullDutyNoSmoothing(t *testing.T) {
	assert.InDelta(t, 0.0, Eval(Sine, 0, 0, 1, false), 1e-9)
	assert.InDelta(t, math.Sin(2*math.Pi*0.25), Eval(Sine, 0.25, 0, 1, false), 1e-9)
	assert.InDelta(t, 1.0, Eval(Square, 0.1, 0, 1, false), 1e-9)
	assert.InDelta(t, -1.0, Eval(Square, 0.6, 0, 1, false), 1e-9)
}

func TestDutyCycleGatesHighPhase(t *testing.T) {
	assert.Equal(t, 0.0, Eval(Sine, 0.9, 0.1, 0.5, false))
}

func TestTriangleZeroCrossings(t *testing.T) {
	assert.InDelta(t, 1.0, Eval(Triangle, 0, 0, 1, false), 1e-9)
	assert.InDelta(t, 0.0, Eval(Triangle, 0.25, 0, 1, false), 1e-9)
	assert.InDelta(t, -1.0, Eval(Triangle, 0.5, 0, 1, false), 1e-9)
	assert.InDelta(t, 0.0, Eval(Triangle, 0.75, 0, 1, false), 1e-9)
}
