package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunnelcore/lib/scene"
	"tunnelcore/lib/waveform"
)

func TestZeroWeightSumsToZero(t *testing.T) {
	c := NewClipModulator(4)
	for i := 0; i < 4; i++ {
		a := c.Animator(i)
		a.Waveform = waveform.Square
		a.Weight = 0
		a.Speed = scene.NewBipolar(1)
		a.ClockLocked = true
		c.SetTarget(i, scene.ParamRotationSpeed)
	}
	mod := c.Evaluate(0.37)
	assert.Equal(t, 0.0, mod[scene.ParamRotationSpeed])
}

func TestUntouchedTargetAbsent(t *testing.T) {
	c := NewClipModulator(2)
	mod := c.Evaluate(0.1)
	_, ok := mod[scene.ParamRotationSpeed]
	assert.False(t, ok)
}

func TestSumMixRule(t *testing.T) {
	c := NewClipModulator(2)
	for i := 0; i < 2; i++ {
		a := c.Animator(i)
		a.Waveform = waveform.Sine
		a.Weight = scene.NewUnipolar(0.5)
		a.ClockLocked = true
		a.Speed = scene.NewBipolar(1)
		c.SetTarget(i, scene.ParamColCenter)
	}
	mod := c.Evaluate(0.25)
	single := 0.5 * waveform.Eval(waveform.Sine, 0.25, 0, 1, false)
	assert.InDelta(t, single*2, mod[scene.ParamColCenter], 1e-9)
}

func TestFreeRunAccumulatorWrapsAndPersists(t *testing.T) {
	a := &Animator{Waveform: waveform.Sine, Weight: scene.NewUnipolar(1), Speed: scene.NewBipolar(0.5)}
	for i := 0; i < 10; i++ {
		a.Advance(0.3)
	}
	assert.GreaterOrEqual(t, a.freeRunAcc, 0.0)
	assert.Less(t, a.freeRunAcc, 1.0)
}
