// Package anim implements the stateful oscillator layer that sits on top
// of the pure lib/waveform kernels: Animator (one oscillator) and
// ClipModulator (a bank of animators bound to one beam's parameters).
package anim

import (
	"tunnelcore/lib/scene"
	"tunnelcore/lib/waveform"
)

// MixRule selects how a ClipModulator combines multiple animators that
// target the same parameter.
type MixRule int

const (
	MixSum MixRule = iota
	MixPickMax
	MixMultiply
)

// Animator is a single stateful oscillator. It owns no independent phase
// state beyond a free-run accumulator (per the design notes: "generator
// style animator outputs are pure evaluation, not suspended coroutines").
// Its target is not stored here; the owning ClipModulator assigns it.
type Animator struct {
	Waveform  waveform.Kind
	Speed     scene.Bipolar // phase-units per beat, signed
	Weight    scene.Unipolar
	Smoothing scene.Unipolar // [0, 0.5]
	DutyCycle scene.Unipolar
	Pulse     bool

	// ClockLocked selects whether Evaluate follows an externally supplied
	// master phase (true) or free-runs on its own accumulator (false).
	ClockLocked bool
	freeRunAcc  float64
}

// Active reports whether this animator contributes anything; a zero
// weight is equivalent to target=none per §4.3.
func (a *Animator) Active() bool {
	return a.Weight > 0
}

// Advance steps the free-run accumulator by speed*dt beats, wrapping to
// [0, 1). Called once per tick regardless of clock-lock state so that an
// animator retains continuity if toggled between modes; clock-locked
// animators simply ignore the accumulator in Evaluate.
func (a *Animator) Advance(dt float64) {
	a.freeRunAcc += float64(a.Speed) * dt
	a.freeRunAcc = float64(scene.NewPhase(a.freeRunAcc))
}

// Evaluate returns weight * f_kind(...) at the given master beat-phase (used
// only when ClockLocked is true).
func (a *Animator) Evaluate(masterPhase float64) float64 {
	if !a.Active() {
		return 0
	}
	var phase float64
	if a.ClockLocked {
		phase = float64(a.Speed) * masterPhase
	} else {
		phase = a.freeRunAcc
	}
	v := waveform.Eval(a.Waveform, phase, float64(a.Smoothing), float64(a.DutyCycle), a.Pulse)
	return float64(a.Weight) * v
}

// Reset zeroes the free-run accumulator, used by the control plane's
// "nudge phase to zero" operation.
func (a *Animator) Reset() {
	a.freeRunAcc = 0
}
