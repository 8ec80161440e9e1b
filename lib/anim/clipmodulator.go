package anim

import "tunnelcore/lib/scene"

// slot pairs one Animator with the parameter it targets and how its
// output combines with others targeting the same parameter.
type slot struct {
	anim   Animator
	target scene.ParameterId
	mix    MixRule
}

// ClipModulator holds an ordered, fixed-size bank of N animators bound to
// one owning beam. It is data evaluated by the beam that owns it; there
// are no back-pointers from the animators to the beam (per the design
// notes' resolution of the animator/beam cyclic reference).
type ClipModulator struct {
	slots []slot
}

// NewClipModulator builds a bank of n animators, all initially targeting
// ParamNone (identity modulation), matching the invariant that empty
// targets produce no effect. Each animator starts at full duty cycle, so
// it evaluates the whole wave once given a weight and a target.
func NewClipModulator(n int) *ClipModulator {
	c := &ClipModulator{slots: make([]slot, n)}
	for i := range c.slots {
		c.slots[i].anim.DutyCycle = scene.NewUnipolar(1)
	}
	return c
}

// Len returns the fixed bank size N.
func (c *ClipModulator) Len() int { return len(c.slots) }

// Animator returns a pointer to the i'th animator slot for direct mutation
// by the control plane (speed, smoothing, duty cycle, pulse, phase nudge).
func (c *ClipModulator) Animator(i int) *Animator {
	return &c.slots[i].anim
}

// SetTarget assigns which parameter slot i modulates; ParamNone disables it.
func (c *ClipModulator) SetTarget(i int, target scene.ParameterId) {
	c.slots[i].target = target
}

// Target returns the current target of slot i.
func (c *ClipModulator) Target(i int) scene.ParameterId {
	return c.slots[i].target
}

// SetMixRule sets how slot i's output combines with others on the same
// target.
func (c *ClipModulator) SetMixRule(i int, rule MixRule) {
	c.slots[i].mix = rule
}

// MixRuleOf returns slot i's current mix rule, for snapshot export.
func (c *ClipModulator) MixRuleOf(i int) MixRule {
	return c.slots[i].mix
}

// Advance steps every animator's free-run accumulator by dt beats.
func (c *ClipModulator) Advance(dt float64) {
	for i := range c.slots {
		c.slots[i].anim.Advance(dt)
	}
}

// Evaluate returns the modulation table: for every target touched by at
// least one active animator, the combined value per that target's mix
// rule. An animator with weight=0 or target=none is skipped entirely, so
// the sum of zero-weight animators is always exactly zero regardless of
// waveform, smoothing, or duty cycle (§8).
func (c *ClipModulator) Evaluate(masterPhase float64) map[scene.ParameterId]float64 {
	out := make(map[scene.ParameterId]float64)
	touched := make(map[scene.ParameterId]bool)
	for i := range c.slots {
		s := &c.slots[i]
		if s.target == scene.ParamNone || !s.anim.Active() {
			continue
		}
		v := s.anim.Evaluate(masterPhase)
		if !touched[s.target] {
			out[s.target] = v
			touched[s.target] = true
			continue
		}
		switch s.mix {
		case MixPickMax:
			if v > out[s.target] {
				out[s.target] = v
			}
		case MixMultiply:
			out[s.target] *= v
		default: // MixSum
			out[s.target] += v
		}
	}
	return out
}
