package scene

import "math"

// Phase is the radial unit used throughout the engine: a fraction of a
// cycle, always kept in [0, 1). No component works in radians or degrees
// outside of this package's waveform math.
type Phase float64

// NewPhase wraps v into [0, 1).
func NewPhase(v float64) Phase {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	return Phase(v)
}

// Add returns p+other wrapped into [0, 1).
func (p Phase) Add(other Phase) Phase {
	return NewPhase(float64(p) + float64(other))
}

// Unipolar is a value clamped to [0, 1], used for levels, saturation,
// weights, smoothing, and duty cycle.
type Unipolar float64

func NewUnipolar(v float64) Unipolar {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return Unipolar(v)
}

func (u Unipolar) Add(other Unipolar) Unipolar { return NewUnipolar(float64(u) + float64(other)) }

// Bipolar is a value clamped to [-1, 1], used for speeds and other
// signed knobs.
type Bipolar float64

func NewBipolar(v float64) Bipolar {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return Bipolar(v)
}

func (b Bipolar) Add(other Bipolar) Bipolar { return NewBipolar(float64(b) + float64(other)) }

// Clamp01 clamps a bare float64 to [0, 1]; used at the wire boundary where
// a full Unipolar wrapper would be discarded immediately anyway.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
