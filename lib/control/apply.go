package control

import (
	"tunnelcore/lib/anim"
	"tunnelcore/lib/scene"
)

// animMutator names one animator slot within a beam's ClipModulator, for
// control bindings that touch the animation bank rather than a beam's
// base parameters.
type animMutator struct {
	mod  *anim.ClipModulator
	slot int
}

func (a animMutator) setSpeed(v float64) {
	a.mod.Animator(a.slot).Speed = scene.NewBipolar(v*2 - 1) // unipolar control -> signed speed
}

func (a animMutator) setTarget(target scene.ParameterId) {
	a.mod.SetTarget(a.slot, target)
}

// applyBeamParam sets a beam's configured (pre-modulation) base value for
// one ParameterId. Only the parameters a Tunnel or Line actually exposes
// are handled; anything else is a no-op, matching §4.10's "out-of-range
// or unrecognized controller values are clamped/discarded, never fatal".
func (m *Mapper) applyBeamParam(target TargetPath, v float64) {
	if target.Layer < 0 || target.Layer >= len(m.Mixer.Layers) {
		return
	}
	beam := m.Mixer.Layers[target.Layer].Beam
	switch beam.Kind {
	case scene.BeamTunnel:
		applyTunnelParam(beam.Tunnel, target.Param, v)
	case scene.BeamLine:
		applyLineParam(beam.Line, target.Param, v)
	}
}

func applyTunnelParam(t *scene.Tunnel, id scene.ParameterId, v float64) {
	switch id {
	case scene.ParamRotationSpeed:
		t.RotationSpeed = scene.NewBipolar(v)
	case scene.ParamMarqueeSpeed:
		t.MarqueeSpeed = scene.NewBipolar(v)
	case scene.ParamThickness:
		t.Thickness = scene.NewUnipolar(v)
	case scene.ParamSize:
		t.Size = scene.NewUnipolar(v)
	case scene.ParamAspectRatio:
		t.AspectRatio = scene.NewUnipolar(v)
	case scene.ParamColCenter:
		t.ColCenter = scene.NewPhase(v)
	case scene.ParamColWidth:
		t.ColWidth = scene.NewUnipolar(v)
	case scene.ParamColSpread:
		t.ColSpread = scene.NewUnipolar(v)
	case scene.ParamColSaturation:
		t.ColSaturation = scene.NewUnipolar(v)
	case scene.ParamSegments:
		n := int(v)
		if n < 1 {
			n = 1
		}
		t.Segments = n
	case scene.ParamBlacking:
		t.Blacking = int(v)
	case scene.ParamPositionX:
		t.PositionX = v
	case scene.ParamPositionY:
		t.PositionY = v
	}
}

func applyLineParam(l *scene.Line, id scene.ParameterId, v float64) {
	switch id {
	case scene.ParamLineThickness:
		l.Thickness = scene.NewUnipolar(v)
	case scene.ParamLineLength:
		l.Length = scene.NewUnipolar(v)
	case scene.ParamLineRotation:
		l.Rotation = scene.NewPhase(v)
	case scene.ParamLineStartPhase:
		l.StartPhase = scene.NewPhase(v)
	case scene.ParamLineStopPhase:
		l.StopPhase = scene.NewPhase(v)
	}
}

// currentValue reads back the live value a target currently holds, for
// pushing full-page state snapshots to a surface after a page/bank change
// (§4.7). Momentary actions (bump, clock tap/nudge, page/bank select
// itself) have no steady-state value to echo and report false.
func (m *Mapper) currentValue(target TargetPath) (float64, bool) {
	if target.Layer < 0 || target.Layer >= len(m.Mixer.Layers) {
		return 0, false
	}
	layer := &m.Mixer.Layers[target.Layer]
	switch target.Kind {
	case TargetLayerLevel:
		return float64(layer.Level), true
	case TargetLayerMask:
		return boolToValue(layer.Mask), true
	case TargetBeamParam:
		switch layer.Beam.Kind {
		case scene.BeamTunnel:
			return tunnelParamValue(layer.Beam.Tunnel, target.Param)
		case scene.BeamLine:
			return lineParamValue(layer.Beam.Line, target.Param)
		}
		return 0, false
	case TargetAnimatorSpeed:
		mod, ok := animModulator(layer.Beam, target.Slot)
		if !ok {
			return 0, false
		}
		return (float64(mod.Speed) + 1) / 2, true
	default:
		return 0, false
	}
}

func animModulator(beam scene.Beam, slot int) (*anim.Animator, bool) {
	var mod *anim.ClipModulator
	switch beam.Kind {
	case scene.BeamTunnel:
		mod = beam.Tunnel.Animators
	case scene.BeamLine:
		mod = beam.Line.Animators
	default:
		return nil, false
	}
	if slot < 0 || slot >= mod.Len() {
		return nil, false
	}
	return mod.Animator(slot), true
}

func tunnelParamValue(t *scene.Tunnel, id scene.ParameterId) (float64, bool) {
	switch id {
	case scene.ParamRotationSpeed:
		return float64(t.RotationSpeed), true
	case scene.ParamMarqueeSpeed:
		return float64(t.MarqueeSpeed), true
	case scene.ParamThickness:
		return float64(t.Thickness), true
	case scene.ParamSize:
		return float64(t.Size), true
	case scene.ParamAspectRatio:
		return float64(t.AspectRatio), true
	case scene.ParamColCenter:
		return float64(t.ColCenter), true
	case scene.ParamColWidth:
		return float64(t.ColWidth), true
	case scene.ParamColSpread:
		return float64(t.ColSpread), true
	case scene.ParamColSaturation:
		return float64(t.ColSaturation), true
	case scene.ParamSegments:
		return float64(t.Segments), true
	case scene.ParamBlacking:
		return float64(t.Blacking), true
	case scene.ParamPositionX:
		return t.PositionX, true
	case scene.ParamPositionY:
		return t.PositionY, true
	default:
		return 0, false
	}
}

func lineParamValue(l *scene.Line, id scene.ParameterId) (float64, bool) {
	switch id {
	case scene.ParamLineThickness:
		return float64(l.Thickness), true
	case scene.ParamLineLength:
		return float64(l.Length), true
	case scene.ParamLineRotation:
		return float64(l.Rotation), true
	case scene.ParamLineStartPhase:
		return float64(l.StartPhase), true
	case scene.ParamLineStopPhase:
		return float64(l.StopPhase), true
	default:
		return 0, false
	}
}

// applyAnimatorField mutates the animator slot named by target.Slot on
// the beam in target.Layer, calling set against whichever ClipModulator
// that beam owns.
func (m *Mapper) applyAnimatorField(target TargetPath, set func(animMutator)) {
	if target.Layer < 0 || target.Layer >= len(m.Mixer.Layers) {
		return
	}
	beam := m.Mixer.Layers[target.Layer].Beam
	var mutator animMutator
	switch beam.Kind {
	case scene.BeamTunnel:
		mutator = animMutator{mod: beam.Tunnel.Animators, slot: target.Slot}
	case scene.BeamLine:
		mutator = animMutator{mod: beam.Line.Animators, slot: target.Slot}
	default:
		return
	}
	set(mutator)
}
