package show

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"tunnelcore/lib/anim"
	"tunnelcore/lib/clock"
	"tunnelcore/lib/mixer"
	"tunnelcore/lib/scene"
	"tunnelcore/lib/waveform"
)

// Capture builds a ShowState from the show's current configured state.
func (s *Show) Capture(numChannels int) ShowState {
	st := ShowState{NumChannels: numChannels}
	for i := range s.Mixer.Layers {
		st.Layers = append(st.Layers, captureLayer(&s.Mixer.Layers[i]))
	}
	for _, c := range s.Palette.Contents() {
		st.Palette = append(st.Palette, ColorState{Hue: float64(c.Hue), Sat: float64(c.Sat), Val: float64(c.Val)})
	}
	st.Primary = ClockState{BPM: s.Clock.Primary.BPM()}
	for i := 0; i < clock.NAux; i++ {
		idx, _ := clock.ParseClockIdx(i)
		st.Aux = append(st.Aux, ClockState{BPM: s.Clock.Aux(idx).BPM()})
	}
	return st
}

func captureLayer(l *mixer.Layer) LayerState {
	ls := LayerState{
		BeamKind:      int(l.Beam.Kind),
		Level:         float64(l.Level),
		Mask:          l.Mask,
		VideoChannels: l.VideoChannels,
		Name:          l.Name,
	}
	switch l.Beam.Kind {
	case scene.BeamTunnel:
		ls.Tunnel = captureTunnel(l.Beam.Tunnel)
	case scene.BeamLine:
		ls.Line = captureLine(l.Beam.Line)
	}
	return ls
}

func captureAnimators(mod *anim.ClipModulator) []AnimatorState {
	out := make([]AnimatorState, mod.Len())
	for i := 0; i < mod.Len(); i++ {
		a := mod.Animator(i)
		out[i] = AnimatorState{
			Target:      int(mod.Target(i)),
			Waveform:    int(a.Waveform),
			MixRule:     int(mod.MixRuleOf(i)),
			Speed:       float64(a.Speed),
			Weight:      float64(a.Weight),
			Smoothing:   float64(a.Smoothing),
			DutyCycle:   float64(a.DutyCycle),
			Pulse:       a.Pulse,
			ClockLocked: a.ClockLocked,
		}
	}
	return out
}

func captureTunnel(t *scene.Tunnel) *TunnelState {
	return &TunnelState{
		RotationSpeed: float64(t.RotationSpeed),
		MarqueeSpeed:  float64(t.MarqueeSpeed),
		Thickness:     float64(t.Thickness),
		Size:          float64(t.Size),
		AspectRatio:   float64(t.AspectRatio),
		ColCenter:     float64(t.ColCenter),
		ColWidth:      float64(t.ColWidth),
		ColSpread:     float64(t.ColSpread),
		ColSaturation: float64(t.ColSaturation),
		Segments:      t.Segments,
		Blacking:      t.Blacking,
		PositionX:     t.PositionX,
		PositionY:     t.PositionY,
		Animators:     captureAnimators(t.Animators),
	}
}

func captureLine(l *scene.Line) *LineState {
	return &LineState{
		Thickness:  float64(l.Thickness),
		Length:     float64(l.Length),
		PositionX:  l.PositionX,
		PositionY:  l.PositionY,
		Rotation:   float64(l.Rotation),
		Hue:        float64(l.Color.Hue),
		Sat:        float64(l.Color.Sat),
		Val:        float64(l.Color.Val),
		StartPhase: float64(l.StartPhase),
		StopPhase:  float64(l.StopPhase),
		Animators:  captureAnimators(l.Animators),
	}
}

// Restore replaces the show's mixer layers and clock tempos with those
// recorded in st. Layer count must match the mixer's existing layer
// count; extra or missing entries are silently ignored/left empty, per
// §4.10's "never fatal" latitude for malformed/partial input.
func (s *Show) Restore(st ShowState) {
	for i, lstate := range st.Layers {
		if i >= len(s.Mixer.Layers) {
			break
		}
		restoreLayer(&s.Mixer.Layers[i], lstate)
	}
	if len(st.Palette) > 0 {
		colors := make([]scene.Color, len(st.Palette))
		for i, cs := range st.Palette {
			colors[i] = scene.Color{Hue: scene.NewPhase(cs.Hue), Sat: scene.NewUnipolar(cs.Sat), Val: scene.NewUnipolar(cs.Val)}
		}
		s.Palette.SetContents(colors)
	}
	s.Clock.Primary.SetBPM(st.Primary.BPM)
	for i, cs := range st.Aux {
		idx, err := clock.ParseClockIdx(i)
		if err != nil {
			continue
		}
		s.Clock.Aux(idx).SetBPM(cs.BPM)
	}
}

func restoreLayer(l *mixer.Layer, st LayerState) {
	l.Level = scene.NewUnipolar(st.Level)
	l.Mask = st.Mask
	l.VideoChannels = st.VideoChannels
	l.Name = st.Name

	switch scene.BeamKind(st.BeamKind) {
	case scene.BeamTunnel:
		l.Beam = scene.NewTunnelBeam()
		if st.Tunnel != nil {
			restoreTunnel(l.Beam.Tunnel, st.Tunnel)
		}
	case scene.BeamLine:
		l.Beam = scene.NewLineBeam()
		if st.Line != nil {
			restoreLine(l.Beam.Line, st.Line)
		}
	default:
		l.Beam = scene.Beam{}
	}
}

func restoreAnimators(mod *anim.ClipModulator, states []AnimatorState) {
	for i, as := range states {
		if i >= mod.Len() {
			break
		}
		a := mod.Animator(i)
		a.Waveform = waveform.Kind(as.Waveform)
		a.Speed = scene.NewBipolar(as.Speed)
		a.Weight = scene.NewUnipolar(as.Weight)
		a.Smoothing = scene.NewUnipolar(as.Smoothing)
		a.DutyCycle = scene.NewUnipolar(as.DutyCycle)
		a.Pulse = as.Pulse
		a.ClockLocked = as.ClockLocked
		mod.SetTarget(i, scene.ParameterId(as.Target))
		mod.SetMixRule(i, anim.MixRule(as.MixRule))
	}
}

func restoreTunnel(t *scene.Tunnel, st *TunnelState) {
	t.RotationSpeed = scene.NewBipolar(st.RotationSpeed)
	t.MarqueeSpeed = scene.NewBipolar(st.MarqueeSpeed)
	t.Thickness = scene.NewUnipolar(st.Thickness)
	t.Size = scene.NewUnipolar(st.Size)
	t.AspectRatio = scene.NewUnipolar(st.AspectRatio)
	t.ColCenter = scene.NewPhase(st.ColCenter)
	t.ColWidth = scene.NewUnipolar(st.ColWidth)
	t.ColSpread = scene.NewUnipolar(st.ColSpread)
	t.ColSaturation = scene.NewUnipolar(st.ColSaturation)
	t.Segments = st.Segments
	t.Blacking = st.Blacking
	t.PositionX = st.PositionX
	t.PositionY = st.PositionY
	restoreAnimators(t.Animators, st.Animators)
}

func restoreLine(l *scene.Line, st *LineState) {
	l.Thickness = scene.NewUnipolar(st.Thickness)
	l.Length = scene.NewUnipolar(st.Length)
	l.PositionX = st.PositionX
	l.PositionY = st.PositionY
	l.Rotation = scene.NewPhase(st.Rotation)
	l.Color = scene.Color{
		Hue: scene.NewPhase(st.Hue),
		Sat: scene.NewUnipolar(st.Sat),
		Val: scene.NewUnipolar(st.Val),
	}
	l.StartPhase = scene.NewPhase(st.StartPhase)
	l.StopPhase = scene.NewPhase(st.StopPhase)
	restoreAnimators(l.Animators, st.Animators)
}

// Save captures the show's state and writes it to path as msgpack,
// per the supplemented snapshot-export feature.
func (s *Show) Save(path string) error {
	data, err := msgpack.Marshal(s.Capture(len(s.Mixer.Layers)))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a msgpack snapshot from path and restores it into the show.
func (s *Show) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var st ShowState
	if err := msgpack.Unmarshal(data, &st); err != nil {
		return err
	}
	s.Restore(st)
	return nil
}
