package show

// LayerState is the persisted form of one mixer.Layer: its beam
// configuration and the console-level settings (level, mask, channel
// routing) an operator would expect a saved show to restore. Bump's
// transient decay state is never persisted — it always starts idle.
type LayerState struct {
	BeamKind      int          `msgpack:"beam_kind"`
	Tunnel        *TunnelState `msgpack:"tunnel,omitempty"`
	Line          *LineState   `msgpack:"line,omitempty"`
	Level         float64      `msgpack:"level"`
	Mask          bool         `msgpack:"mask"`
	VideoChannels uint32       `msgpack:"video_channels"`
	Name          string       `msgpack:"name"`
}

// AnimatorState is the persisted form of one anim.Animator bound into a
// ClipModulator slot.
type AnimatorState struct {
	Target      int     `msgpack:"target"`
	Waveform    int     `msgpack:"waveform"`
	MixRule     int     `msgpack:"mix_rule"`
	Speed       float64 `msgpack:"speed"`
	Weight      float64 `msgpack:"weight"`
	Smoothing   float64 `msgpack:"smoothing"`
	DutyCycle   float64 `msgpack:"duty_cycle"`
	Pulse       bool    `msgpack:"pulse"`
	ClockLocked bool    `msgpack:"clock_locked"`
}

// TunnelState is the persisted, configured (pre-modulation) knob set of a
// Tunnel beam. Continuous accumulators (rotation phase, marquee offset)
// are deliberately not persisted — a reloaded show resumes from rest,
// not mid-rotation.
type TunnelState struct {
	RotationSpeed float64         `msgpack:"rotation_speed"`
	MarqueeSpeed  float64         `msgpack:"marquee_speed"`
	Thickness     float64         `msgpack:"thickness"`
	Size          float64         `msgpack:"size"`
	AspectRatio   float64         `msgpack:"aspect_ratio"`
	ColCenter     float64         `msgpack:"col_center"`
	ColWidth      float64         `msgpack:"col_width"`
	ColSpread     float64         `msgpack:"col_spread"`
	ColSaturation float64         `msgpack:"col_saturation"`
	Segments      int             `msgpack:"segments"`
	Blacking      int             `msgpack:"blacking"`
	PositionX     float64         `msgpack:"position_x"`
	PositionY     float64         `msgpack:"position_y"`
	Animators     []AnimatorState `msgpack:"animators"`
}

// LineState is the persisted, configured knob set of a Line beam.
type LineState struct {
	Thickness  float64         `msgpack:"thickness"`
	Length     float64         `msgpack:"length"`
	PositionX  float64         `msgpack:"position_x"`
	PositionY  float64         `msgpack:"position_y"`
	Rotation   float64         `msgpack:"rotation"`
	Hue        float64         `msgpack:"hue"`
	Sat        float64         `msgpack:"sat"`
	Val        float64         `msgpack:"val"`
	StartPhase float64         `msgpack:"start_phase"`
	StopPhase  float64         `msgpack:"stop_phase"`
	Animators  []AnimatorState `msgpack:"animators"`
}

// ClockState is the persisted tempo of one clock (primary or auxiliary).
type ClockState struct {
	BPM float64 `msgpack:"bpm"`
}

// ColorState is the persisted form of one scene.Color palette entry.
type ColorState struct {
	Hue float64 `msgpack:"hue"`
	Sat float64 `msgpack:"sat"`
	Val float64 `msgpack:"val"`
}

// ShowState is the full persisted snapshot: every mixer layer, the color
// palette, and the MasterClock's tempo bank, per the supplemented
// save/restore feature.
type ShowState struct {
	Layers      []LayerState `msgpack:"layers"`
	Palette     []ColorState `msgpack:"palette"`
	Primary     ClockState   `msgpack:"primary_clock"`
	Aux         []ClockState `msgpack:"aux_clocks"`
	NumChannels int          `msgpack:"num_channels"`
}
