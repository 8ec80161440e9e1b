// Package mixer implements the ordered, leveled, maskable layering of
// beams described in §4.5: the Mixer walks its layers in order and
// produces one video channel's flattened draw-command list per tick.
package mixer

import (
	"time"

	"tunnelcore/lib/scene"
)

// bumpFullDuration and bumpDecayDuration implement the transient-override
// state machine from §4.9: 100ms at full level, then a linear decay to
// zero over the following 300ms.
const (
	bumpFullDuration  = 100 * time.Millisecond
	bumpDecayDuration = 300 * time.Millisecond
)

// Layer is one slot in the ordered composition stack (§3). An empty slot
// carries BeamEmpty as its placeholder beam, per the dense-slot invariant.
type Layer struct {
	Beam          scene.Beam
	Level         scene.Unipolar
	Mask          bool
	VideoChannels uint32 // bit i set => visible on channel i
	Name          string

	bumpElapsed   time.Duration
	bumpTriggered bool
}

// Bump starts (or restarts) the transient full-level override.
func (l *Layer) Bump() {
	l.bumpTriggered = true
	l.bumpElapsed = 0
}

// bumpLevel returns the current transient override value, decaying from
// 1.0 to 0.0 per the timing above, or 0 if no bump is in flight.
func (l *Layer) bumpLevel() float64 {
	if !l.bumpTriggered {
		return 0
	}
	switch {
	case l.bumpElapsed <= bumpFullDuration:
		return 1
	case l.bumpElapsed <= bumpFullDuration+bumpDecayDuration:
		remaining := bumpFullDuration + bumpDecayDuration - l.bumpElapsed
		return float64(remaining) / float64(bumpDecayDuration)
	default:
		l.bumpTriggered = false
		return 0
	}
}

// advance steps the bump decay timer by dt.
func (l *Layer) advance(dt time.Duration) {
	if l.bumpTriggered {
		l.bumpElapsed += dt
	}
}

// effectiveLevel is max(level, bump_level) per §4.5.
func (l *Layer) effectiveLevel() float64 {
	lvl := float64(l.Level)
	b := l.bumpLevel()
	if b > lvl {
		return b
	}
	return lvl
}

// visibleOn reports whether this layer contributes to the given channel.
func (l *Layer) visibleOn(channel int) bool {
	return l.VideoChannels&(1<<uint(channel)) != 0
}

// Frame is one video channel's flattened draw-command output for a tick.
type Frame struct {
	Arcs  []scene.ArcRecord
	Lines []scene.LineRecord
}

// Mixer holds a fixed-length ordered sequence of layers (§3), typically
// 16 or 32 deep.
type Mixer struct {
	Layers []Layer
}

// New builds a Mixer with n empty layers, each defaulting to channel 0.
func New(n int) *Mixer {
	m := &Mixer{Layers: make([]Layer, n)}
	for i := range m.Layers {
		m.Layers[i].VideoChannels = 1
	}
	return m
}

// Advance steps every layer's bump decay timer by dt.
func (m *Mixer) Advance(dt time.Duration) {
	for i := range m.Layers {
		m.Layers[i].advance(dt)
	}
}

// Render walks the layers in index order for the given channel and
// produces that channel's flattened draw-command list, per §4.5: lower
// index layers are emitted first so the client's "over" compositing
// matches layer order (§3 invariant).
//
// Mask semantics resolve the open question in §9 with the simpler rule:
// a masked layer suppresses only itself, never other layers.
func (m *Mixer) Render(channel int, masterPhase float64) Frame {
	var out Frame
	for i := range m.Layers {
		l := &m.Layers[i]
		if l.Beam.Kind == scene.BeamEmpty || !l.visibleOn(channel) {
			continue
		}
		if l.Mask {
			continue
		}
		effLevel := l.effectiveLevel()
		if effLevel <= 0 {
			continue
		}

		arcs, lines := l.Beam.Render(masterPhase)
		for _, a := range arcs {
			a.Level = effLevel
			out.Arcs = append(out.Arcs, a)
		}
		for _, ln := range lines {
			ln.Level = effLevel
			out.Lines = append(out.Lines, ln)
		}
	}
	return out
}

// AdvanceBeams steps every populated layer's beam animation state by dt
// beats, evaluated against the master beat-phase.
func (m *Mixer) AdvanceBeams(dt, masterPhase float64) {
	for i := range m.Layers {
		if m.Layers[i].Beam.Kind != scene.BeamEmpty {
			m.Layers[i].Beam.Advance(dt, masterPhase)
		}
	}
}

// SetLayer installs a beam into slot i, replacing whatever was there.
func (m *Mixer) SetLayer(i int, b scene.Beam) {
	m.Layers[i].Beam = b
}

// Clear empties slot i back to the placeholder beam.
func (m *Mixer) Clear(i int) {
	m.Layers[i].Beam = scene.Beam{}
}
