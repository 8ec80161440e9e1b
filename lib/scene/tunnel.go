package scene

import "tunnelcore/lib/anim"

// NAnimators is the fixed bank size N for every Tunnel's ClipModulator,
// per the spec's "typically 4" and the original's n_anim=4.
const NAnimators = 4

// Tunnel is the Beam variant computing one frame's worth of concentric
// arcs, per §4.4. All knob fields are configured values in [0,1] (or
// [-1,1] for bipolar knobs); animators is the bank of N modulators
// attached to this beam's ParameterId set.
type Tunnel struct {
	RotationSpeed  Bipolar
	MarqueeSpeed   Bipolar
	Thickness      Unipolar
	Size           Unipolar
	AspectRatio    Unipolar
	ColCenter      Phase
	ColWidth       Unipolar
	ColSpread      Unipolar
	ColSaturation  Unipolar
	Segments       int
	Blacking       int
	PositionX      float64
	PositionY      float64
	Animators      *anim.ClipModulator

	// rotationPhase and marqueeOffset are the tunnel's own continuous
	// state, accumulated every tick from the resolved (base+modulated)
	// speeds; they are not driven by the master clock (§4.4).
	rotationPhase float64
	marqueeOffset float64
}

// NewTunnel returns a Tunnel with sane defaults and an attached animator
// bank of NAnimators slots, all initially identity (target=none).
func NewTunnel() *Tunnel {
	return &Tunnel{
		Thickness:     NewUnipolar(0.5),
		Size:          NewUnipolar(0.25),
		AspectRatio:   NewUnipolar(1),
		ColSaturation: NewUnipolar(1),
		Segments:      16,
		Animators:     anim.NewClipModulator(NAnimators),
	}
}

// Advance steps the tunnel's internal rotation/marquee accumulators by dt
// beats using the resolved (base + modulated) speeds, and steps the
// animator bank's own free-run accumulators.
func (t *Tunnel) Advance(dt, masterPhase float64) {
	t.Animators.Advance(dt)
	mod := t.Animators.Evaluate(masterPhase)
	rotSpeed := Resolve(ParamRotationSpeed, float64(t.RotationSpeed), mod[ParamRotationSpeed])
	marqSpeed := Resolve(ParamMarqueeSpeed, float64(t.MarqueeSpeed), mod[ParamMarqueeSpeed])
	t.rotationPhase = float64(NewPhase(t.rotationPhase + rotSpeed*dt))
	t.marqueeOffset = float64(NewPhase(t.marqueeOffset + marqSpeed*dt))
}

// blackedOut reports whether segment i is skipped under the configured
// blacking pattern. blacking==0 draws every segment. For non-negative
// blacking b, every (b+1)-th segment (1-indexed) is masked out; for
// negative blacking -k, only every (k+1)-th segment is drawn.
func blackedOut(i, blacking int) bool {
	if blacking == 0 {
		return false
	}
	if blacking > 0 {
		return (i+1)%(blacking+1) == 0
	}
	k := -blacking
	return (i+1)%(k+1) != 0
}

// Render computes one frame's arcs per §4.4: resolve the modulated
// parameter set, then emit one arc per un-blacked segment.
func (t *Tunnel) Render(masterPhase float64) []ArcRecord {
	if t.Segments < 1 {
		// Internal invariant violation (§7): clamp to 1, never render 0.
		t.Segments = 1
	}

	mod := t.Animators.Evaluate(masterPhase)
	thickness := Resolve(ParamThickness, float64(t.Thickness), mod[ParamThickness])
	size := Resolve(ParamSize, float64(t.Size), mod[ParamSize])
	aspect := Resolve(ParamAspectRatio, float64(t.AspectRatio), mod[ParamAspectRatio])
	colCenter := Resolve(ParamColCenter, float64(t.ColCenter), mod[ParamColCenter])
	colWidth := Resolve(ParamColWidth, float64(t.ColWidth), mod[ParamColWidth])
	colSpread := Resolve(ParamColSpread, float64(t.ColSpread), mod[ParamColSpread])
	colSat := Resolve(ParamColSaturation, float64(t.ColSaturation), mod[ParamColSaturation])

	segWidth := 1.0 / float64(t.Segments)
	radX := size * aspect
	radY := size

	arcs := make([]ArcRecord, 0, t.Segments)
	for i := 0; i < t.Segments; i++ {
		if blackedOut(i, t.Blacking) {
			continue
		}
		ramp := float64(i) / float64(t.Segments)
		centerPhase := float64(NewPhase(t.marqueeOffset + float64(i)*segWidth))

		hue := float64(NewPhase(colCenter + colSpread*ramp))
		sat := Clamp01(colSat * (1 - colWidth*ramp))

		arcs = append(arcs, ArcRecord{
			Level:     1,
			Thickness: thickness,
			Hue:       hue,
			Sat:       sat,
			Val:       1,
			X:         t.PositionX,
			Y:         t.PositionY,
			RadX:      radX,
			RadY:      radY,
			Start:     centerPhase,
			Stop:      float64(NewPhase(centerPhase + segWidth*thickness)),
			RotAngle:  t.rotationPhase,
		})
	}
	return arcs
}
