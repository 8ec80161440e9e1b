package scene

import "tunnelcore/lib/anim"

// Line is the Beam-line variant: a single animated beam segment rather
// than a ring of arcs, per the Beam/Lookable sum type in §3.
type Line struct {
	Thickness  Unipolar
	Length     Unipolar
	PositionX  float64
	PositionY  float64
	Rotation   Phase
	Color      Color
	StartPhase Phase
	StopPhase  Phase

	Animators *anim.ClipModulator
}

// NewLine returns a Line with an attached animator bank. StartPhase and
// StopPhase are left at their zero value; Render treats an unconfigured
// (equal) start/stop pair as a full revolution rather than a degenerate
// zero-length span, since Phase wraps at 1 and so can never itself hold a
// value distinguishable from 0.
func NewLine() *Line {
	return &Line{
		Thickness: NewUnipolar(0.2),
		Length:    NewUnipolar(0.5),
		Animators: anim.NewClipModulator(NAnimators),
	}
}

// Advance steps the line's animator bank.
func (l *Line) Advance(dt, masterPhase float64) {
	l.Animators.Advance(dt)
}

// Render computes the line's single draw command for this frame.
func (l *Line) Render(masterPhase float64) []LineRecord {
	mod := l.Animators.Evaluate(masterPhase)
	thickness := Resolve(ParamLineThickness, float64(l.Thickness), mod[ParamLineThickness])
	length := Resolve(ParamLineLength, float64(l.Length), mod[ParamLineLength])
	rotation := Resolve(ParamLineRotation, float64(l.Rotation), mod[ParamLineRotation])
	start := Resolve(ParamLineStartPhase, float64(l.StartPhase), mod[ParamLineStartPhase])
	stop := Resolve(ParamLineStopPhase, float64(l.StopPhase), mod[ParamLineStopPhase])
	if stop == start {
		// A zero-length span is never the intent: start==stop renders as
		// one full revolution from start back around to itself.
		stop = start + 1
	}

	return []LineRecord{{
		Level:     1,
		Thickness: thickness,
		Hue:       float64(l.Color.Hue),
		Sat:       float64(l.Color.Sat),
		Val:       float64(l.Color.Val),
		X:         l.PositionX,
		Y:         l.PositionY,
		Length:    length,
		Start:     start,
		Stop:      stop,
		RotAngle:  rotation,
	}}
}
