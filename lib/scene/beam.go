package scene

// BeamKind tags which variant a Beam currently holds. Per the design
// notes' resolution of "inheritance of Beam types": Beam is expressed as
// a tagged variant, not a class hierarchy, so the mixer and publisher can
// work against one concrete type.
type BeamKind int

const (
	BeamEmpty BeamKind = iota
	BeamTunnel
	BeamLine
)

// Beam is the tagged sum type described in §3: exactly one of Tunnel or
// Line is populated, selected by Kind. BeamEmpty is the placeholder beam
// that occupies an unpopulated mixer slot.
type Beam struct {
	Kind   BeamKind
	Tunnel *Tunnel
	Line   *Line
}

// NewTunnelBeam wraps a fresh Tunnel as a Beam.
func NewTunnelBeam() Beam {
	return Beam{Kind: BeamTunnel, Tunnel: NewTunnel()}
}

// NewLineBeam wraps a fresh Line as a Beam.
func NewLineBeam() Beam {
	return Beam{Kind: BeamLine, Line: NewLine()}
}

// Advance steps the beam's internal animation state by dt beats.
func (b Beam) Advance(dt, masterPhase float64) {
	switch b.Kind {
	case BeamTunnel:
		b.Tunnel.Advance(dt, masterPhase)
	case BeamLine:
		b.Line.Advance(dt, masterPhase)
	}
}

// Render produces this tick's draw commands for the beam, split by
// record type since the wire envelope distinguishes arc and line lists.
func (b Beam) Render(masterPhase float64) (arcs []ArcRecord, lines []LineRecord) {
	switch b.Kind {
	case BeamTunnel:
		return b.Tunnel.Render(masterPhase), nil
	case BeamLine:
		return nil, b.Line.Render(masterPhase)
	default:
		return nil, nil
	}
}
