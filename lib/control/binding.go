// Package control implements the ControlMapper described in §4.7: a
// binding table routing MIDI/OSC controller events to scene mutations,
// and echoing state back to surfaces after every mutation.
package control

import "tunnelcore/lib/scene"

// TargetKind enumerates the closed set of things a binding can mutate,
// replacing any string-keyed dispatch with the same ParameterId-style
// discipline the design notes mandate for beam parameters (§9).
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetLayerLevel
	TargetLayerMask
	TargetLayerBump
	TargetBeamParam
	TargetAnimatorTarget
	TargetAnimatorSpeed
	TargetClockTap
	TargetClockNudge
	TargetPageSelect
	TargetBankSelect
)

// TargetPath names exactly what a binding mutates: a mixer layer, an
// animator slot within that layer's ClipModulator, or a global clock.
type TargetPath struct {
	Kind    TargetKind
	Layer   int
	Slot    int // animator slot index, when Kind touches a ClipModulator
	Param   scene.ParameterId
}

// Curve remaps a raw unipolar controller value before it is applied to
// the target; Linear is the identity mapping.
type Curve int

const (
	CurveLinear Curve = iota
	CurveInvert
	CurveQuadratic
)

// Apply maps a raw controller value v (already normalized to [0,1]) through
// the curve.
func (c Curve) Apply(v float64) float64 {
	switch c {
	case CurveInvert:
		return 1 - v
	case CurveQuadratic:
		return v * v
	default:
		return v
	}
}

// SurfaceID identifies one physical control surface (a MIDI device or an
// OSC-addressed tablet).
type SurfaceID string

// ControlID identifies one control on a surface: a MIDI CC/note number,
// or an OSC address-pattern suffix.
type ControlID string

// Binding is one row of the binding table: (surface, control) -> (target,
// curve), per §4.7.
type Binding struct {
	Target TargetPath
	Curve  Curve
}

type bindKey struct {
	Surface SurfaceID
	Control ControlID
}

// Table is the read-mostly binding table. Writes (remap operations) are
// expected to be applied at a tick boundary by the owning ControlMapper,
// per §5's "binding table: read-mostly; writes take a short lock and are
// applied at the next tick boundary".
type Table struct {
	bindings map[bindKey]Binding
	// mirrors lists every surface that should receive an echo when a
	// control is handled, keyed by the originating (surface, control) so
	// multi-surface setups stay consistent (§4.7's "bind-mirrored surfaces").
	mirrors map[bindKey][]SurfaceID
}

// NewTable returns an empty binding table.
func NewTable() *Table {
	return &Table{bindings: make(map[bindKey]Binding), mirrors: make(map[bindKey][]SurfaceID)}
}

// Bind installs or replaces the binding for (surface, control).
func (t *Table) Bind(surface SurfaceID, control ControlID, b Binding) {
	t.bindings[bindKey{surface, control}] = b
}

// Lookup resolves (surface, control) to its binding, if any.
func (t *Table) Lookup(surface SurfaceID, control ControlID) (Binding, bool) {
	b, ok := t.bindings[bindKey{surface, control}]
	return b, ok
}

// Mirror registers other as a surface that should receive echo updates
// whenever (surface, control)'s target changes. Used to keep two control
// surfaces touching the same parameter in sync.
func (t *Table) Mirror(surface SurfaceID, control ControlID, other SurfaceID) {
	k := bindKey{surface, control}
	t.mirrors[k] = append(t.mirrors[k], other)
}

// MirrorsFor returns the surfaces mirroring (surface, control), if any.
func (t *Table) MirrorsFor(surface SurfaceID, control ControlID) []SurfaceID {
	return t.mirrors[bindKey{surface, control}]
}

// BindingsFor returns every control bound on the given surface, keyed by
// ControlID. Used to push a full state snapshot to a surface after a
// page/bank change (§4.7).
func (t *Table) BindingsFor(surface SurfaceID) map[ControlID]Binding {
	out := make(map[ControlID]Binding)
	for k, b := range t.bindings {
		if k.Surface == surface {
			out[k.Control] = b
		}
	}
	return out
}
