package control

import (
	"sync"

	"tunnelcore/lib/mixer"
	"tunnelcore/lib/scene"
)

// Event is one decoded controller event, already stripped of its
// transport-specific encoding (MIDI status byte, OSC address pattern) and
// normalized to a (surface, control, value) triple. value is unipolar
// [0,1]; boolean controls (note-on/off, OSC bang) map to 1/0.
type Event struct {
	Surface SurfaceID
	Control ControlID
	Value   float64
}

// EchoSink receives state-echo updates the mapper pushes back to
// surfaces after every mutation (LED states, value echoes, full-page
// snapshots), per §4.7. Concrete transports (MIDI output, OSC output,
// Stream Deck LEDs) implement this.
type EchoSink interface {
	Echo(surface SurfaceID, control ControlID, value float64)
}

// pageState tracks one surface's local paging/banking position. Page
// changes are local state, not scene mutations (§4.7).
type pageState struct {
	page int
	bank int
}

// Mapper is the ControlMapper: it owns the binding table, mutates the
// Mixer under a single scene lock, and fans reverse updates out to
// EchoSinks. There are no process-wide singletons — a Mapper is one
// owned aggregate passed around explicitly, per the design notes (§9).
type Mapper struct {
	Table *Table
	Mixer *mixer.Mixer

	mu      sync.Mutex // the "single scene lock" of §4.7
	sinks   map[SurfaceID]EchoSink
	pages   map[SurfaceID]*pageState
	clockTap func(idx int)
	clockNudge func(idx int)
}

// NewMapper builds a Mapper bound to the given mixer and binding table.
func NewMapper(m *mixer.Mixer, t *Table) *Mapper {
	return &Mapper{
		Table: t,
		Mixer: m,
		sinks: make(map[SurfaceID]EchoSink),
		pages: make(map[SurfaceID]*pageState),
	}
}

// RegisterSink attaches the echo destination for a surface.
func (m *Mapper) RegisterSink(surface SurfaceID, sink EchoSink) {
	m.sinks[surface] = sink
}

// OnClockTap/OnClockNudge wire the mapper's ClockTap/ClockNudge targets
// to the owning Show's MasterClock without this package depending on
// lib/clock directly (kept decoupled so control bindings stay agnostic
// of how many clocks exist).
func (m *Mapper) OnClockTap(fn func(idx int))   { m.clockTap = fn }
func (m *Mapper) OnClockNudge(fn func(idx int)) { m.clockNudge = fn }

// Handle applies one controller event under the scene lock, then echoes
// the result back to every mirrored surface. Two surfaces touching the
// same parameter simultaneously resolve last-writer-wins, since Handle
// serializes all mutation under mu (§4.7's conflict rule).
func (m *Mapper) Handle(ev Event) {
	b, ok := m.Table.Lookup(ev.Surface, ev.Control)
	if !ok {
		return // unbound control: discard silently
	}
	v := b.Curve.Apply(clamp01(ev.Value))

	m.mu.Lock()
	m.apply(ev.Surface, b.Target, v)
	m.mu.Unlock()

	m.echo(ev.Surface, ev.Control, b.Target, v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (m *Mapper) apply(surface SurfaceID, target TargetPath, v float64) {
	switch target.Kind {
	case TargetLayerLevel:
		if target.Layer >= 0 && target.Layer < len(m.Mixer.Layers) {
			m.Mixer.Layers[target.Layer].Level = scene.NewUnipolar(v)
		}
	case TargetLayerMask:
		if target.Layer >= 0 && target.Layer < len(m.Mixer.Layers) {
			m.Mixer.Layers[target.Layer].Mask = v > 0.5
		}
	case TargetLayerBump:
		if v > 0.5 && target.Layer >= 0 && target.Layer < len(m.Mixer.Layers) {
			m.Mixer.Layers[target.Layer].Bump()
		}
	case TargetBeamParam:
		m.applyBeamParam(target, v)
	case TargetAnimatorSpeed:
		m.applyAnimatorField(target, func(a animMutator) { a.setSpeed(v) })
	case TargetAnimatorTarget:
		m.applyAnimatorField(target, func(a animMutator) { a.setTarget(target.Param) })
	case TargetClockTap:
		if m.clockTap != nil {
			m.clockTap(target.Layer)
		}
	case TargetClockNudge:
		if m.clockNudge != nil {
			m.clockNudge(target.Layer)
		}
	case TargetPageSelect:
		m.pageFor(surface).page = int(v)
		m.pushPageSnapshot(surface)
	case TargetBankSelect:
		m.pageFor(surface).bank = int(v)
		m.pushPageSnapshot(surface)
	}
}

// pushPageSnapshot echoes every currently-bound control's live value back
// to surface after a page or bank change. The binding table is not paged,
// so this is every binding on the surface, whatever the active page or
// bank. Momentary-action bindings
// (bump, clock tap/nudge, page/bank select) have no steady-state value
// and are skipped.
func (m *Mapper) pushPageSnapshot(surface SurfaceID) {
	sink, ok := m.sinks[surface]
	if !ok {
		return
	}
	for control, b := range m.Table.BindingsFor(surface) {
		if v, ok := m.currentValue(b.Target); ok {
			sink.Echo(surface, control, v)
		}
	}
}

func (m *Mapper) pageFor(surface SurfaceID) *pageState {
	p, ok := m.pages[surface]
	if !ok {
		p = &pageState{}
		m.pages[surface] = p
	}
	return p
}

func (m *Mapper) echo(surface SurfaceID, control ControlID, target TargetPath, v float64) {
	if sink, ok := m.sinks[surface]; ok {
		sink.Echo(surface, control, v)
	}
	for _, other := range m.Table.MirrorsFor(surface, control) {
		if sink, ok := m.sinks[other]; ok {
			sink.Echo(other, control, v)
		}
	}
}
