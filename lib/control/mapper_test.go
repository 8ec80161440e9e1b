package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunnelcore/lib/mixer"
	"tunnelcore/lib/scene"
)

type fakeSink struct {
	calls []float64
}

func (f *fakeSink) Echo(surface SurfaceID, control ControlID, value float64) {
	f.calls = append(f.calls, value)
}

func TestHandleAppliesLayerLevel(t *testing.T) {
	m := mixer.New(2)
	table := NewTable()
	table.Bind("deck1", "fader0", Binding{Target: TargetPath{Kind: TargetLayerLevel, Layer: 0}})

	mapper := NewMapper(m, table)
	mapper.Handle(Event{Surface: "deck1", Control: "fader0", Value: 0.75})

	assert.InDelta(t, 0.75, float64(m.Layers[0].Level), 1e-9)
}

func TestUnboundControlDiscarded(t *testing.T) {
	m := mixer.New(1)
	table := NewTable()
	mapper := NewMapper(m, table)

	assert.NotPanics(t, func() {
		mapper.Handle(Event{Surface: "deck1", Control: "unbound", Value: 1})
	})
}

func TestCurveInvertAndQuadratic(t *testing.T) {
	assert.InDelta(t, 0.25, CurveInvert.Apply(0.75), 1e-9)
	assert.InDelta(t, 0.25, CurveQuadratic.Apply(0.5), 1e-9)
	assert.InDelta(t, 0.5, CurveLinear.Apply(0.5), 1e-9)
}

func TestMirrorEchoesBothSurfaces(t *testing.T) {
	m := mixer.New(1)
	table := NewTable()
	table.Bind("deck1", "fader0", Binding{Target: TargetPath{Kind: TargetLayerLevel, Layer: 0}})
	table.Mirror("deck1", "fader0", "deck2")

	mapper := NewMapper(m, table)
	s1, s2 := &fakeSink{}, &fakeSink{}
	mapper.RegisterSink("deck1", s1)
	mapper.RegisterSink("deck2", s2)

	mapper.Handle(Event{Surface: "deck1", Control: "fader0", Value: 0.5})

	assert.Equal(t, []float64{0.5}, s1.calls)
	assert.Equal(t, []float64{0.5}, s2.calls)
}

func TestOutOfRangeLayerIsNoOp(t *testing.T) {
	m := mixer.New(1)
	table := NewTable()
	table.Bind("deck1", "fader9", Binding{Target: TargetPath{Kind: TargetLayerLevel, Layer: 9}})
	mapper := NewMapper(m, table)

	assert.NotPanics(t, func() {
		mapper.Handle(Event{Surface: "deck1", Control: "fader9", Value: 1})
	})
}

type recordingSink struct {
	values map[ControlID]float64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{values: make(map[ControlID]float64)}
}

func (r *recordingSink) Echo(surface SurfaceID, control ControlID, value float64) {
	r.values[control] = value
}

func TestPageSelectPushesFullStateSnapshot(t *testing.T) {
	m := mixer.New(2)
	m.Layers[0].Level = scene.NewUnipolar(0.4)
	m.Layers[1].Level = scene.NewUnipolar(0.9)

	table := NewTable()
	table.Bind("deck1", "fader0", Binding{Target: TargetPath{Kind: TargetLayerLevel, Layer: 0}})
	table.Bind("deck1", "fader1", Binding{Target: TargetPath{Kind: TargetLayerLevel, Layer: 1}})
	table.Bind("deck1", "page", Binding{Target: TargetPath{Kind: TargetPageSelect}})

	mapper := NewMapper(m, table)
	sink := newRecordingSink()
	mapper.RegisterSink("deck1", sink)

	mapper.Handle(Event{Surface: "deck1", Control: "page", Value: 1})

	assert.InDelta(t, 0.4, sink.values["fader0"], 1e-9)
	assert.InDelta(t, 0.9, sink.values["fader1"], 1e-9)
}

func TestBankSelectPushesAnimatorSnapshot(t *testing.T) {
	m := mixer.New(1)
	m.Layers[0].Beam = scene.NewTunnelBeam()
	m.Layers[0].Beam.Tunnel.Animators.Animator(0).Speed = scene.NewBipolar(0.5)

	table := NewTable()
	table.Bind("deck1", "knob0", Binding{Target: TargetPath{Kind: TargetAnimatorSpeed, Layer: 0, Slot: 0}})
	table.Bind("deck1", "bank", Binding{Target: TargetPath{Kind: TargetBankSelect}})

	mapper := NewMapper(m, table)
	sink := newRecordingSink()
	mapper.RegisterSink("deck1", sink)

	mapper.Handle(Event{Surface: "deck1", Control: "bank", Value: 0})

	assert.InDelta(t, 0.75, sink.values["knob0"], 1e-9)
}
