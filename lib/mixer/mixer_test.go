package mixer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tunnelcore/lib/scene"
)

func TestEmptySceneProducesNoCommands(t *testing.T) {
	m := New(16)
	f := m.Render(0, 0)
	assert.Empty(t, f.Arcs)
	assert.Empty(t, f.Lines)
}

func TestLayerOrderPreserved(t *testing.T) {
	m := New(2)
	t0 := scene.NewTunnel()
	t0.Segments = 1
	t0.ColCenter = scene.NewPhase(0.1)
	t1 := scene.NewTunnel()
	t1.Segments = 1
	t1.ColCenter = scene.NewPhase(0.9)

	m.SetLayer(0, scene.Beam{Kind: scene.BeamTunnel, Tunnel: t0})
	m.SetLayer(1, scene.Beam{Kind: scene.BeamTunnel, Tunnel: t1})
	m.Layers[0].Level = scene.NewUnipolar(1)
	m.Layers[1].Level = scene.NewUnipolar(1)

	f := m.Render(0, 0)
	assert.Len(t, f.Arcs, 2)
	assert.InDelta(t, 0.1, f.Arcs[0].Hue, 1e-9)
	assert.InDelta(t, 0.9, f.Arcs[1].Hue, 1e-9)
}

func TestZeroLevelLayerSkipped(t *testing.T) {
	m := New(1)
	tun := scene.NewTunnel()
	tun.Segments = 2
	m.SetLayer(0, scene.Beam{Kind: scene.BeamTunnel, Tunnel: tun})
	m.Layers[0].Level = 0

	f := m.Render(0, 0)
	assert.Empty(t, f.Arcs)
}

func TestMaskSuppressesOnlyItself(t *testing.T) {
	m := New(2)
	tun0 := scene.NewTunnel()
	tun0.Segments = 1
	tun1 := scene.NewTunnel()
	tun1.Segments = 1

	m.SetLayer(0, scene.Beam{Kind: scene.BeamTunnel, Tunnel: tun0})
	m.Layers[0].Level = scene.NewUnipolar(1)
	m.Layers[0].Mask = true

	m.SetLayer(1, scene.Beam{Kind: scene.BeamTunnel, Tunnel: tun1})
	m.Layers[1].Level = scene.NewUnipolar(1)

	f := m.Render(0, 0)
	assert.Len(t, f.Arcs, 1)
}

func TestBumpDecay(t *testing.T) {
	m := New(1)
	tun := scene.NewTunnel()
	tun.Segments = 1
	m.SetLayer(0, scene.Beam{Kind: scene.BeamTunnel, Tunnel: tun})
	m.Layers[0].Level = 0
	m.Layers[0].Bump()

	f := m.Render(0, 0)
	assert.Len(t, f.Arcs, 1)
	assert.Equal(t, 1.0, f.Arcs[0].Level)

	m.Advance(400 * time.Millisecond)
	f = m.Render(0, 0)
	assert.Empty(t, f.Arcs)
}
