package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTunnelStaticSegments(t *testing.T) {
	tun := NewTunnel()
	tun.Segments = 6
	tun.Thickness = NewUnipolar(0.5)
	tun.ColCenter = NewPhase(0)
	tun.Size = NewUnipolar(0.25)
	tun.AspectRatio = NewUnipolar(1)

	arcs := tun.Render(0)
	assert.Len(t, arcs, 6)
	for k, a := range arcs {
		assert.InDelta(t, float64(k)/6, a.Start, 1e-9)
		assert.InDelta(t, 0.5/6, float64(NewPhase(a.Stop-a.Start)), 1e-9)
		assert.Equal(t, 0.0, a.RotAngle)
	}
}

func TestTunnelBlacking(t *testing.T) {
	tun := NewTunnel()
	tun.Segments = 8
	tun.Blacking = 1

	arcs := tun.Render(0)
	assert.Len(t, arcs, 4)
	for _, a := range arcs {
		idx := int(a.Start * 8)
		assert.Equal(t, 0, idx%2, "expected even segment index, got start=%v", a.Start)
	}
}

func TestTunnelNoArcOutsideUnitPhase(t *testing.T) {
	tun := NewTunnel()
	tun.Segments = 5
	for _, a := range tun.Render(0.5) {
		assert.GreaterOrEqual(t, a.Start, 0.0)
		assert.Less(t, a.Start, 1.0)
		assert.GreaterOrEqual(t, a.Stop, 0.0)
		assert.Less(t, a.Stop, 1.0)
	}
}

func TestTunnelMinSegmentsClamp(t *testing.T) {
	tun := NewTunnel()
	tun.Segments = 0
	arcs := tun.Render(0)
	assert.Equal(t, 1, tun.Segments)
	assert.Len(t, arcs, 1)
}
