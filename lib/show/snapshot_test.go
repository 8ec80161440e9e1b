package show

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunnelcore/lib/control"
	"tunnelcore/lib/publish"
	"tunnelcore/lib/scene"
)

func TestCaptureRestoreRoundTrip(t *testing.T) {
	pub, err := publish.Listen(":0")
	assert.NoError(t, err)
	defer pub.Close()

	table := control.NewTable()
	s := New(2, table, pub)
	s.Mixer.SetLayer(0, scene.NewTunnelBeam())
	s.Mixer.Layers[0].Level = scene.NewUnipolar(0.6)
	s.Mixer.Layers[0].Beam.Tunnel.Segments = 12
	s.Clock.Primary.SetBPM(128)
	s.Palette.SetContents([]scene.Color{{Hue: scene.NewPhase(0.25)}, {Hue: scene.NewPhase(0.75)}})

	st := s.Capture(1)

	fresh := New(2, control.NewTable(), pub)
	fresh.Restore(st)

	assert.Equal(t, 12, fresh.Mixer.Layers[0].Beam.Tunnel.Segments)
	assert.InDelta(t, 0.6, float64(fresh.Mixer.Layers[0].Level), 1e-9)
	assert.InDelta(t, 128, fresh.Clock.Primary.BPM(), 1e-9)
	assert.Len(t, fresh.Palette.Contents(), 2)
	assert.Equal(t, scene.NewPhase(0.75), fresh.Palette.Contents()[1].Hue)
}

func TestRestoreIgnoresExtraLayers(t *testing.T) {
	pub, err := publish.Listen(":0")
	assert.NoError(t, err)
	defer pub.Close()

	s := New(1, control.NewTable(), pub)
	st := ShowState{Layers: []LayerState{{}, {}, {}}}

	assert.NotPanics(t, func() { s.Restore(st) })
}
