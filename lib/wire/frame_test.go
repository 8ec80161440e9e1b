package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunnelcore/lib/mixer"
	"tunnelcore/lib/scene"
)

func arcRecordWithLevel(level float64) scene.ArcRecord {
	return scene.ArcRecord{Level: level}
}

func TestRoundTripEmptyFrame(t *testing.T) {
	f := FromMixerFrame(0, 1000, mixer.Frame{})
	data, err := f.Marshal()
	assert.NoError(t, err)

	got, err := Unmarshal(data)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), got.FrameNumber)
	assert.Equal(t, int64(1000), got.TimestampMs)
	assert.Empty(t, got.Arcs)
	assert.Empty(t, got.Lines)
}

func TestRoundTripArcsOnly(t *testing.T) {
	f := Frame{
		FrameNumber: 7,
		TimestampMs: 42,
		Arcs: []ArcWire{
			{Level: 255, Thickness: 0.5, Hue: 0.1, Sat: 0.2, Val: 255, X: -0.25, Y: 0.1, RadX: 0.3, RadY: 0.3, Start: 0, Stop: 0.2, RotAngle: 0.9},
		},
	}
	data, err := f.Marshal()
	assert.NoError(t, err)

	got, err := Unmarshal(data)
	assert.NoError(t, err)
	assert.Equal(t, f.Arcs, got.Arcs)
	assert.Empty(t, got.Lines)
}

func TestRoundTripArcsAndLines(t *testing.T) {
	f := Frame{
		FrameNumber: 1,
		TimestampMs: 2,
		Arcs:        []ArcWire{{Level: 128, Val: 128}},
		Lines:       []LineWire{{Level: 64, Val: 64, Length: 0.5}},
	}
	data, err := f.Marshal()
	assert.NoError(t, err)

	got, err := Unmarshal(data)
	assert.NoError(t, err)
	assert.Equal(t, f.Arcs, got.Arcs)
	assert.Equal(t, f.Lines, got.Lines)
}

func TestLevelScaledToByteRange(t *testing.T) {
	w := ToArcWire(arcRecordWithLevel(1.0))
	assert.Equal(t, uint32(255), w.Level)
	w = ToArcWire(arcRecordWithLevel(0))
	assert.Equal(t, uint32(0), w.Level)
}
