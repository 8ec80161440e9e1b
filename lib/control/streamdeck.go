package control

import (
	"fmt"
	"image/color"

	"tunnelcore/lib/streamdeck"
)

// StreamDeckSurface adapts a streamdeck.Device into the control plane: key
// presses become Events, and state echoes back as per-key solid colors —
// the same SetKeyColor primitive the teacher's deckcolor/decktest tools
// exercise directly, now driven by the ControlMapper's echo path instead
// of a one-shot CLI command.
type StreamDeckSurface struct {
	Surface SurfaceID
	dev     *streamdeck.Device
	events  chan Event

	onColor color.Color
	offColor color.Color
}

// NewStreamDeckSurface wraps dev and starts decoding its key stream.
func NewStreamDeckSurface(surface SurfaceID, dev *streamdeck.Device) *StreamDeckSurface {
	s := &StreamDeckSurface{
		Surface:  surface,
		dev:      dev,
		events:   make(chan Event, 64),
		onColor:  color.RGBA{R: 0, G: 200, B: 80, A: 255},
		offColor: color.Black,
	}
	go s.readLoop()
	return s
}

func (s *StreamDeckSurface) readLoop() {
	input := make(chan streamdeck.InputEvent, 64)
	go s.dev.ReadInput(input)
	for ev := range input {
		switch {
		case ev.Key != nil:
			s.events <- Event{
				Surface: s.Surface,
				Control: keyControlID(ev.Key.Key),
				Value:   boolToValue(ev.Key.Pressed),
			}
		case ev.Encoder != nil && ev.Encoder.Delta != 0:
			s.events <- Event{
				Surface: s.Surface,
				Control: encoderControlID(ev.Encoder.Encoder),
				Value:   clamp01(0.5 + float64(ev.Encoder.Delta)/127.0),
			}
		}
	}
}

func keyControlID(key int) ControlID      { return ControlID(fmt.Sprintf("key%d", key)) }
func encoderControlID(enc int) ControlID  { return ControlID(fmt.Sprintf("enc%d", enc)) }

// Events returns the channel of decoded controller events.
func (s *StreamDeckSurface) Events() <-chan Event { return s.events }

// Echo implements EchoSink by painting the bound key solid green when the
// echoed value is "on" (above 0.5) and black otherwise, mirroring the
// APC40 LED-feedback approach (button_LED.py) the design notes point to
// for surface-echo grounding.
func (s *StreamDeckSurface) Echo(surface SurfaceID, control ControlID, value float64) {
	var key int
	if _, err := fmt.Sscanf(string(control), "key%d", &key); err != nil {
		return
	}
	c := s.offColor
	if value > 0.5 {
		c = s.onColor
	}
	s.dev.SetKeyColor(key, c)
}
