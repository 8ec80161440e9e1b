package control

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// FindInPort and FindOutPort locate a MIDI port by substring match on its
// name, generalizing xtouch.FindInPort/FindOutPort for any controller
// rather than just the X-Touch.
func FindInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("control: no MIDI input port matching %q", substr)
}

func FindOutPort(substr string) (drivers.Out, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("control: no MIDI output port matching %q", substr)
}

// MIDIListener wraps midi.ListenTo to decode a port's message stream into
// Events, the same shape OSCListener and StreamDeckSurface expose so the
// Show tick loop can drain any surface through one EventSource interface.
type MIDIListener struct {
	events chan Event
	stop   func()
}

// ListenMIDI starts decoding port in the background using dec.
func ListenMIDI(dec MIDIDecoder, port drivers.In) (*MIDIListener, error) {
	l := &MIDIListener{events: make(chan Event, 256)}
	stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		if ev, ok := dec.Decode(msg); ok {
			select {
			case l.events <- ev:
			default:
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("control: listen midi: %w", err)
	}
	l.stop = stop
	return l, nil
}

// Events returns the channel of decoded controller events.
func (l *MIDIListener) Events() <-chan Event { return l.events }

// Close stops listening.
func (l *MIDIListener) Close() {
	if l.stop != nil {
		l.stop()
	}
}

// MIDIDecoder turns raw MIDI messages from a control surface (APC40/
// APC20-style, per §4.7/§6.4) into normalized Events. The decode style —
// trying msg.GetNoteOn, msg.GetNoteOff and msg.GetControlChange in turn —
// is generalized from the teacher's xtouch.Decoder.Decode.
type MIDIDecoder struct {
	Surface SurfaceID
}

// Decode returns the normalized event for msg, or ok=false for message
// kinds the control plane does not bind against (e.g. clock/transport
// messages), per §6.4: "MIDI: Note-on/off and Control Change mapped
// through the binding table."
func (d MIDIDecoder) Decode(msg midi.Message) (Event, bool) {
	var channel, key, velocity uint8
	if msg.GetNoteOn(&channel, &key, &velocity) {
		return Event{Surface: d.Surface, Control: noteControlID(key), Value: boolToValue(velocity > 0)}, true
	}
	if msg.GetNoteOff(&channel, &key, &velocity) {
		return Event{Surface: d.Surface, Control: noteControlID(key), Value: 0}, true
	}
	var controller, value uint8
	if msg.GetControlChange(&channel, &controller, &value) {
		return Event{Surface: d.Surface, Control: ccControlID(controller), Value: float64(value) / 127.0}, true
	}
	return Event{}, false
}

func noteControlID(key uint8) ControlID { return ControlID(fmt.Sprintf("note%d", key)) }
func ccControlID(cc uint8) ControlID    { return ControlID(fmt.Sprintf("cc%d", cc)) }

func boolToValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MIDIOutput pushes echo updates back to a MIDI surface as Note-on
// velocity (LED state) or Control Change (ring/fader) messages.
type MIDIOutput struct {
	Surface SurfaceID
	send    func(midi.Message) error
}

// NewMIDIOutput opens an output port for echo delivery.
func NewMIDIOutput(surface SurfaceID, port drivers.Out) (*MIDIOutput, error) {
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("control: open midi output: %w", err)
	}
	return &MIDIOutput{Surface: surface, send: send}, nil
}

// Echo implements EchoSink by writing a Note-on (for note controls) or a
// Control Change (for cc controls) carrying the echoed value.
func (o *MIDIOutput) Echo(surface SurfaceID, control ControlID, value float64) {
	var kind string
	var n uint8
	if _, err := fmt.Sscanf(string(control), "note%d", &n); err == nil {
		kind = "note"
	} else if _, err := fmt.Sscanf(string(control), "cc%d", &n); err == nil {
		kind = "cc"
	} else {
		return
	}
	v := uint8(value * 127)
	if kind == "note" {
		o.send(midi.NoteOn(0, n, v))
	} else {
		o.send(midi.ControlChange(0, n, v))
	}
}
