package control

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"github.com/rs/zerolog/log"
)

// OSC message encode/decode, generalized from the teacher's hand-rolled
// lib/qlab/osc.go (buildOSC/parseOSC) into an exported codec usable by a
// server-side UDP listener rather than a SLIP-framed TCP client. No
// external OSC library is introduced — the teacher already shows the
// idiom for this wire format without one.

func oscPad(n int) int { return (4 - n%4) % 4 }

// EncodeMessage builds a single (non-bundled) OSC 1.0 message.
func EncodeMessage(addr string, args ...interface{}) []byte {
	var buf []byte
	buf = append(buf, []byte(addr)...)
	buf = append(buf, 0)
	for range oscPad(len(addr) + 1) {
		buf = append(buf, 0)
	}

	typetag := ","
	for _, arg := range args {
		switch arg.(type) {
		case int32:
			typetag += "i"
		case float32:
			typetag += "f"
		case string:
			typetag += "s"
		}
	}
	buf = append(buf, []byte(typetag)...)
	buf = append(buf, 0)
	for range oscPad(len(typetag) + 1) {
		buf = append(buf, 0)
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case int32:
			buf = binary.BigEndian.AppendUint32(buf, uint32(v))
		case float32:
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(v))
		case string:
			buf = append(buf, []byte(v)...)
			buf = append(buf, 0)
			for range oscPad(len(v) + 1) {
				buf = append(buf, 0)
			}
		}
	}
	return buf
}

// DecodeMessage parses a single OSC 1.0 message (not a bundle).
func DecodeMessage(data []byte) (addr string, args []interface{}, err error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("osc: message too short")
	}
	end := 0
	for end < len(data) && data[end] != 0 {
		end++
	}
	addr = string(data[:end])
	pos := end + 1 + oscPad(end+1)

	if pos >= len(data) || data[pos] != ',' {
		return addr, nil, nil
	}
	ttEnd := pos
	for ttEnd < len(data) && data[ttEnd] != 0 {
		ttEnd++
	}
	typetag := string(data[pos+1 : ttEnd])
	pos = ttEnd + 1 + oscPad(ttEnd-pos+1)

	for _, tag := range typetag {
		switch tag {
		case 'i':
			if pos+4 > len(data) {
				return addr, args, fmt.Errorf("osc: truncated int32")
			}
			args = append(args, int32(binary.BigEndian.Uint32(data[pos:])))
			pos += 4
		case 'f':
			if pos+4 > len(data) {
				return addr, args, fmt.Errorf("osc: truncated float32")
			}
			args = append(args, math.Float32frombits(binary.BigEndian.Uint32(data[pos:])))
			pos += 4
		case 's':
			send := pos
			for send < len(data) && data[send] != 0 {
				send++
			}
			args = append(args, string(data[pos:send]))
			pos = send + 1 + oscPad(send-pos+1)
		case 'T':
			args = append(args, true)
		case 'F':
			args = append(args, false)
		}
	}
	return addr, args, nil
}

// OSCListener decodes incoming UDP packets into Events, each bound on
// the OSC address pattern as its ControlID (§6.4). Unreliable, no
// acknowledgement to the sender, per the boundary contract.
type OSCListener struct {
	Surface SurfaceID
	conn    net.PacketConn
	events  chan Event
}

// ListenOSC binds addr and starts decoding packets in the background.
func ListenOSC(surface SurfaceID, addr string) (*OSCListener, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("control: listen osc: %w", err)
	}
	l := &OSCListener{Surface: surface, conn: conn, events: make(chan Event, 256)}
	go l.readLoop()
	return l, nil
}

func (l *OSCListener) readLoop() {
	buf := make([]byte, 1500)
	for {
		n, _, err := l.conn.ReadFrom(buf)
		if err != nil {
			return
		}
		addr, args, err := DecodeMessage(buf[:n])
		if err != nil {
			log.Debug().Err(err).Msg("control: malformed osc message, discarding")
			continue
		}
		var v float64 = 1
		if len(args) > 0 {
			switch a := args[0].(type) {
			case float32:
				v = float64(a)
			case int32:
				v = float64(a)
			case bool:
				v = boolToValue(a)
			}
		}
		select {
		case l.events <- Event{Surface: l.Surface, Control: ControlID(addr), Value: v}:
		default:
			// Bounded queue full: drop, matching the tick thread's
			// non-blocking drain contract (§5).
		}
	}
}

// Events returns the channel of decoded controller events.
func (l *OSCListener) Events() <-chan Event { return l.events }

// Close stops the listener.
func (l *OSCListener) Close() error { return l.conn.Close() }

// OSCOutput echoes mapper state back to an OSC-addressed tablet.
type OSCOutput struct {
	conn net.Conn
}

// NewOSCOutput dials a UDP "connection" to addr for echo delivery.
func NewOSCOutput(addr string) (*OSCOutput, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &OSCOutput{conn: conn}, nil
}

// Echo implements EchoSink.
func (o *OSCOutput) Echo(surface SurfaceID, control ControlID, value float64) {
	msg := EncodeMessage(string(control), float32(value))
	if _, err := o.conn.Write(msg); err != nil {
		log.Debug().Err(err).Msg("control: osc echo write failed, dropping")
	}
}
