package wire

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"tunnelcore/lib/mixer"
)

// Frame is one published wire message: frame number, timestamp, and the
// mixer output for one video channel, per §6.1.
type Frame struct {
	FrameNumber uint32
	TimestampMs int64
	Arcs        []ArcWire
	Lines       []LineWire
}

// FromMixerFrame builds a wire Frame from a mixer.Frame, narrowing every
// record to its wire field widths.
func FromMixerFrame(frameNumber uint32, timestampMs int64, f mixer.Frame) Frame {
	out := Frame{FrameNumber: frameNumber, TimestampMs: timestampMs}
	for _, a := range f.Arcs {
		out.Arcs = append(out.Arcs, ToArcWire(a))
	}
	for _, l := range f.Lines {
		out.Lines = append(out.Lines, ToLineWire(l))
	}
	return out
}

// encodeEntity writes this frame's top-level draw-entity per the
// recursive envelope grammar: a direct type-1/type-2 list when only one
// record kind is present, collapsing to an empty type-0 collection when
// there is nothing to draw, and a type-0 collection of both when both are
// present.
func (f Frame) encodeEntity(enc *msgpack.Encoder) error {
	switch {
	case len(f.Arcs) == 0 && len(f.Lines) == 0:
		return encodeCollection(enc, nil)
	case len(f.Arcs) > 0 && len(f.Lines) == 0:
		return encodeArcList(enc, f.Arcs)
	case len(f.Arcs) == 0 && len(f.Lines) > 0:
		return encodeLineList(enc, f.Lines)
	default:
		return encodeCollection(enc, []func(*msgpack.Encoder) error{
			func(e *msgpack.Encoder) error { return encodeArcList(e, f.Arcs) },
			func(e *msgpack.Encoder) error { return encodeLineList(e, f.Lines) },
		})
	}
}

func encodeArcList(enc *msgpack.Encoder, arcs []ArcWire) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(TagArcList); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(arcs)); err != nil {
		return err
	}
	for _, a := range arcs {
		if err := encodeArc(enc, a); err != nil {
			return err
		}
	}
	return nil
}

func encodeLineList(enc *msgpack.Encoder, lines []LineWire) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(TagLineList); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(lines)); err != nil {
		return err
	}
	for _, l := range lines {
		if err := encodeLine(enc, l); err != nil {
			return err
		}
	}
	return nil
}

func encodeCollection(enc *msgpack.Encoder, children []func(*msgpack.Encoder) error) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(TagCollection); err != nil {
		return err
	}
	// Payload is [count, [entity, entity, ...]].
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(len(children))); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(children)); err != nil {
		return err
	}
	for _, child := range children {
		if err := child(enc); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes the full wire message: [frameNumber, timestampMs, entity].
func (f Frame) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(3); err != nil {
		return nil, err
	}
	if err := enc.EncodeUint32(f.FrameNumber); err != nil {
		return nil, err
	}
	if err := enc.EncodeInt64(f.TimestampMs); err != nil {
		return nil, err
	}
	if err := f.encodeEntity(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a wire message back into a Frame, flattening any
// nested collection entity back into a flat Arcs/Lines pair.
func Unmarshal(data []byte) (Frame, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return Frame{}, err
	}
	if n != 3 {
		return Frame{}, fmt.Errorf("wire: top-level message expected 3 fields, got %d", n)
	}
	var f Frame
	if f.FrameNumber, err = dec.DecodeUint32(); err != nil {
		return Frame{}, err
	}
	if f.TimestampMs, err = dec.DecodeInt64(); err != nil {
		return Frame{}, err
	}
	if err := decodeEntity(dec, &f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

func decodeEntity(dec *msgpack.Decoder, f *Frame) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("wire: envelope expected 2 fields, got %d", n)
	}
	tag, err := dec.DecodeUint8()
	if err != nil {
		return err
	}
	switch tag {
	case TagArcList:
		count, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			a, err := decodeArc(dec)
			if err != nil {
				return err
			}
			f.Arcs = append(f.Arcs, a)
		}
	case TagLineList:
		count, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			l, err := decodeLine(dec)
			if err != nil {
				return err
			}
			f.Lines = append(f.Lines, l)
		}
	case TagCollection:
		pn, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if pn != 2 {
			return fmt.Errorf("wire: collection payload expected 2 fields, got %d", pn)
		}
		count, err := dec.DecodeInt()
		if err != nil {
			return err
		}
		listLen, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if listLen != count {
			return fmt.Errorf("wire: collection count %d does not match list length %d", count, listLen)
		}
		for i := 0; i < listLen; i++ {
			if err := decodeEntity(dec, f); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("wire: unknown type_tag %d", tag)
	}
	return nil
}
