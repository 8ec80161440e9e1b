// Package wire implements the self-describing binary frame format
// described in §6.1: a MessagePack-encoded envelope recursively defined
// as [type_tag, payload], carrying arc and line draw records.
package wire

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"tunnelcore/lib/scene"
)

// Envelope type tags, per §6.1.
const (
	TagCollection = 0
	TagArcList    = 1
	TagLineList   = 2
)

// ArcWire and LineWire are the exact on-wire field layout: u32 for level
// and val (0-255), f32 for everything else, in the field order the spec
// fixes. They are distinct from scene.ArcRecord/LineRecord so the domain
// model never has to know about wire width truncation.
type ArcWire struct {
	Level     uint32
	Thickness float32
	Hue       float32
	Sat       float32
	Val       uint32
	X         float32
	Y         float32
	RadX      float32
	RadY      float32
	Start     float32
	Stop      float32
	RotAngle  float32
}

type LineWire struct {
	Level     uint32
	Thickness float32
	Hue       float32
	Sat       float32
	Val       uint32
	X         float32
	Y         float32
	Length    float32
	Start     float32
	Stop      float32
	RotAngle  float32
}

func levelToU32(v float64) uint32 {
	v = math.Max(0, math.Min(1, v))
	return uint32(math.Round(v * 255))
}

// ToArcWire narrows a domain-level arc record to its wire representation.
func ToArcWire(a scene.ArcRecord) ArcWire {
	return ArcWire{
		Level:     levelToU32(a.Level),
		Thickness: float32(a.Thickness),
		Hue:       float32(a.Hue),
		Sat:       float32(a.Sat),
		Val:       levelToU32(a.Val),
		X:         float32(a.X),
		Y:         float32(a.Y),
		RadX:      float32(a.RadX),
		RadY:      float32(a.RadY),
		Start:     float32(a.Start),
		Stop:      float32(a.Stop),
		RotAngle:  float32(a.RotAngle),
	}
}

// ToLineWire narrows a domain-level line record to its wire representation.
func ToLineWire(l scene.LineRecord) LineWire {
	return LineWire{
		Level:     levelToU32(l.Level),
		Thickness: float32(l.Thickness),
		Hue:       float32(l.Hue),
		Sat:       float32(l.Sat),
		Val:       levelToU32(l.Val),
		X:         float32(l.X),
		Y:         float32(l.Y),
		Length:    float32(l.Length),
		Start:     float32(l.Start),
		Stop:      float32(l.Stop),
		RotAngle:  float32(l.RotAngle),
	}
}

func encodeArc(enc *msgpack.Encoder, a ArcWire) error {
	if err := enc.EncodeArrayLen(12); err != nil {
		return err
	}
	for _, step := range []func() error{
		func() error { return enc.EncodeUint32(a.Level) },
		func() error { return enc.EncodeFloat32(a.Thickness) },
		func() error { return enc.EncodeFloat32(a.Hue) },
		func() error { return enc.EncodeFloat32(a.Sat) },
		func() error { return enc.EncodeUint32(a.Val) },
		func() error { return enc.EncodeFloat32(a.X) },
		func() error { return enc.EncodeFloat32(a.Y) },
		func() error { return enc.EncodeFloat32(a.RadX) },
		func() error { return enc.EncodeFloat32(a.RadY) },
		func() error { return enc.EncodeFloat32(a.Start) },
		func() error { return enc.EncodeFloat32(a.Stop) },
		func() error { return enc.EncodeFloat32(a.RotAngle) },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func decodeArc(dec *msgpack.Decoder) (ArcWire, error) {
	var a ArcWire
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return a, err
	}
	if n != 12 {
		return a, fmt.Errorf("wire: arc record expected 12 fields, got %d", n)
	}
	if a.Level, err = dec.DecodeUint32(); err != nil {
		return a, err
	}
	if a.Thickness, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Hue, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Sat, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Val, err = dec.DecodeUint32(); err != nil {
		return a, err
	}
	if a.X, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Y, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.RadX, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.RadY, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Start, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.Stop, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	if a.RotAngle, err = dec.DecodeFloat32(); err != nil {
		return a, err
	}
	return a, nil
}

func encodeLine(enc *msgpack.Encoder, l LineWire) error {
	if err := enc.EncodeArrayLen(11); err != nil {
		return err
	}
	for _, step := range []func() error{
		func() error { return enc.EncodeUint32(l.Level) },
		func() error { return enc.EncodeFloat32(l.Thickness) },
		func() error { return enc.EncodeFloat32(l.Hue) },
		func() error { return enc.EncodeFloat32(l.Sat) },
		func() error { return enc.EncodeUint32(l.Val) },
		func() error { return enc.EncodeFloat32(l.X) },
		func() error { return enc.EncodeFloat32(l.Y) },
		func() error { return enc.EncodeFloat32(l.Length) },
		func() error { return enc.EncodeFloat32(l.Start) },
		func() error { return enc.EncodeFloat32(l.Stop) },
		func() error { return enc.EncodeFloat32(l.RotAngle) },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func decodeLine(dec *msgpack.Decoder) (LineWire, error) {
	var l LineWire
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return l, err
	}
	if n != 11 {
		return l, fmt.Errorf("wire: line record expected 11 fields, got %d", n)
	}
	if l.Level, err = dec.DecodeUint32(); err != nil {
		return l, err
	}
	if l.Thickness, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Hue, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Sat, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Val, err = dec.DecodeUint32(); err != nil {
		return l, err
	}
	if l.X, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Y, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Length, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Start, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.Stop, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	if l.RotAngle, err = dec.DecodeFloat32(); err != nil {
		return l, err
	}
	return l, nil
}
