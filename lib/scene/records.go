package scene

// ArcRecord and LineRecord are the in-process form of the wire-level draw
// command (§6.1). They carry float64 domain values; lib/wire narrows them
// to the wire's u32/f32 field widths at serialization time.
type ArcRecord struct {
	Level    float64 // 0..1, scaled to u32 0-255 on the wire
	Thickness float64
	Hue      float64 // 0..1
	Sat      float64 // 0..1
	Val      float64 // 0..1, scaled to u32 0-255 on the wire
	X        float64 // -0.5..0.5
	Y        float64
	RadX     float64
	RadY     float64
	Start    float64 // phase 0..1
	Stop     float64
	RotAngle float64 // phase 0..1
}

type LineRecord struct {
	Level     float64
	Thickness float64
	Hue       float64
	Sat       float64
	Val       float64
	X         float64
	Y         float64
	Length    float64
	Start     float64 // phase 0..1
	Stop      float64 // usually 0..1; Start+1 for a full-revolution span
	RotAngle  float64
}
