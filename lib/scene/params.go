package scene

// ParameterId is a closed, enumerated target for animator modulation and
// control-mapper bindings. Per the design notes, the source's dynamic
// string-keyed parameter dispatch is replaced entirely by this type: there
// is no string-keyed lookup anywhere in the tick loop.
type ParameterId int

const (
	ParamNone ParameterId = iota

	// Tunnel parameters.
	ParamRotationSpeed
	ParamMarqueeSpeed
	ParamThickness
	ParamSize
	ParamAspectRatio
	ParamColCenter
	ParamColWidth
	ParamColSpread
	ParamColSaturation
	ParamSegments
	ParamBlacking
	ParamPositionX
	ParamPositionY

	// Line parameters.
	ParamLineThickness
	ParamLineLength
	ParamLineRotation
	ParamLineStartPhase
	ParamLineStopPhase
)

// Kind reports which clamp/wrap discipline a parameter follows, per the
// invariant in spec §3: "clamped/wrapped per parameter kind (wrap for
// phases, clamp to [0,1] for saturation/level, no constraint for speeds)".
type Kind int

const (
	KindUnconstrained Kind = iota
	KindUnipolar
	KindPhase
	KindPositiveInt
)

var paramKinds = map[ParameterId]Kind{
	ParamRotationSpeed:  KindUnconstrained,
	ParamMarqueeSpeed:   KindUnconstrained,
	ParamThickness:      KindUnipolar,
	ParamSize:           KindUnipolar,
	ParamAspectRatio:    KindUnconstrained,
	ParamColCenter:      KindPhase,
	ParamColWidth:       KindUnipolar,
	ParamColSpread:      KindUnipolar,
	ParamColSaturation:  KindUnipolar,
	ParamSegments:       KindPositiveInt,
	ParamBlacking:       KindUnconstrained,
	ParamPositionX:      KindUnconstrained,
	ParamPositionY:      KindUnconstrained,
	ParamLineThickness:  KindUnipolar,
	ParamLineLength:     KindUnipolar,
	ParamLineRotation:   KindPhase,
	ParamLineStartPhase: KindPhase,
	ParamLineStopPhase:  KindPhase,
}

// Resolve applies a base value plus a summed modulation amount, clamping or
// wrapping per the parameter's kind.
func Resolve(id ParameterId, base, modulation float64) float64 {
	v := base + modulation
	switch paramKinds[id] {
	case KindUnipolar:
		return Clamp01(v)
	case KindPhase:
		return float64(NewPhase(v))
	case KindPositiveInt:
		if v < 1 {
			return 1
		}
		return v
	default:
		return v
	}
}
