package deinterlace

// Mode selects the field combination algorithm.
type Mode int

const (
	ModeDiscard Mode = iota
	ModeMean
	ModeBlend
	ModeBob
	ModeLinear
)

// String returns the canonical configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDiscard:
		return "discard"
	case ModeMean:
		return "mean"
	case ModeBlend:
		return "blend"
	case ModeBob:
		return "bob"
	case ModeLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// DoubleRate reports whether the mode emits two output pictures per input
// frame, doubling the display frame rate.
func (m Mode) DoubleRate() bool {
	return m == ModeBob || m == ModeLinear
}

// ParseMode maps a configuration string to a Mode. Recognized synonyms:
// "average" and "combine-fields" select blend, "progressive-scan" selects
// bob. An empty or unrecognized string falls back to discard and ok is
// false so the caller can surface a configuration warning.
func ParseMode(s string) (mode Mode, ok bool) {
	switch s {
	case "discard":
		return ModeDiscard, true
	case "mean":
		return ModeMean, true
	case "blend", "average", "combine-fields":
		return ModeBlend, true
	case "bob", "progressive-scan":
		return ModeBob, true
	case "linear":
		return ModeLinear, true
	default:
		return ModeDiscard, false
	}
}
