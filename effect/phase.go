package effect

// Phase is the direction of the current half-cycle
type Phase int

const (
	Dispersing Phase = iota
	Reassembling
)

func (p Phase) String() string {
	switch p {
	case Dispersing:
		return "dispersing"
	case Reassembling:
		return "reassembling"
	default:
		return "unknown"
	}
}

// Advance returns the phase for the next frame and whether the current
// half-cycle just completed, in which case the time anchor must be relatched
func Advance(p Phase, elapsed, duration float64) (Phase, bool) {
	if elapsed <= duration {
		return p, false
	}
	if p == Dispersing {
		return Reassembling, true
	}
	return Dispersing, true
}

// step maps elapsed half-cycle time to the motion model's time argument.
// Reassembly runs the dispersal backwards.
func step(p Phase, elapsed, duration float64) float64 {
	if p == Reassembling {
		return duration - elapsed
	}
	return elapsed
}
