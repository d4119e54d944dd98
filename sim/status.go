package sim

// Severity is the ordered alarm level reported by the controller.
// The ordering matters: per-tick status is the maximum severity across all
// fired rules, so RED always dominates YELLOW, and YELLOW dominates GREEN.
type Severity int

const (
	// Green means all vitals are in range and non-locked drugs run at their
	// last commanded rate.
	Green Severity = iota
	// Yellow means a caution condition fired and the implicated drug's rate
	// was reduced.
	Yellow
	// Red means a critical threshold was breached and the implicated
	// infusions were suspended this tick.
	Red
)

func (s Severity) String() string {
	switch s {
	case Yellow:
		return "YELLOW"
	case Red:
		return "RED"
	default:
		return "GREEN"
	}
}

func maxSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}
