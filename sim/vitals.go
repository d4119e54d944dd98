package sim

import "fmt"

// Physical plausibility bounds for monitor readings. A reading outside these
// bounds is treated as a monitoring fault and routed to the RED path, never
// silently clamped.
const (
	maxPlausibleHR  = 300.0
	maxPlausibleMAP = 250.0
	maxPlausibleRR  = 80.0
	maxPlausibleSBP = 300.0
)

// Vitals is a single hemodynamic reading supplied by the host each tick.
// Read-only to the engine.
type Vitals struct {
	HeartRate float64 `yaml:"hr" json:"hr"`   // bpm
	MAP       float64 `yaml:"map" json:"map"` // mean arterial pressure, mmHg
	RespRate  float64 `yaml:"rr" json:"rr"`   // breaths/min
	SBP       float64 `yaml:"sbp" json:"sbp"` // systolic blood pressure, mmHg
}

// Anomalies returns a reason per physically implausible field, or nil when
// the reading is plausible.
func (v Vitals) Anomalies() []string {
	var reasons []string
	if v.HeartRate <= 0 || v.HeartRate > maxPlausibleHR {
		reasons = append(reasons, fmt.Sprintf("implausible heart rate %.1f bpm", v.HeartRate))
	}
	if v.MAP <= 0 || v.MAP > maxPlausibleMAP {
		reasons = append(reasons, fmt.Sprintf("implausible MAP %.1f mmHg", v.MAP))
	}
	if v.RespRate < 0 || v.RespRate > maxPlausibleRR {
		reasons = append(reasons, fmt.Sprintf("implausible respiratory rate %.1f", v.RespRate))
	}
	if v.SBP <= 0 || v.SBP > maxPlausibleSBP {
		reasons = append(reasons, fmt.Sprintf("implausible SBP %.1f mmHg", v.SBP))
	}
	return reasons
}

func (v Vitals) String() string {
	return fmt.Sprintf("HR=%.0f MAP=%.0f RR=%.0f SBP=%.0f", v.HeartRate, v.MAP, v.RespRate, v.SBP)
}
