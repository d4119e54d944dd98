package sim

import "github.com/google/uuid"

// PKSnapshot is a read-only copy of one drug's concentrations at the end of
// a tick.
type PKSnapshot struct {
	Cp float64 `json:"cp"`
	Ce float64 `json:"ce"`
}

// TickReport is the sole externally observable result of one control cycle.
// All maps are copies: mutating a report never reaches engine state.
type TickReport struct {
	RunID          uuid.UUID             `json:"run_id"`
	Tick           int64                 `json:"tick"`
	ElapsedMin     float64               `json:"elapsed_min"`
	Vitals         Vitals                `json:"vitals"`
	Infusions      InfusionState         `json:"infusions"`
	Concentrations map[string]PKSnapshot `json:"concentrations,omitempty"`
	Status         Severity              `json:"status"`
	Rules          []FiredRule           `json:"rules,omitempty"`
}

// ProtocolReport is the initialization output: the lockout set and starting
// rates computed once from the patient profile, plus adjunct availability.
type ProtocolReport struct {
	RunID    uuid.UUID         `json:"run_id"`
	Lockouts Lockouts          `json:"lockouts"`
	Rates    InfusionState     `json:"rates"`
	Adjuncts map[string]string `json:"adjuncts,omitempty"` // drug -> availability note
}
