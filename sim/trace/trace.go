package trace

import (
	"encoding/json"
	"fmt"
	"io"
)

// RunTrace collects intervention and status-change records during a
// supervision run.
type RunTrace struct {
	Interventions []InterventionRecord
	StatusChanges []StatusChange
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace() *RunTrace {
	return &RunTrace{
		Interventions: make([]InterventionRecord, 0),
		StatusChanges: make([]StatusChange, 0),
	}
}

// RecordIntervention appends an intervention record.
func (rt *RunTrace) RecordIntervention(rec InterventionRecord) {
	rt.Interventions = append(rt.Interventions, rec)
}

// RecordStatusChange appends a status transition record.
func (rt *RunTrace) RecordStatusChange(rec StatusChange) {
	rt.StatusChanges = append(rt.StatusChanges, rec)
}

// WriteJSONL writes every record as one JSON object per line, interventions
// first, then status changes. The record type is distinguishable by its
// fields.
func (rt *RunTrace) WriteJSONL(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, rec := range rt.Interventions {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing intervention record: %w", err)
		}
	}
	for _, rec := range rt.StatusChanges {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing status change record: %w", err)
		}
	}
	return nil
}
