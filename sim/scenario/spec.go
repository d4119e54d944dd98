// Package scenario supplies vitals readings to the supervision loop: either
// deterministic synthetic generation from a phased YAML spec, or replay of a
// recorded CSV trace.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SignalSpec parameterizes one vital signal's distribution within a phase.
// Samples are drawn normal(mean, stdev) and clamped to [min, max].
type SignalSpec struct {
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// PhaseSpec is one contiguous stretch of the scenario with its own signal
// distributions (for example "induction", "stable", "hypotensive-episode").
type PhaseSpec struct {
	Name  string     `yaml:"name"`
	Ticks int64      `yaml:"ticks"`
	HR    SignalSpec `yaml:"hr"`
	MAP   SignalSpec `yaml:"map"`
	RR    SignalSpec `yaml:"rr"`
	SBP   SignalSpec `yaml:"sbp"`
}

// Spec is the top-level scenario configuration, loadable from YAML.
type Spec struct {
	Name      string      `yaml:"name"`
	Seed      int64       `yaml:"seed"`
	DtSeconds float64     `yaml:"dt_seconds"`
	Phases    []PhaseSpec `yaml:"phases"`
}

// LoadSpec reads, parses and validates a scenario YAML file. Unknown fields
// are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario spec: %w", err)
	}
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the spec's structural and range invariants.
func (s *Spec) Validate() error {
	if s.DtSeconds <= 0 {
		return fmt.Errorf("scenario: dt_seconds must be positive, got %f", s.DtSeconds)
	}
	if len(s.Phases) == 0 {
		return fmt.Errorf("scenario: at least one phase is required")
	}
	for i, phase := range s.Phases {
		if phase.Ticks <= 0 {
			return fmt.Errorf("scenario phase %d (%q): ticks must be positive, got %d", i, phase.Name, phase.Ticks)
		}
		for _, sig := range []struct {
			name string
			spec SignalSpec
		}{
			{SignalHR, phase.HR}, {SignalMAP, phase.MAP}, {SignalRR, phase.RR}, {SignalSBP, phase.SBP},
		} {
			if sig.spec.Stdev < 0 {
				return fmt.Errorf("scenario phase %d (%q) signal %s: stdev must be non-negative, got %f",
					i, phase.Name, sig.name, sig.spec.Stdev)
			}
			if sig.spec.Max < sig.spec.Min {
				return fmt.Errorf("scenario phase %d (%q) signal %s: max %f below min %f",
					i, phase.Name, sig.name, sig.spec.Max, sig.spec.Min)
			}
		}
	}
	return nil
}

// TotalTicks returns the scenario length across all phases.
func (s *Spec) TotalTicks() int64 {
	var total int64
	for _, phase := range s.Phases {
		total += phase.Ticks
	}
	return total
}
