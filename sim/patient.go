package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Patient holds the static risk factors used to compute lockouts and starting
// doses. It is a value type and is never mutated after construction; changing
// a profile mid-run requires constructing a new Controller.
type Patient struct {
	Age           int      `yaml:"age"`
	WeightKg      float64  `yaml:"weight_kg"`
	ASAClass      int      `yaml:"asa_class"`
	EGFR          float64  `yaml:"egfr"` // mL/min/1.73m²
	Allergies     []string `yaml:"allergies"`
	Comorbidities []string `yaml:"comorbidities"`
}

// Validate checks the profile invariants. A failure here is a configuration
// error: it is surfaced before any simulation starts.
func (p Patient) Validate() error {
	if p.Age < 0 {
		return fmt.Errorf("patient age must be non-negative, got %d", p.Age)
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("patient weight must be positive, got %f", p.WeightKg)
	}
	if p.ASAClass < 1 || p.ASAClass > 6 {
		return fmt.Errorf("ASA class must be in 1..6, got %d", p.ASAClass)
	}
	if p.EGFR < 0 {
		return fmt.Errorf("eGFR must be non-negative, got %f", p.EGFR)
	}
	return nil
}

// HasComorbidity reports whether any of the given tags appears in the
// profile's comorbidity list.
func (p Patient) HasComorbidity(tags []string) (string, bool) {
	return firstIntersection(p.Comorbidities, tags)
}

// HasAllergy reports whether any of the given tags appears in the profile's
// allergy list.
func (p Patient) HasAllergy(tags []string) (string, bool) {
	return firstIntersection(p.Allergies, tags)
}

func firstIntersection(have, want []string) (string, bool) {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return w, true
			}
		}
	}
	return "", false
}

// LoadPatient reads and validates a patient profile from a YAML file.
// Unknown fields are rejected so that typos fail loudly instead of silently
// dropping a risk factor.
func LoadPatient(path string) (Patient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Patient{}, fmt.Errorf("reading patient profile: %w", err)
	}
	var p Patient
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Patient{}, fmt.Errorf("parsing patient profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Patient{}, err
	}
	return p, nil
}
