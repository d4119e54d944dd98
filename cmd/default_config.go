package cmd

import (
	sim "github.com/infusion-sim/infusion-sim/sim"
	"github.com/infusion-sim/infusion-sim/sim/scenario"
	"gopkg.in/yaml.v3"
)

// defaultConfigYAML is the built-in drug/threshold configuration, used when
// no --config flag is given. The PK constants are placeholders for
// literature-derived values, matching the simulation's documented scope.
const defaultConfigYAML = `
version: "1.0.0"

hemodynamic_thresholds:
  hr_critical_low: 48
  map_critical_low: 60
  rr_critical_low: 8
  sbp_critical_high: 180

drug_dosing:
  Dexmedetomidine:
    standard_dose: 0.5
    unit: mcg/kg/hr
    age_threshold: 65
    age_reduction_factor: 0.5
    classes: [bradycardia-risk, sedative]
  Ketamine:
    standard_dose: 0.2
    unit: mg/kg/hr
    classes: [sedative, vasoactive, analgesic]
  Lidocaine:
    standard_dose: 1.5
    unit: mg/kg/hr
    classes: [analgesic, vasoactive]
  Ketorolac:
    adjunct: true
    bolus: 30mg IV
    unit: mg
    classes: [analgesic]

contraindications:
  Dexmedetomidine:
    cardiac: ["Heart Block", "AV Block", "Severe Bradycardia"]
  Ketorolac:
    renal_egfr_below: 30
    allergies: [NSAID, Ketorolac]

pharmacokinetics:
  Dexmedetomidine:
    central_vol_per_kg: 0.8
    k10: 0.04
    k1e: 0.1
    ce_intervention_threshold: 0.1

control:
  caution_reduction_factor: 0.5
  sbp_reduction_factor: 0.5
`

// defaultScenarioYAML is the built-in demo scenario: a stable stretch, a
// bradycardic episode that should trip the RED path, then recovery.
const defaultScenarioYAML = `
name: demo
seed: 42
dt_seconds: 60
phases:
  - name: stable
    ticks: 10
    hr: {mean: 72, stdev: 4, min: 55, max: 95}
    map: {mean: 85, stdev: 5, min: 70, max: 105}
    rr: {mean: 14, stdev: 1.5, min: 10, max: 20}
    sbp: {mean: 120, stdev: 8, min: 95, max: 150}
  - name: bradycardic-episode
    ticks: 5
    hr: {mean: 44, stdev: 2, min: 38, max: 50}
    map: {mean: 75, stdev: 5, min: 62, max: 90}
    rr: {mean: 12, stdev: 1, min: 10, max: 16}
    sbp: {mean: 110, stdev: 6, min: 95, max: 130}
  - name: recovery
    ticks: 10
    hr: {mean: 68, stdev: 3, min: 58, max: 85}
    map: {mean: 82, stdev: 4, min: 70, max: 95}
    rr: {mean: 14, stdev: 1, min: 11, max: 18}
    sbp: {mean: 118, stdev: 6, min: 100, max: 135}
`

// DefaultConfig parses the embedded configuration.
func DefaultConfig() (*sim.Config, error) {
	return sim.ParseConfig([]byte(defaultConfigYAML))
}

// DefaultScenario parses the embedded demo scenario.
func DefaultScenario() (*scenario.Spec, error) {
	var spec scenario.Spec
	if err := yaml.Unmarshal([]byte(defaultScenarioYAML), &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// defaultPatient is the demo profile used when no --patient file is given:
// a healthy adult with no lockouts.
func defaultPatient() sim.Patient {
	return sim.Patient{
		Age:      30,
		WeightKg: 85,
		ASAClass: 2,
		EGFR:     95,
	}
}
