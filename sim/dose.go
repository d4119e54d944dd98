package sim

// InfusionState maps a drug name to its current infusion rate in the drug's
// per-kg source unit (mcg/kg/hr or mg/kg/hr). A drug present in the Lockouts
// set always has rate 0.
type InfusionState map[string]float64

// Clone returns an independent copy of the state.
func (s InfusionState) Clone() InfusionState {
	out := make(InfusionState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// StartingRates computes the initial per-drug infusion protocol. For every
// non-adjunct configured drug: base rate is the standard dose; if the
// patient's age exceeds the drug's age threshold the configured reduction
// factor applies; locked drugs get rate 0 regardless. The output is total
// over the configuration, deterministic, and side-effect free. Rates stay in
// per-kg source units; weight scaling happens only at administration (the PK
// boundary), never here.
func StartingRates(p Patient, cfg *Config, locks Lockouts) InfusionState {
	rates := make(InfusionState, len(cfg.Dosing))
	for name, d := range cfg.Dosing {
		if d.Adjunct {
			continue
		}
		if locks.Locked(name) {
			rates[name] = 0
			continue
		}
		dose := d.StandardDose
		if d.AgeThreshold > 0 && p.Age > d.AgeThreshold {
			dose *= d.AgeReductionFactor
		}
		rates[name] = dose
	}
	return rates
}

// RatePerKgHrToMcgPerMin converts a per-kg hourly rate to the absolute mass
// flow the PK model integrates.
func RatePerKgHrToMcgPerMin(ratePerKgHr, weightKg float64) float64 {
	return ratePerKgHr * weightKg / 60.0
}
