package sim

import "time"

// testConfig builds the standard three-infusion protocol used across the
// engine tests: Dexmedetomidine (PK-modeled, geriatric reduction, cardiac
// contraindications), Ketamine, Lidocaine, and the Ketorolac bolus adjunct
// (renal/allergy contraindications).
func testConfig() *Config {
	renal := 30.0
	return &Config{
		Version: "test",
		Thresholds: Thresholds{
			HRCriticalLow:   48,
			MAPCriticalLow:  60,
			RRCriticalLow:   8,
			SBPCriticalHigh: 180,
		},
		Dosing: map[string]DrugConfig{
			"Dexmedetomidine": {
				StandardDose:       0.5,
				Unit:               "mcg/kg/hr",
				AgeThreshold:       65,
				AgeReductionFactor: 0.5,
				Classes:            []string{ClassBradycardiaRisk, ClassSedative},
			},
			"Ketamine": {
				StandardDose: 0.2,
				Unit:         "mg/kg/hr",
				Classes:      []string{ClassSedative, ClassVasoactive, ClassAnalgesic},
			},
			"Lidocaine": {
				StandardDose: 1.5,
				Unit:         "mg/kg/hr",
				Classes:      []string{ClassAnalgesic, ClassVasoactive},
			},
			"Ketorolac": {
				Adjunct: true,
				Bolus:   "30mg IV",
				Unit:    "mg",
				Classes: []string{ClassAnalgesic},
			},
		},
		Contraindications: map[string]ContraConfig{
			"Dexmedetomidine": {
				Cardiac: []string{"Heart Block", "AV Block", "Severe Bradycardia"},
			},
			"Ketorolac": {
				RenalEGFRBelow: &renal,
				Allergies:      []string{"NSAID", "Ketorolac"},
			},
		},
		PK: map[string]PKConfig{
			"Dexmedetomidine": {
				CentralVolPerKg:         0.8,
				K10:                     0.04,
				K1e:                     0.1,
				CeInterventionThreshold: 0.1,
			},
		},
	}
}

func healthyAdult() Patient {
	return Patient{Age: 30, WeightKg: 85, ASAClass: 2, EGFR: 95}
}

func stableVitals() Vitals {
	return Vitals{HeartRate: 72, MAP: 85, RespRate: 14, SBP: 120}
}

const tickMinute = time.Minute
