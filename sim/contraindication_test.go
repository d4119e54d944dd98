package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateLockouts_HeartBlock_LocksDexmedetomidine(t *testing.T) {
	p := Patient{Age: 72, WeightKg: 70, ASAClass: 3, EGFR: 80, Comorbidities: []string{"Heart Block"}}

	locks := EvaluateLockouts(p, testConfig())

	assert.True(t, locks.Locked("Dexmedetomidine"), "Dexmedetomidine should be locked out for heart block")
	assert.Contains(t, locks["Dexmedetomidine"], "Heart Block")
}

func TestEvaluateLockouts_LowEGFR_LocksKetorolac(t *testing.T) {
	p := Patient{Age: 65, WeightKg: 75, ASAClass: 3, EGFR: 24}

	locks := EvaluateLockouts(p, testConfig())

	assert.True(t, locks.Locked("Ketorolac"), "Ketorolac should be locked out for eGFR < 30")
	assert.Contains(t, locks["Ketorolac"], "renal")
}

func TestEvaluateLockouts_NSAIDAllergy_LocksKetorolac(t *testing.T) {
	p := Patient{Age: 45, WeightKg: 80, ASAClass: 2, EGFR: 95, Allergies: []string{"NSAID"}}

	locks := EvaluateLockouts(p, testConfig())

	assert.True(t, locks.Locked("Ketorolac"), "Ketorolac should be locked out for NSAID allergy")
	assert.Contains(t, locks["Ketorolac"], "NSAID")
}

func TestEvaluateLockouts_HealthyPatient_NoLockouts(t *testing.T) {
	p := Patient{Age: 35, WeightKg: 70, ASAClass: 1, EGFR: 100}

	locks := EvaluateLockouts(p, testConfig())

	assert.Empty(t, locks, "healthy patient should have no hard lockouts")
}

func TestEvaluateLockouts_NoRenalThreshold_NeverRenalLocked(t *testing.T) {
	// Dexmedetomidine has no renal threshold configured, so even anuric
	// renal function must not lock it.
	p := Patient{Age: 50, WeightKg: 70, ASAClass: 4, EGFR: 5}

	locks := EvaluateLockouts(p, testConfig())

	assert.False(t, locks.Locked("Dexmedetomidine"))
	assert.True(t, locks.Locked("Ketorolac"))
}

func TestEvaluateLockouts_Deterministic(t *testing.T) {
	p := Patient{Age: 78, WeightKg: 72, ASAClass: 3, EGFR: 24, Comorbidities: []string{"Heart Block"}}
	cfg := testConfig()

	first := EvaluateLockouts(p, cfg)
	second := EvaluateLockouts(p, cfg)

	assert.Equal(t, first, second, "same profile and config must yield identical lockouts")
}

func TestEvaluateLockouts_HighRiskGeriatric_LocksBoth(t *testing.T) {
	// GIVEN a 78yo with heart block and eGFR 24
	p := Patient{Age: 78, WeightKg: 72, ASAClass: 3, EGFR: 24, Comorbidities: []string{"Heart Block"}}

	// WHEN lockouts are evaluated
	locks := EvaluateLockouts(p, testConfig())

	// THEN both Dexmedetomidine and Ketorolac are hard-locked
	assert.ElementsMatch(t, []string{"Dexmedetomidine", "Ketorolac"}, locks.Drugs())
}
