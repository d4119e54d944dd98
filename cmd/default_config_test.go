package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/infusion-sim/infusion-sim/sim"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 48.0, cfg.Thresholds.HRCriticalLow)
	assert.Equal(t, 60.0, cfg.Thresholds.MAPCriticalLow)
	assert.Equal(t, 0.5, cfg.Dosing["Dexmedetomidine"].StandardDose)
	assert.True(t, cfg.Dosing["Ketorolac"].Adjunct)
	assert.Equal(t, 0.1, cfg.PK["Dexmedetomidine"].CeInterventionThreshold)
}

func TestDefaultScenario_IsValid(t *testing.T) {
	spec, err := DefaultScenario()
	require.NoError(t, err)
	assert.Equal(t, int64(25), spec.TotalTicks())
	assert.Equal(t, 60.0, spec.DtSeconds)
}

func TestDefaultPatient_ConstructsController(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	ctrl, err := sim.NewController(defaultPatient(), cfg)
	require.NoError(t, err)
	assert.Empty(t, ctrl.Lockouts(), "the demo patient has no contraindications")
	assert.Equal(t, 0.5, ctrl.StartingRates()["Dexmedetomidine"])
}
