package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPhaseSpec() *Spec {
	return &Spec{
		Name:      "test",
		Seed:      7,
		DtSeconds: 60,
		Phases: []PhaseSpec{
			{
				Name:  "stable",
				Ticks: 5,
				HR:    SignalSpec{Mean: 72, Stdev: 4, Min: 55, Max: 95},
				MAP:   SignalSpec{Mean: 85, Stdev: 5, Min: 70, Max: 105},
				RR:    SignalSpec{Mean: 14, Stdev: 1, Min: 10, Max: 20},
				SBP:   SignalSpec{Mean: 120, Stdev: 8, Min: 95, Max: 150},
			},
			{
				Name:  "hypotensive",
				Ticks: 3,
				HR:    SignalSpec{Mean: 80, Stdev: 4, Min: 60, Max: 100},
				MAP:   SignalSpec{Mean: 55, Stdev: 2, Min: 50, Max: 59},
				RR:    SignalSpec{Mean: 14, Stdev: 1, Min: 10, Max: 20},
				SBP:   SignalSpec{Mean: 100, Stdev: 5, Min: 85, Max: 120},
			},
		},
	}
}

func TestSpecValidate(t *testing.T) {
	assert.NoError(t, twoPhaseSpec().Validate())

	spec := twoPhaseSpec()
	spec.DtSeconds = 0
	assert.ErrorContains(t, spec.Validate(), "dt_seconds")

	spec = twoPhaseSpec()
	spec.Phases = nil
	assert.ErrorContains(t, spec.Validate(), "phase")

	spec = twoPhaseSpec()
	spec.Phases[0].Ticks = 0
	assert.ErrorContains(t, spec.Validate(), "ticks")

	spec = twoPhaseSpec()
	spec.Phases[1].MAP.Max = 40 // below min
	assert.ErrorContains(t, spec.Validate(), "max")

	spec = twoPhaseSpec()
	spec.Phases[0].HR.Stdev = -1
	assert.ErrorContains(t, spec.Validate(), "stdev")
}

func TestSpec_TotalTicks(t *testing.T) {
	assert.Equal(t, int64(8), twoPhaseSpec().TotalTicks())
}

func TestLoadSpec_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: demo
seed: 42
dt_seconds: 60
phases:
  - name: stable
    ticks: 4
    hr: {mean: 72, stdev: 4, min: 55, max: 95}
    map: {mean: 85, stdev: 5, min: 70, max: 105}
    rr: {mean: 14, stdev: 1, min: 10, max: 20}
    sbp: {mean: 120, stdev: 8, min: 95, max: 150}
`), 0o644))

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", spec.Name)
	assert.Equal(t, int64(42), spec.Seed)
	assert.Equal(t, int64(4), spec.TotalTicks())
}

func TestLoadSpec_UnknownField_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: demo
dt_secs: 60
`), 0o644))

	_, err := LoadSpec(path)
	assert.Error(t, err)
}
