package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetrics_Observe(t *testing.T) {
	m := NewRunMetrics()

	m.Observe(TickReport{
		Status:    Green,
		Vitals:    Vitals{HeartRate: 70, MAP: 80},
		Infusions: InfusionState{"Dexmedetomidine": 0.5},
	}, 70, 1.0)
	m.Observe(TickReport{
		Status:    Red,
		Vitals:    Vitals{HeartRate: 44, MAP: 57},
		Infusions: InfusionState{"Dexmedetomidine": 0},
		Rules: []FiredRule{
			{Name: RuleBradycardia, Severity: Red},
			{Name: RuleHypotension, Severity: Red},
		},
	}, 70, 1.0)

	assert.Equal(t, int64(2), m.Ticks)
	assert.Equal(t, int64(1), m.TicksByStatus[Green])
	assert.Equal(t, int64(1), m.TicksByStatus[Red])
	assert.Equal(t, int64(1), m.RuleFires[RuleBradycardia])
	assert.Equal(t, int64(1), m.RuleFires[RuleHypotension])

	// 0.5 mcg/kg/hr × 70 kg / 60 × 1 min from the first tick only
	assert.InDelta(t, 0.5*70.0/60.0, m.DoseDelivered["Dexmedetomidine"], 1e-9)
}

func TestRunMetrics_VitalsSummary(t *testing.T) {
	m := NewRunMetrics()
	for _, hr := range []float64{60, 70, 80} {
		m.Observe(TickReport{Status: Green, Vitals: Vitals{HeartRate: hr, MAP: 85}}, 70, 1.0)
	}

	hr := m.HRSummary()
	assert.InDelta(t, 70.0, hr.Mean, 1e-9)
	assert.Equal(t, 60.0, hr.P05)
	assert.Equal(t, 80.0, hr.P95)

	mp := m.MAPSummary()
	assert.InDelta(t, 85.0, mp.Mean, 1e-9)
	assert.InDelta(t, 0.0, mp.StdDev, 1e-9)
}

func TestRunMetrics_EmptySummary(t *testing.T) {
	m := NewRunMetrics()
	require.Equal(t, SeriesSummary{}, m.HRSummary())
}
