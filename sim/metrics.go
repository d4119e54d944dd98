// Tracks run-wide supervision metrics such as tick counts per alarm level,
// rule fire counts, and delivered dose integrals.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunMetrics aggregates statistics over a supervision run for final
// reporting. Useful for evaluating how often the engine intervened and how
// much drug was actually delivered.
type RunMetrics struct {
	Ticks         int64
	TicksByStatus map[Severity]int64
	RuleFires     map[string]int64   // rule name -> number of ticks it fired
	DoseDelivered map[string]float64 // drug -> integral of mass flow (source mass unit)

	hrSeries  []float64
	mapSeries []float64
}

// NewRunMetrics creates an empty aggregator.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		TicksByStatus: make(map[Severity]int64),
		RuleFires:     make(map[string]int64),
		DoseDelivered: make(map[string]float64),
	}
}

// Observe folds one tick report into the aggregate. dtMin is the tick's
// elapsed time in minutes; weightKg converts per-kg rates to mass flow.
func (m *RunMetrics) Observe(rep TickReport, weightKg, dtMin float64) {
	m.Ticks++
	m.TicksByStatus[rep.Status]++
	for _, rule := range rep.Rules {
		m.RuleFires[rule.Name]++
	}
	if dtMin > 0 {
		for drug, rate := range rep.Infusions {
			m.DoseDelivered[drug] += RatePerKgHrToMcgPerMin(rate, weightKg) * dtMin
		}
	}
	m.hrSeries = append(m.hrSeries, rep.Vitals.HeartRate)
	m.mapSeries = append(m.mapSeries, rep.Vitals.MAP)
}

// SeriesSummary describes one vitals series over the whole run.
type SeriesSummary struct {
	Mean   float64
	StdDev float64
	P05    float64
	P95    float64
}

func summarize(series []float64) SeriesSummary {
	if len(series) == 0 {
		return SeriesSummary{}
	}
	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)
	return SeriesSummary{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		P05:    stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

// HRSummary returns summary statistics of the heart-rate series.
func (m *RunMetrics) HRSummary() SeriesSummary { return summarize(m.hrSeries) }

// MAPSummary returns summary statistics of the MAP series.
func (m *RunMetrics) MAPSummary() SeriesSummary { return summarize(m.mapSeries) }

// Print displays the aggregated metrics at the end of a run.
func (m *RunMetrics) Print() {
	fmt.Println("=== Supervision Metrics ===")
	fmt.Printf("Ticks                : %d\n", m.Ticks)
	fmt.Printf("  GREEN / YELLOW / RED : %d / %d / %d\n",
		m.TicksByStatus[Green], m.TicksByStatus[Yellow], m.TicksByStatus[Red])
	if len(m.RuleFires) > 0 {
		rules := make([]string, 0, len(m.RuleFires))
		for name := range m.RuleFires {
			rules = append(rules, name)
		}
		sort.Strings(rules)
		for _, name := range rules {
			fmt.Printf("Rule %-22s: fired %d ticks\n", name, m.RuleFires[name])
		}
	}
	drugs := make([]string, 0, len(m.DoseDelivered))
	for name := range m.DoseDelivered {
		drugs = append(drugs, name)
	}
	sort.Strings(drugs)
	for _, name := range drugs {
		fmt.Printf("Delivered %-17s: %.2f (source mass units)\n", name, m.DoseDelivered[name])
	}
	if m.Ticks > 0 {
		hr, mp := m.HRSummary(), m.MAPSummary()
		fmt.Printf("HR  mean %.1f sd %.1f p05 %.1f p95 %.1f\n", hr.Mean, hr.StdDev, hr.P05, hr.P95)
		fmt.Printf("MAP mean %.1f sd %.1f p05 %.1f p95 %.1f\n", mp.Mean, mp.StdDev, mp.P05, mp.P95)
	}
}
