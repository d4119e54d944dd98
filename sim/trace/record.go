// Package trace provides intervention-trace recording for post-run safety
// analysis. This package has no dependencies on sim/ — it stores pure data
// types.
package trace

// InterventionRecord captures a single rule-driven rate mutation.
type InterventionRecord struct {
	RunID      string  `json:"run_id"`
	Tick       int64   `json:"tick"`
	Rule       string  `json:"rule"`
	Severity   string  `json:"severity"`
	Drug       string  `json:"drug"`
	RateBefore float64 `json:"rate_before"`
	RateAfter  float64 `json:"rate_after"`
	Reason     string  `json:"reason"`
}

// StatusChange captures an alarm-level transition between consecutive ticks.
type StatusChange struct {
	RunID string `json:"run_id"`
	Tick  int64  `json:"tick"`
	From  string `json:"from"`
	To    string `json:"to"`
}
