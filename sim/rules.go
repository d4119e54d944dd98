package sim

// Safety rule names as they appear in tick reports and traces.
const (
	RuleVitalsAnomaly         = "vitals-anomaly"
	RuleBradycardia           = "bradycardia"
	RuleHypotension           = "hypotension"
	RuleRespiratoryDepression = "respiratory-depression"
	RuleHypertension          = "hypertension"
	RuleEffectSiteHigh        = "effect-site-high"
	RuleProtocolResume        = "protocol-resume"
)

// FiredRule records one rule that triggered during a tick, with the drugs it
// acted on and a human-readable reason.
type FiredRule struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason"`
	Drugs    []string `json:"drugs,omitempty"`
}
