package sim

import (
	"fmt"
	"sort"
)

// Lockouts maps a hard-locked drug name to the human-readable reason it was
// locked. Computed once at controller construction and immutable for the
// run's duration; no monitoring outcome can unlock an entry.
type Lockouts map[string]string

// Locked reports whether the drug is hard-locked.
func (l Lockouts) Locked(drug string) bool {
	_, ok := l[drug]
	return ok
}

// Drugs returns the locked drug names in sorted order.
func (l Lockouts) Drugs() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l Lockouts) clone() Lockouts {
	out := make(Lockouts, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// EvaluateLockouts computes the hard contraindication set for a patient.
// A drug is locked if any configured predicate matches: a comorbidity tag on
// the drug's cardiac/organ list, eGFR below the drug's renal threshold, or an
// allergy tag on the drug's allergy list. Pure function: the same profile and
// config always yield the same lockouts.
func EvaluateLockouts(p Patient, cfg *Config) Lockouts {
	locks := make(Lockouts)
	for _, name := range cfg.DrugNames() {
		contra, ok := cfg.Contraindications[name]
		if !ok {
			continue
		}
		if tag, hit := p.HasComorbidity(contra.Cardiac); hit {
			locks[name] = fmt.Sprintf("contraindicated condition: %s", tag)
			continue
		}
		if contra.RenalEGFRBelow != nil && p.EGFR < *contra.RenalEGFRBelow {
			locks[name] = fmt.Sprintf("severe renal impairment: eGFR %.1f below threshold %.1f", p.EGFR, *contra.RenalEGFRBelow)
			continue
		}
		if tag, hit := p.HasAllergy(contra.Allergies); hit {
			locks[name] = fmt.Sprintf("known allergy: %s", tag)
		}
	}
	return locks
}
