package sim

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrLockedDrug is returned when a host attempts to set a hard-locked drug's
// rate. Tolerating such a call silently would defeat the override-proof
// guarantee, so it is a hard error.
var ErrLockedDrug = errors.New("drug is hard-locked for this patient")

// Controller is the monitoring/control loop for one patient. It owns the
// infusion state, the per-drug PK models and the alarm status, and advances
// one tick at a time on external request.
//
// Not safe for concurrent use: a host embedding the controller must
// serialize calls into a given instance.
type Controller struct {
	cfg     *Config
	patient Patient
	runID   uuid.UUID

	lockouts  Lockouts
	starting  InfusionState
	infusions InfusionState
	pk        map[string]*PKModel

	status     Severity
	tick       int64
	elapsedMin float64
	// drugs zeroed by a RED rule, candidates for protocol resumption once
	// vitals stabilize
	suspended map[string]bool
}

// NewController validates the configuration and patient profile, computes
// the lockout set and starting protocol, and builds one PK model per
// configured drug. Any validation failure is fatal: no partial
// initialization.
func NewController(p Patient, cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("drug config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid drug config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patient profile: %w", err)
	}

	locks := EvaluateLockouts(p, cfg)
	c := &Controller{
		cfg:       cfg,
		patient:   p,
		runID:     uuid.New(),
		lockouts:  locks,
		starting:  StartingRates(p, cfg, locks),
		pk:        make(map[string]*PKModel, len(cfg.PK)),
		suspended: make(map[string]bool),
	}
	c.infusions = c.starting.Clone()
	for name, pkCfg := range cfg.PK {
		c.pk[name] = NewPKModel(p.WeightKg, pkCfg)
	}

	logrus.Infof("controller %s initialized for %dyo %.0fkg patient, lockouts=%v",
		c.runID, p.Age, p.WeightKg, locks.Drugs())
	return c, nil
}

// RunID returns the unique identifier stamped on every report of this run.
func (c *Controller) RunID() uuid.UUID { return c.runID }

// Status returns the alarm level of the most recent tick.
func (c *Controller) Status() Severity { return c.status }

// Lockouts returns a copy of the hard lockout set.
func (c *Controller) Lockouts() Lockouts { return c.lockouts.clone() }

// StartingRates returns a copy of the initial protocol rates.
func (c *Controller) StartingRates() InfusionState { return c.starting.Clone() }

// Rates returns a copy of the current infusion state.
func (c *Controller) Rates() InfusionState { return c.infusions.Clone() }

// Protocol returns the initialization output: lockouts, starting rates, and
// adjunct availability.
func (c *Controller) Protocol() ProtocolReport {
	rep := ProtocolReport{
		RunID:    c.runID,
		Lockouts: c.lockouts.clone(),
		Rates:    c.starting.Clone(),
	}
	for name, d := range c.cfg.Dosing {
		if !d.Adjunct {
			continue
		}
		if rep.Adjuncts == nil {
			rep.Adjuncts = make(map[string]string)
		}
		if reason, locked := c.lockouts[name]; locked {
			rep.Adjuncts[name] = fmt.Sprintf("LOCKED OUT: %s", reason)
		} else if d.Bolus != "" {
			rep.Adjuncts[name] = fmt.Sprintf("Available (%s)", d.Bolus)
		} else {
			rep.Adjuncts[name] = "Available"
		}
	}
	return rep
}

// CheckDrug is the preoperative advisory check for a single drug: hard-locked
// drugs are disallowed with their lockout reason, geriatric patients get a
// soft dose-reduction warning, everything else is allowed.
func (c *Controller) CheckDrug(drug string) (bool, string) {
	d, ok := c.cfg.Dosing[drug]
	if !ok {
		return false, fmt.Sprintf("drug %q is not in the configured protocol", drug)
	}
	if reason, locked := c.lockouts[drug]; locked {
		return false, fmt.Sprintf("HARD LOCK: %s", reason)
	}
	if d.AgeThreshold > 0 && c.patient.Age > d.AgeThreshold {
		return true, fmt.Sprintf("SOFT WARNING: patient age %d above %d, dose reduced by factor %.2f",
			c.patient.Age, d.AgeThreshold, d.AgeReductionFactor)
	}
	return true, "safe within protocol limits"
}

// SetRate lets the host adjust a running infusion between ticks. Attempts to
// touch a locked drug return ErrLockedDrug; unknown drugs, adjuncts and
// negative rates are rejected.
func (c *Controller) SetRate(drug string, ratePerKgHr float64) error {
	d, ok := c.cfg.Dosing[drug]
	if !ok {
		return fmt.Errorf("unknown drug %q", drug)
	}
	if d.Adjunct {
		return fmt.Errorf("adjunct drug %q carries no infusion rate", drug)
	}
	if ratePerKgHr < 0 {
		return fmt.Errorf("rate for %q must be non-negative, got %f", drug, ratePerKgHr)
	}
	if c.lockouts.Locked(drug) {
		return fmt.Errorf("cannot set rate for %q: %w", drug, ErrLockedDrug)
	}
	c.infusions[drug] = ratePerKgHr
	delete(c.suspended, drug)
	return nil
}

// Tick advances the loop one control cycle: evaluate safety rules against
// the supplied vitals, mutate the infusion state, apply the unconditional
// lockout mask, advance the PK models, and report.
func (c *Controller) Tick(v Vitals, dt time.Duration) TickReport {
	c.tick++
	dtMin := dt.Minutes()

	var fired []FiredRule
	anomalies := v.Anomalies()
	if dt <= 0 {
		anomalies = append(anomalies, fmt.Sprintf("non-positive tick duration %v", dt))
	}
	if len(anomalies) > 0 {
		// Fail toward safety: an implausible reading is a monitoring fault,
		// handled like a critical breach rather than raised past the caller.
		fired = append(fired, c.pauseAll(RuleVitalsAnomaly, strings.Join(anomalies, "; ")))
	} else {
		fired = append(fired, c.evalCritical(v)...)
	}

	// Caution rules are considered only when no critical rule fired: RED
	// dominates YELLOW within a tick.
	if !anyRed(fired) {
		fired = append(fired, c.evalCaution()...)
	}

	status := Green
	for _, f := range fired {
		status = maxSeverity(status, f.Severity)
	}

	if status == Green {
		if resumed := c.resumeSuspended(); len(resumed) > 0 {
			fired = append(fired, FiredRule{
				Name:     RuleProtocolResume,
				Severity: Green,
				Reason:   "vitals stabilized, resuming protocol rates",
				Drugs:    resumed,
			})
		}
	}

	// Unconditional lockout mask. Runs last and always, so no combination of
	// rule outcomes or host actions can raise a locked drug above zero.
	for drug := range c.lockouts {
		c.infusions[drug] = 0
	}

	if dtMin > 0 {
		c.elapsedMin += dtMin
	}
	for name, model := range c.pk {
		model.Update(RatePerKgHrToMcgPerMin(c.infusions[name], c.patient.WeightKg), dtMin)
	}
	c.status = status

	rep := TickReport{
		RunID:      c.runID,
		Tick:       c.tick,
		ElapsedMin: c.elapsedMin,
		Vitals:     v,
		Infusions:  c.infusions.Clone(),
		Status:     status,
		Rules:      fired,
	}
	if len(c.pk) > 0 {
		rep.Concentrations = make(map[string]PKSnapshot, len(c.pk))
		for name, model := range c.pk {
			rep.Concentrations[name] = PKSnapshot{Cp: model.Plasma(), Ce: model.EffectSite()}
		}
	}

	logrus.Debugf("[tick %04d] %s status=%s rules=%d", c.tick, v, status, len(fired))
	return rep
}

// evalCritical checks every critical rule against the reading. All fired
// rules apply their mutations cumulatively; there is no first-match-wins.
func (c *Controller) evalCritical(v Vitals) []FiredRule {
	thr := c.cfg.Thresholds
	var fired []FiredRule
	if v.HeartRate < thr.HRCriticalLow {
		fired = append(fired, c.stopDrugs(RuleBradycardia, c.cfg.DrugsInClass(ClassBradycardiaRisk),
			fmt.Sprintf("bradycardia: HR %.0f below critical threshold %.0f", v.HeartRate, thr.HRCriticalLow)))
	}
	if v.MAP < thr.MAPCriticalLow {
		fired = append(fired, c.pauseAll(RuleHypotension,
			fmt.Sprintf("hypotension: MAP %.0f below critical threshold %.0f", v.MAP, thr.MAPCriticalLow)))
	}
	if v.RespRate < thr.RRCriticalLow {
		fired = append(fired, c.stopDrugs(RuleRespiratoryDepression, c.cfg.DrugsInClass(ClassSedative),
			fmt.Sprintf("respiratory depression: RR %.0f below critical threshold %.0f", v.RespRate, thr.RRCriticalLow)))
	}
	if v.SBP > thr.SBPCriticalHigh {
		fired = append(fired, c.scaleDrugs(RuleHypertension, c.cfg.DrugsInClass(ClassVasoactive), c.cfg.sbpFactor(),
			fmt.Sprintf("hypertension: SBP %.0f above critical threshold %.0f", v.SBP, thr.SBPCriticalHigh)))
	}
	return fired
}

// evalCaution fires a YELLOW reduction for each running drug whose
// effect-site concentration has crossed its intervention threshold.
func (c *Controller) evalCaution() []FiredRule {
	var fired []FiredRule
	names := make([]string, 0, len(c.pk))
	for name := range c.pk {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		model := c.pk[name]
		if c.lockouts.Locked(name) || !model.AboveInterventionThreshold() {
			continue
		}
		before := c.infusions[name]
		if before <= 0 {
			// nothing running to reduce; Ce decays on its own
			continue
		}
		c.infusions[name] = before * c.cfg.cautionFactor()
		fired = append(fired, FiredRule{
			Name:     RuleEffectSiteHigh,
			Severity: Yellow,
			Reason: fmt.Sprintf("%s effect-site concentration %.3f above intervention threshold %.3f",
				name, model.EffectSite(), model.ceThreshold),
			Drugs: []string{name},
		})
	}
	return fired
}

// stopDrugs zeroes every non-locked drug in the list and marks the ones that
// were running as suspended for later resumption.
func (c *Controller) stopDrugs(rule string, drugs []string, reason string) FiredRule {
	var affected []string
	for _, name := range drugs {
		if c.lockouts.Locked(name) {
			continue
		}
		if c.infusions[name] > 0 {
			c.suspended[name] = true
		}
		c.infusions[name] = 0
		affected = append(affected, name)
	}
	return FiredRule{Name: rule, Severity: Red, Reason: reason, Drugs: affected}
}

// pauseAll zeroes every non-locked infusion.
func (c *Controller) pauseAll(rule, reason string) FiredRule {
	var all []string
	for name, d := range c.cfg.Dosing {
		if d.Adjunct {
			continue
		}
		all = append(all, name)
	}
	sort.Strings(all)
	return c.stopDrugs(rule, all, reason)
}

// scaleDrugs multiplies every non-locked drug in the list by factor.
func (c *Controller) scaleDrugs(rule string, drugs []string, factor float64, reason string) FiredRule {
	var affected []string
	for _, name := range drugs {
		if c.lockouts.Locked(name) {
			continue
		}
		c.infusions[name] *= factor
		affected = append(affected, name)
	}
	return FiredRule{Name: rule, Severity: Red, Reason: reason, Drugs: affected}
}

// resumeSuspended restores drugs stopped by an earlier RED tick to their
// protocol starting rates and returns their names sorted.
func (c *Controller) resumeSuspended() []string {
	var resumed []string
	for name := range c.suspended {
		if c.lockouts.Locked(name) {
			delete(c.suspended, name)
			continue
		}
		c.infusions[name] = c.starting[name]
		delete(c.suspended, name)
		resumed = append(resumed, name)
	}
	sort.Strings(resumed)
	return resumed
}

func anyRed(fired []FiredRule) bool {
	for _, f := range fired {
		if f.Severity == Red {
			return true
		}
	}
	return false
}
