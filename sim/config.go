package sim

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Drug class tags referenced by the hemodynamic safety rules. Rules act on
// classes, not on hardcoded drug names, so new drugs are added purely through
// configuration.
const (
	ClassBradycardiaRisk = "bradycardia-risk"
	ClassSedative        = "sedative"
	ClassVasoactive      = "vasoactive"
	ClassAnalgesic       = "analgesic"
)

// ValidDrugClasses is the set of recognized drug class tags.
// Shared by Validate() and rule evaluation to avoid duplication.
var ValidDrugClasses = map[string]bool{
	ClassBradycardiaRisk: true,
	ClassSedative:        true,
	ClassVasoactive:      true,
	ClassAnalgesic:       true,
}

// DrugConfig describes the dosing rule for one drug.
// Rates are per-kg in the drug's source unit (mcg/kg/hr or mg/kg/hr);
// conversion to absolute mass flow happens only at the PK boundary.
type DrugConfig struct {
	StandardDose       float64  `yaml:"standard_dose"`
	Unit               string   `yaml:"unit"`
	AgeThreshold       int      `yaml:"age_threshold"`        // 0 = no age adjustment
	AgeReductionFactor float64  `yaml:"age_reduction_factor"` // applied when age > threshold
	Classes            []string `yaml:"classes"`
	Adjunct            bool     `yaml:"adjunct"` // bolus-only adjunct, carries no infusion rate
	Bolus              string   `yaml:"bolus"`   // human-readable bolus description for adjuncts
}

// ContraConfig lists the hard-contraindication predicates for one drug.
type ContraConfig struct {
	Cardiac        []string `yaml:"cardiac"`
	RenalEGFRBelow *float64 `yaml:"renal_egfr_below"` // nil = no renal rule
	Allergies      []string `yaml:"allergies"`
}

// PKConfig parameterizes the pharmacokinetic model for one drug.
type PKConfig struct {
	CentralVolPerKg         float64 `yaml:"central_vol_per_kg"` // L/kg
	K10                     float64 `yaml:"k10"`                // elimination rate constant (1/min)
	K1e                     float64 `yaml:"k1e"`                // effect-site transfer rate constant (1/min)
	CeInterventionThreshold float64 `yaml:"ce_intervention_threshold"`
}

// Thresholds holds the global hemodynamic trigger levels.
type Thresholds struct {
	HRCriticalLow   float64 `yaml:"hr_critical_low"`
	MAPCriticalLow  float64 `yaml:"map_critical_low"`
	RRCriticalLow   float64 `yaml:"rr_critical_low"`
	SBPCriticalHigh float64 `yaml:"sbp_critical_high"`
}

// ControlConfig holds optional tuning knobs for rule mutations.
// Nil pointer fields mean "not set in YAML" and fall back to defaults.
type ControlConfig struct {
	CautionReductionFactor *float64 `yaml:"caution_reduction_factor"` // default 0.5
	SBPReductionFactor     *float64 `yaml:"sbp_reduction_factor"`     // default 0.5
}

// Config is the full drug/threshold configuration document.
// It is read-only once loaded and is passed explicitly to every constructor.
type Config struct {
	Version           string                  `yaml:"version"`
	Thresholds        Thresholds              `yaml:"hemodynamic_thresholds"`
	Dosing            map[string]DrugConfig   `yaml:"drug_dosing"`
	Contraindications map[string]ContraConfig `yaml:"contraindications"`
	PK                map[string]PKConfig     `yaml:"pharmacokinetics"`
	Control           ControlConfig           `yaml:"control"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drug config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration document with strict field
// checking: unknown keys are errors so that typos cannot silently disable a
// safety rule.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing drug config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all required sections are present, all cross-references
// resolve, and all parameter ranges are sane. Any failure is fatal at
// startup: no partial initialization.
func (c *Config) Validate() error {
	if c.Thresholds.HRCriticalLow <= 0 {
		return fmt.Errorf("hemodynamic_thresholds: hr_critical_low must be positive, got %f", c.Thresholds.HRCriticalLow)
	}
	if c.Thresholds.MAPCriticalLow <= 0 {
		return fmt.Errorf("hemodynamic_thresholds: map_critical_low must be positive, got %f", c.Thresholds.MAPCriticalLow)
	}
	if c.Thresholds.RRCriticalLow <= 0 {
		return fmt.Errorf("hemodynamic_thresholds: rr_critical_low must be positive, got %f", c.Thresholds.RRCriticalLow)
	}
	if c.Thresholds.SBPCriticalHigh <= 0 {
		return fmt.Errorf("hemodynamic_thresholds: sbp_critical_high must be positive, got %f", c.Thresholds.SBPCriticalHigh)
	}
	if len(c.Dosing) == 0 {
		return fmt.Errorf("drug_dosing section is missing or empty")
	}
	for name, d := range c.Dosing {
		if d.StandardDose < 0 {
			return fmt.Errorf("drug %q: standard_dose must be non-negative, got %f", name, d.StandardDose)
		}
		if d.AgeThreshold < 0 {
			return fmt.Errorf("drug %q: age_threshold must be non-negative, got %d", name, d.AgeThreshold)
		}
		if d.AgeThreshold > 0 && (d.AgeReductionFactor <= 0 || d.AgeReductionFactor > 1) {
			return fmt.Errorf("drug %q: age_reduction_factor must be in (0,1], got %f", name, d.AgeReductionFactor)
		}
		for _, class := range d.Classes {
			if !ValidDrugClasses[class] {
				return fmt.Errorf("drug %q: unknown class %q", name, class)
			}
		}
		if d.Adjunct && d.StandardDose != 0 {
			return fmt.Errorf("adjunct drug %q must not carry an infusion dose, got %f", name, d.StandardDose)
		}
	}
	for name, contra := range c.Contraindications {
		if _, ok := c.Dosing[name]; !ok {
			return fmt.Errorf("contraindications reference unknown drug %q", name)
		}
		if contra.RenalEGFRBelow != nil && *contra.RenalEGFRBelow < 0 {
			return fmt.Errorf("drug %q: renal_egfr_below must be non-negative, got %f", name, *contra.RenalEGFRBelow)
		}
	}
	for name, pk := range c.PK {
		if _, ok := c.Dosing[name]; !ok {
			return fmt.Errorf("pharmacokinetics reference unknown drug %q", name)
		}
		if pk.CentralVolPerKg <= 0 {
			return fmt.Errorf("drug %q: central_vol_per_kg must be positive, got %f", name, pk.CentralVolPerKg)
		}
		if pk.K10 <= 0 || pk.K1e <= 0 {
			return fmt.Errorf("drug %q: k10 and k1e must be positive, got k10=%f k1e=%f", name, pk.K10, pk.K1e)
		}
		if pk.CeInterventionThreshold < 0 {
			return fmt.Errorf("drug %q: ce_intervention_threshold must be non-negative, got %f", name, pk.CeInterventionThreshold)
		}
	}
	if c.Control.CautionReductionFactor != nil {
		if f := *c.Control.CautionReductionFactor; f <= 0 || f >= 1 {
			return fmt.Errorf("control: caution_reduction_factor must be in (0,1), got %f", f)
		}
	}
	if c.Control.SBPReductionFactor != nil {
		if f := *c.Control.SBPReductionFactor; f <= 0 || f >= 1 {
			return fmt.Errorf("control: sbp_reduction_factor must be in (0,1), got %f", f)
		}
	}
	return nil
}

// DrugNames returns the configured drug names in sorted order, so that rule
// evaluation and reports are deterministic across runs.
func (c *Config) DrugNames() []string {
	names := make([]string, 0, len(c.Dosing))
	for name := range c.Dosing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DrugsInClass returns the sorted names of non-adjunct drugs carrying the
// given class tag.
func (c *Config) DrugsInClass(class string) []string {
	var names []string
	for name, d := range c.Dosing {
		if d.Adjunct {
			continue
		}
		for _, tag := range d.Classes {
			if tag == class {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

func (c *Config) cautionFactor() float64 {
	if c.Control.CautionReductionFactor != nil {
		return *c.Control.CautionReductionFactor
	}
	return 0.5
}

func (c *Config) sbpFactor() float64 {
	if c.Control.SBPReductionFactor != nil {
		return *c.Control.SBPReductionFactor
	}
	return 0.5
}
