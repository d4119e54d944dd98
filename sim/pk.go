package sim

// PKModel tracks plasma (Cp) and effect-site (Ce) concentration for a single
// drug. One instance per drug; only the owning controller calls Update.
//
// The model is a one-compartment mass balance with first-order elimination
// and a first-order effect-compartment link:
//
//	dCp/dt = rate/Vc − k10·Cp
//	dCe/dt = k1e·(Cp − Ce)
//
// integrated with one explicit Euler step per call. That is acceptable
// because the control cycle (seconds to a minute) is short relative to the
// time constants; it is a simulation aid, not a validated clinical PK model.
type PKModel struct {
	vc          float64 // central compartment volume (L), central_vol_per_kg × weight
	k10         float64 // elimination rate constant (1/min)
	k1e         float64 // effect-site transfer rate constant (1/min)
	ceThreshold float64

	cp float64 // plasma concentration (ng/mL)
	ce float64 // effect-site concentration (ng/mL)
}

// NewPKModel builds a model for one drug from its PK parameters and the
// patient's weight. Concentrations start at zero.
func NewPKModel(weightKg float64, cfg PKConfig) *PKModel {
	return &PKModel{
		vc:          cfg.CentralVolPerKg * weightKg,
		k10:         cfg.K10,
		k1e:         cfg.K1e,
		ceThreshold: cfg.CeInterventionThreshold,
	}
}

// Update advances the model by dtMin minutes of infusion at rateMcgPerMin.
// Concentrations are clamped at zero; a non-positive dt is a no-op.
func (m *PKModel) Update(rateMcgPerMin, dtMin float64) {
	if dtMin <= 0 {
		return
	}
	infused := rateMcgPerMin * dtMin
	eliminated := m.cp * m.k10 * m.vc * dtMin
	mass := m.cp*m.vc + infused - eliminated
	if mass < 0 {
		m.cp = 0
	} else {
		m.cp = mass / m.vc
	}
	m.ce += m.k1e * (m.cp - m.ce) * dtMin
	if m.ce < 0 {
		m.ce = 0
	}
}

// Plasma returns the current plasma concentration.
func (m *PKModel) Plasma() float64 { return m.cp }

// EffectSite returns the current effect-site concentration.
func (m *PKModel) EffectSite() float64 { return m.ce }

// CentralVolume returns the weight-scaled central compartment volume in L.
func (m *PKModel) CentralVolume() float64 { return m.vc }

// AboveInterventionThreshold reports whether Ce has crossed the configured
// caution threshold. A zero threshold disables the signal.
func (m *PKModel) AboveInterventionThreshold() bool {
	return m.ceThreshold > 0 && m.ce > m.ceThreshold
}
