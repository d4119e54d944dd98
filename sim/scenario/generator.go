package scenario

import (
	"math/rand"

	sim "github.com/infusion-sim/infusion-sim/sim"
)

// Generator produces a deterministic stream of vitals from a phased spec.
// The same spec and seed always yield the same sequence.
type Generator struct {
	spec *Spec
	rng  *SignalRNG
	tick int64
}

// NewGenerator creates a generator seeded from the spec.
func NewGenerator(spec *Spec) *Generator {
	return &Generator{
		spec: spec,
		rng:  NewSignalRNG(spec.Seed),
	}
}

// Next returns the vitals reading for the next tick, or ok=false when the
// scenario is exhausted.
func (g *Generator) Next() (sim.Vitals, bool) {
	phase, ok := g.phaseFor(g.tick)
	if !ok {
		return sim.Vitals{}, false
	}
	g.tick++
	return sim.Vitals{
		HeartRate: sample(g.rng.Stream(SignalHR), phase.HR),
		MAP:       sample(g.rng.Stream(SignalMAP), phase.MAP),
		RespRate:  sample(g.rng.Stream(SignalRR), phase.RR),
		SBP:       sample(g.rng.Stream(SignalSBP), phase.SBP),
	}, true
}

func (g *Generator) phaseFor(tick int64) (PhaseSpec, bool) {
	var offset int64
	for _, phase := range g.spec.Phases {
		if tick < offset+phase.Ticks {
			return phase, true
		}
		offset += phase.Ticks
	}
	return PhaseSpec{}, false
}

func sample(rng *rand.Rand, sig SignalSpec) float64 {
	v := sig.Mean + sig.Stdev*rng.NormFloat64()
	if v < sig.Min {
		return sig.Min
	}
	if v > sig.Max {
		return sig.Max
	}
	return v
}
