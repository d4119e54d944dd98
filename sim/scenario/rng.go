package scenario

import (
	"hash/fnv"
	"math/rand"
)

// Vital signal names used as RNG stream identifiers.
const (
	SignalHR  = "hr"
	SignalMAP = "map"
	SignalRR  = "rr"
	SignalSBP = "sbp"
)

// SignalRNG provides deterministic, isolated RNG streams per vital signal,
// so that changing how one signal is sampled never perturbs the others.
// The same seed and signal name always produce the same sequence.
//
// Derivation: masterSeed XOR fnv1a64(signalName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type SignalRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewSignalRNG creates a SignalRNG from a master seed.
func NewSignalRNG(seed int64) *SignalRNG {
	return &SignalRNG{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// Stream returns the deterministically-seeded RNG for the named signal.
// The same name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (r *SignalRNG) Stream(name string) *rand.Rand {
	if rng, ok := r.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(r.seed ^ fnv1a64(name)))
	r.streams[name] = rng
	return rng
}

// Seed returns the master seed used to create this SignalRNG.
func (r *SignalRNG) Seed() int64 { return r.seed }

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
