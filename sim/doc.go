// Package sim provides the core closed-loop supervision engine for simulated
// multimodal drug infusions.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - patient.go: the immutable risk-factor profile everything else consumes
//   - controller.go: the per-tick state machine (GREEN/YELLOW/RED) that owns
//     infusion rates and drives the PK models
//   - config.go: the data-driven drug/threshold configuration all rules
//     iterate over
//
// # Architecture
//
// The sim package is the synchronous engine; collaborators live in
// sub-packages:
//   - sim/scenario/: deterministic vitals generation and CSV replay
//   - sim/trace/: pure data records of per-tick interventions
//
// The engine is single-threaded and cooperative: the host calls
// Controller.Tick once per cycle with a vitals reading and the elapsed time,
// and the TickReport returned is the sole observable output per cycle. A host
// that embeds the controller in a concurrent program must serialize calls
// into a given controller instance; the engine provides no internal locking.
//
// # Safety Model
//
// Hard contraindication lockouts are computed once at construction and are
// override-proof: a final masking step forces every locked drug to rate zero
// after all rule mutations, on every tick, regardless of vitals or host
// action. Critical (RED) rules apply cumulatively within a tick and always
// dominate caution (YELLOW) rules.
package sim
