// Package rng provides deterministic random number generation for the
// world generation pipeline.
//
// # Overview
//
// Every pipeline sub-step gets its own seed, derived from the master seed
// and the sub-step's position in the schedule by DeriveStepSeed. A Stream
// is then instantiated from that derived seed and handed to the algorithm
// executing the sub-step. Because derivation is a pure function of
// (master seed, flat index, width, height), replaying the pipeline from
// scratch reproduces byte-identical random sequences at every sub-step.
//
// # Sub-Seed Derivation
//
//	seed_step = FNV1a64(masterSeed ‖ flatIndex ‖ width ‖ height)
//
// See DeriveStepSeed for the exact byte layout. The mix is pinned: any
// change to it invalidates every snapshot taken with the old version,
// which is why snapshots carry an explicit format version.
//
// # Usage
//
//	seed := rng.DeriveStepSeed(masterSeed, flatIndex, profile.Width, profile.Height)
//	stream := rng.NewStream(seed)
//	roomCount := stream.IntRange(10, 50)
//	jitter := stream.Float64Range(0.0, 1.0)
//
// # Thread Safety
//
// Stream instances are NOT thread-safe. A sub-step owns exactly one
// Stream for its duration — the PRNG is exclusively held by the
// current sub-step; don't share one across goroutines.
package rng
