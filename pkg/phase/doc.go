// Package phase defines the algorithm contract every generation phase
// implements: ordered metadata (id, sub-steps, parameter schema),
// execution against a RuntimeContext, and parameter round-tripping with
// clamp-or-reject semantics.
//
// Contract: a Phase must be deterministic given the RuntimeContext's RNG
// stream — all randomness flows through ctx.RNG, never a package-level
// generator — and must treat World/BiomeMap access through the context
// exclusively, never caching a pointer across Execute calls.
package phase
