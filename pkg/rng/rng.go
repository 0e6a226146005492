package rng

import "math/rand"

// Stream is a deterministic pseudo-random source for exactly one pipeline
// sub-step. It wraps math/rand.Rand, whose algorithm and byte order are
// fixed by the standard library and therefore stable across platforms and
// versions for a given Go release line, the property this package's
// determinism guarantee relies on.
type Stream struct {
	seed   uint64
	source *rand.Rand
}

// NewStream creates a Stream from an already-derived 64-bit seed. Callers
// obtain that seed from DeriveStepSeed; Stream itself does no derivation.
func NewStream(seed uint64) *Stream {
	return &Stream{
		seed:   seed,
		source: rand.New(rand.NewSource(int64(seed))), //nolint:gosec // deterministic generation, not cryptographic
	}
}

// Seed returns the seed this Stream was constructed from.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (s *Stream) Uint64() uint64 {
	return s.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return s.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (s *Stream) Float64() float64 {
	return s.source.Float64()
}

// Shuffle pseudo-randomizes the order of elements in a slice of length n.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.source.Shuffle(n, swap)
}

// IntRange returns a pseudo-random integer in [min, max]. Panics if
// min > max.
func (s *Stream) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + s.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). Panics if
// min >= max.
func (s *Stream) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + s.source.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean.
func (s *Stream) Bool() bool {
	return s.source.Intn(2) == 1
}

// WeightedChoice selects an index from weights using weighted random
// selection. Weights must be non-negative. Returns -1 if weights is empty
// or every weight is zero.
func (s *Stream) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}

	target := s.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
