// Package biomephase implements BiomeDivision, the reference
// phase.Phase shipped alongside the generation core: a three-sub-step
// algorithm that seeds a heightmap, carves layer bands into biome
// regions, and optionally blends the hard edges between them. It exists
// to exercise pkg/geometry's fills and pkg/rng's streams end to end, and
// to give a host something runnable without writing its own phase
// first.
package biomephase
