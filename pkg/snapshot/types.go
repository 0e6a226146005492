package snapshot

import "github.com/dshills/lwd/pkg/phase"

// CurrentVersion is the snapshot format version this package writes and
// the highest version it will load. Bumping it is required whenever
// derive_step_seed or the PRNG stream algorithm changes, since either
// change invalidates replay of prior snapshots.
const CurrentVersion = 1

// NamedLayerRange is one entry of WorldSnapshot.Layers: a layer key and
// its percent range at the time of Collect.
type NamedLayerRange struct {
	Key          string
	StartPercent float64
	EndPercent   float64
}

// AlgorithmSnapshot pairs a registered phase's id with its parameter
// values at the time of Collect.
type AlgorithmSnapshot struct {
	AlgorithmID string
	Params      phase.Params
}

// WorldSnapshot is the versioned value record a saved/loaded run is
// expressed as. It holds no tile data; Load reconstructs tiles by
// replaying the pipeline from these values.
type WorldSnapshot struct {
	Version    int
	Seed       uint64
	WorldSize  string
	Layers     []NamedLayerRange
	Algorithms []AlgorithmSnapshot
	Timestamp  int64
}

// Collect builds a WorldSnapshot from already-extracted pipeline state,
// stamped with CurrentVersion. timestamp is a Unix timestamp supplied by
// the caller (this package does not read the clock).
func Collect(seed uint64, worldSize string, layers []NamedLayerRange, algorithms []AlgorithmSnapshot, timestamp int64) *WorldSnapshot {
	return &WorldSnapshot{
		Version:    CurrentVersion,
		Seed:       seed,
		WorldSize:  worldSize,
		Layers:     layers,
		Algorithms: algorithms,
		Timestamp:  timestamp,
	}
}
