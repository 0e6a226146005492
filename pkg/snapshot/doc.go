// Package snapshot implements the versioned WorldSnapshot value record
// and its (de)serialization to the ".lwd" pretty-JSON format: a pure
// value snapshot of {seed, world-size key, layer overrides, per-phase
// parameter values, timestamp} that a pipeline replays from to
// reconstruct tiles, rather than a pixel dump.
//
// The top-level field order, and the key order within the layers
// object, are part of the format: byte-identical snapshot inputs must
// produce byte-identical output. encoding/json always sorts map keys
// alphabetically, which cannot express the required order, so this
// package hand-assembles the JSON document field by field and only
// hands the result to json.Indent for pretty-printing — a pure
// reformatting pass that never reorders keys.
package snapshot
