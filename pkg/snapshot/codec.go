package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

type layerRangeWire struct {
	StartPercent float64 `json:"start_percent"`
	EndPercent   float64 `json:"end_percent"`
}

type algorithmWire struct {
	AlgorithmID string      `json:"algorithm_id"`
	Params      interface{} `json:"params"`
}

// marshalOrdered hand-assembles the top-level document in the field
// order: version, seed, world_size, layers (layer order),
// algorithms (registration order), timestamp.
func marshalOrdered(snap *WorldSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	fmt.Fprintf(&buf, `"version":%d,`, snap.Version)
	fmt.Fprintf(&buf, `"seed":%d,`, snap.Seed)

	worldSizeJSON, err := json.Marshal(snap.WorldSize)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, `"world_size":%s,`, worldSizeJSON)

	buf.WriteString(`"layers":{`)
	for i, l := range snap.Layers {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(l.Key)
		if err != nil {
			return nil, err
		}
		rangeJSON, err := json.Marshal(layerRangeWire{StartPercent: l.StartPercent, EndPercent: l.EndPercent})
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(rangeJSON)
	}
	buf.WriteString(`},`)

	buf.WriteString(`"algorithms":[`)
	for i, a := range snap.Algorithms {
		if i > 0 {
			buf.WriteByte(',')
		}
		entryJSON, err := json.Marshal(algorithmWire{AlgorithmID: a.AlgorithmID, Params: a.Params})
		if err != nil {
			return nil, err
		}
		buf.Write(entryJSON)
	}
	buf.WriteString(`],`)

	fmt.Fprintf(&buf, `"timestamp":%d}`, snap.Timestamp)

	return buf.Bytes(), nil
}

// Save writes snap to w as pretty-printed JSON with the field order
// marshalOrdered establishes. json.Indent only reformats whitespace; it
// never reorders object keys, so the order survives pretty-printing.
func Save(w io.Writer, snap *WorldSnapshot) error {
	compact, err := marshalOrdered(snap)
	if err != nil {
		return fmt.Errorf("snapshot: marshaling: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return fmt.Errorf("snapshot: indenting: %w", err)
	}
	pretty.WriteByte('\n')

	if _, err := w.Write(pretty.Bytes()); err != nil {
		return fmt.Errorf("snapshot: writing: %w", err)
	}
	return nil
}

// SaveToFile writes snap to path, creating or truncating it.
func SaveToFile(path string, snap *WorldSnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: creating file: %w", err)
	}
	defer f.Close()
	return Save(f, snap)
}

var knownTopLevelFields = map[string]bool{
	"version": true, "seed": true, "world_size": true,
	"layers": true, "algorithms": true, "timestamp": true,
}

// Load parses a WorldSnapshot document. Unknown top-level fields
// produce a warning, not an error; version > CurrentVersion is an
// error. Layer order in the returned Layers slice is normalized to
// ascending StartPercent, since a JSON object's own key order is not
// preserved by decoding into a Go map.
func Load(r io.Reader) (*WorldSnapshot, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: reading: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("snapshot: parsing: %w", err)
	}

	var warnings []string
	for key := range raw {
		if !knownTopLevelFields[key] {
			warnings = append(warnings, fmt.Sprintf("unknown top-level field %q ignored", key))
		}
	}
	sort.Strings(warnings)

	snap := &WorldSnapshot{}

	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &snap.Version); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"version\": %w", err)
		}
	}
	if snap.Version > CurrentVersion {
		return nil, warnings, fmt.Errorf("snapshot: version %d exceeds supported version %d", snap.Version, CurrentVersion)
	}

	if v, ok := raw["seed"]; ok {
		if err := json.Unmarshal(v, &snap.Seed); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"seed\": %w", err)
		}
	}
	if v, ok := raw["world_size"]; ok {
		if err := json.Unmarshal(v, &snap.WorldSize); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"world_size\": %w", err)
		}
	}
	if v, ok := raw["timestamp"]; ok {
		if err := json.Unmarshal(v, &snap.Timestamp); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"timestamp\": %w", err)
		}
	}

	if v, ok := raw["layers"]; ok {
		var layerMap map[string]layerRangeWire
		if err := json.Unmarshal(v, &layerMap); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"layers\": %w", err)
		}
		for key, rng := range layerMap {
			snap.Layers = append(snap.Layers, NamedLayerRange{Key: key, StartPercent: rng.StartPercent, EndPercent: rng.EndPercent})
		}
		sort.Slice(snap.Layers, func(i, j int) bool { return snap.Layers[i].StartPercent < snap.Layers[j].StartPercent })
	}

	if v, ok := raw["algorithms"]; ok {
		var entries []algorithmRawWire
		if err := json.Unmarshal(v, &entries); err != nil {
			return nil, warnings, fmt.Errorf("snapshot: field \"algorithms\": %w", err)
		}
		for _, e := range entries {
			var params map[string]any
			if len(e.Params) > 0 {
				if err := json.Unmarshal(e.Params, &params); err != nil {
					return nil, warnings, fmt.Errorf("snapshot: algorithm %q params: %w", e.AlgorithmID, err)
				}
			}
			snap.Algorithms = append(snap.Algorithms, AlgorithmSnapshot{AlgorithmID: e.AlgorithmID, Params: params})
		}
	}

	return snap, warnings, nil
}

type algorithmRawWire struct {
	AlgorithmID string          `json:"algorithm_id"`
	Params      json.RawMessage `json:"params"`
}

// LoadFromFile parses the WorldSnapshot document at path.
func LoadFromFile(path string) (*WorldSnapshot, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: opening file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
