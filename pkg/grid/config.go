package grid

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// blockRecord is the JSON shape of one entry in blocks.json.
type blockRecord struct {
	Name        string   `json:"name"`
	RGBA        [4]uint8 `json:"rgba"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
}

// LoadBlocksFromFile reads and parses a blocks.json file.
func LoadBlocksFromFile(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blocks file: %w", err)
	}
	return LoadBlocks(data)
}

// LoadBlocks parses blocks.json content: a mapping from integer id
// (as a string key) to a block record.
func LoadBlocks(data []byte) ([]Block, error) {
	var raw map[string]blockRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing blocks JSON: %v", ErrConfigurationInvalid, err)
	}

	blocks := make([]Block, 0, len(raw))
	for idStr, rec := range raw {
		id, err := strconv.ParseUint(idStr, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: block id %q is not a valid uint8: %v", ErrConfigurationInvalid, idStr, err)
		}
		blocks = append(blocks, Block{
			ID:          uint8(id),
			Name:        rec.Name,
			RGBA:        rec.RGBA,
			Category:    rec.Category,
			Description: rec.Description,
		})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return blocks, nil
}

// biomeRecord is the JSON shape of one entry in biome.json.
type biomeRecord struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	OverlayColor [4]uint8 `json:"overlay_color"`
	Description  string   `json:"description"`
}

// LoadBiomesFromFile reads and parses a biome.json file.
func LoadBiomesFromFile(path string) ([]Biome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading biome file: %w", err)
	}
	return LoadBiomes(data)
}

// LoadBiomes parses biome.json content: a mapping from integer id
// (as a string key) to a biome record. Rejects duplicate biome ids
// (e.g. "1" and "01") and duplicate biome keys.
func LoadBiomes(data []byte) ([]Biome, error) {
	var raw map[string]biomeRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing biome JSON: %v", ErrConfigurationInvalid, err)
	}

	biomes := make([]Biome, 0, len(raw))
	seenKeys := make(map[string]bool, len(raw))
	seenIDs := make(map[uint64]bool, len(raw))
	for idStr, rec := range raw {
		id, err := strconv.ParseUint(idStr, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: biome id %q is not a valid uint8: %v", ErrConfigurationInvalid, idStr, err)
		}
		if seenIDs[id] {
			return nil, fmt.Errorf("%w: duplicate biome id %d", ErrConfigurationInvalid, id)
		}
		seenIDs[id] = true
		if seenKeys[rec.Key] {
			return nil, fmt.Errorf("%w: duplicate biome key %q", ErrConfigurationInvalid, rec.Key)
		}
		seenKeys[rec.Key] = true

		biomes = append(biomes, Biome{
			ID:           uint8(id),
			Key:          rec.Key,
			Name:         rec.Name,
			OverlayColor: rec.OverlayColor,
			Description:  rec.Description,
		})
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i].ID < biomes[j].ID })
	return biomes, nil
}

// WorldSize is one named entry of world.json's world_sizes table. Width
// and Height are nil for a user-fillable custom slot.
type WorldSize struct {
	Name        string
	Width       *uint32
	Height      *uint32
	Description string
}

// worldSizeRecord is the JSON shape of one world_sizes entry.
type worldSizeRecord struct {
	Width       *uint32 `json:"width"`
	Height      *uint32 `json:"height"`
	Description string  `json:"description"`
}

// layerRecord is the JSON shape of one layers entry.
type layerRecord struct {
	StartPercent float64 `json:"start_percent"`
	EndPercent   float64 `json:"end_percent"`
	ShortName    string  `json:"short_name"`
	Description  string  `json:"description"`
}

// worldConfigDoc is the JSON shape of world.json.
type worldConfigDoc struct {
	WorldSizes map[string]worldSizeRecord `json:"world_sizes"`
	Layers     map[string]layerRecord     `json:"layers"`
}

// LoadWorldConfigFromFile reads and parses a world.json file.
func LoadWorldConfigFromFile(path string) (map[string]WorldSize, []Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading world config file: %w", err)
	}
	return LoadWorldConfig(data)
}

// LoadWorldConfig parses world.json content: named world sizes and the
// ordered, validated layer table. Layers are returned sorted by
// StartPercent and must cover [0,100] without gaps or overlaps.
func LoadWorldConfig(data []byte) (map[string]WorldSize, []Layer, error) {
	var doc worldConfigDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing world JSON: %v", ErrConfigurationInvalid, err)
	}

	sizes := make(map[string]WorldSize, len(doc.WorldSizes))
	for name, rec := range doc.WorldSizes {
		if (rec.Width != nil && *rec.Width == 0) || (rec.Height != nil && *rec.Height == 0) {
			return nil, nil, fmt.Errorf("%w: world size %q has non-positive dimension", ErrConfigurationInvalid, name)
		}
		sizes[name] = WorldSize{
			Name:        name,
			Width:       rec.Width,
			Height:      rec.Height,
			Description: rec.Description,
		}
	}

	layers := make([]Layer, 0, len(doc.Layers))
	for key, rec := range doc.Layers {
		layers = append(layers, Layer{
			Key:          key,
			StartPercent: rec.StartPercent,
			EndPercent:   rec.EndPercent,
			ShortName:    rec.ShortName,
			Description:  rec.Description,
		})
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].StartPercent < layers[j].StartPercent })

	if err := ValidateLayers(layers); err != nil {
		return nil, nil, err
	}

	return sizes, layers, nil
}
