package biomephase

import (
	"fmt"

	"github.com/dshills/lwd/pkg/geometry"
	"github.com/dshills/lwd/pkg/phase"
)

// SharedHeightmapKey is the shared-store key BiomeDivision writes its
// heightmap under: a []float64 of length width*height, row-major, one
// sample per cell. Any later-registered phase that wants terrain
// context reads this key by convention.
const SharedHeightmapKey = "heightmap"

var paramDefs = []phase.ParamDef{
	{
		Key: "region_count", DisplayName: "Region Count",
		Description: "Number of biome regions carved across each layer's width",
		Type:        phase.ParamInt, Min: 3, Max: 12, Default: 6,
		Group: "Division",
	},
	{
		Key: "region_jitter", DisplayName: "Region Jitter",
		Description: "Largest random shift of a region boundary, as a fraction of half a region's width; the blend pass does not use it",
		Type:        phase.ParamFloat, Min: 0, Max: 1, Default: 0.4,
		Group: "Division",
	},
	{
		Key: "blend_bands", DisplayName: "Blend Bands",
		Description: "Soften hard region seams using the heightmap",
		Type:        phase.ParamBool, Default: true,
		Group: "Division",
	},
	{
		Key: "dominant_biome", DisplayName: "Dominant Biome",
		Description: "Biome key favored when selecting a region's biome; empty means no favorite",
		Type:        phase.ParamText, Default: "",
		Group: "Selection",
	},
	{
		Key: "layer_bias", DisplayName: "Layer Bias",
		Description: "Skews region density toward the surface or the depths",
		Type:        phase.ParamEnum, EnumOptions: []string{"uniform", "surface_heavy", "depth_heavy"}, Default: "uniform",
		Group: "Division",
	},
}

func defaultParams() phase.Params {
	return phase.Params{
		"region_count":   6,
		"region_jitter":  0.4,
		"blend_bands":    true,
		"dominant_biome": "",
		"layer_bias":     "uniform",
	}
}

func init() {
	phase.Register("biome_division", func() phase.Phase { return New() })
}

// BiomeDivision is the reference phase: it seeds a heightmap, carves
// each layer's width into biome regions, and optionally blends the
// seams between adjacent regions. It keeps no internal cache, so
// OnReset has nothing to clear — its only state is the Params map
// SetParams/GetParams manage, which a pipeline reset does not touch.
type BiomeDivision struct {
	params phase.Params
}

// New constructs a BiomeDivision with its default parameters.
func New() *BiomeDivision {
	return &BiomeDivision{params: defaultParams()}
}

func (b *BiomeDivision) Meta() phase.PhaseMeta {
	return phase.PhaseMeta{
		ID:          "biome_division",
		Name:        "Biome Division",
		Description: "Divides each height layer into biome regions from a seeded heightmap",
		Steps: []phase.StepMeta{
			{Name: "Seed Heightmap", Description: "Fills the shared heightmap with per-cell noise"},
			{Name: "Carve Layer Bands", Description: "Fills each layer's width with biome regions"},
			{Name: "Blend Biome Boundaries", Description: "Softens hard seams between adjacent regions"},
		},
		Params: paramDefs,
	}
}

func (b *BiomeDivision) GetParams() phase.Params {
	return b.params.Clone()
}

// SetParams validates candidate against every currently-known key before
// committing: a merged copy is built from the current params, candidate
// overrides are applied to the copy, and only a successfully validated
// copy replaces b.params — so a rejected call leaves prior state intact.
func (b *BiomeDivision) SetParams(candidate phase.Params) error {
	merged := b.params.Clone()
	for k, v := range candidate {
		merged[k] = v
	}
	validated, err := phase.ValidateAndClamp(paramDefs, merged)
	if err != nil {
		return err
	}
	b.params = validated
	return nil
}

func (b *BiomeDivision) OnReset() {}

func (b *BiomeDivision) Execute(stepIndex int, ctx *phase.RuntimeContext) error {
	switch stepIndex {
	case 0:
		return b.seedHeightmap(ctx)
	case 1:
		return b.carveLayerBands(ctx)
	case 2:
		return b.blendBoundaries(ctx)
	default:
		return fmt.Errorf("biomephase: biome_division has no step %d", stepIndex)
	}
}

func (b *BiomeDivision) seedHeightmap(ctx *phase.RuntimeContext) error {
	width, height := int(ctx.Profile.Width), int(ctx.Profile.Height)
	heightmap := make([]float64, width*height)
	for i := range heightmap {
		heightmap[i] = ctx.RNG.Float64()
	}
	ctx.Shared[SharedHeightmapKey] = heightmap
	return nil
}

func (b *BiomeDivision) carveLayerBands(ctx *phase.RuntimeContext) error {
	if len(ctx.Biomes) == 0 {
		return fmt.Errorf("biomephase: carve layer bands: no biomes configured")
	}

	bm := ctx.EnsureBiomeMap()
	baseCount, _ := b.params["region_count"].(int)
	jitter, _ := b.params["region_jitter"].(float64)
	dominant, _ := b.params["dominant_biome"].(string)
	biasMode, _ := b.params["layer_bias"].(string)

	layers := ctx.Profile.Layers
	for layerIdx, layer := range layers {
		startRow, endRow, err := ctx.LayerRangePx(layer.Key)
		if err != nil {
			return fmt.Errorf("biomephase: carve layer bands: %w", err)
		}

		regionCount := regionCountForLayer(baseCount, layerIdx, len(layers), biasMode)
		columnWidth := float64(ctx.Profile.Width) / float64(regionCount)
		jitterPx := int(jitter * columnWidth * 0.5)

		prevX1 := 0
		for col := 0; col < regionCount; col++ {
			x0 := prevX1
			x1 := int(float64(col+1) * columnWidth)
			if col == regionCount-1 {
				x1 = int(ctx.Profile.Width)
			} else if jitterPx > 0 {
				x1 += ctx.RNG.IntRange(-jitterPx, jitterPx)
			}
			if x0 >= x1 {
				continue
			}
			prevX1 = x1

			biomeID := selectBiome(ctx, dominant)
			shape := geometry.Rect{X0: x0, Y0: startRow, X1: x1, Y1: endRow}
			geometry.FillBiome(shape, bm, biomeID)
			ctx.PushShape(geometry.NewShapeRecord(
				fmt.Sprintf("%s/region-%d", layer.Key, col),
				shape,
				biomeOverlayColor(ctx, biomeID),
			))
		}
	}
	return nil
}

func (b *BiomeDivision) blendBoundaries(ctx *phase.RuntimeContext) error {
	blend, _ := b.params["blend_bands"].(bool)
	if !blend {
		return nil
	}
	bm := ctx.BiomeMap
	if bm == nil {
		return nil
	}

	raw, ok := ctx.Shared[SharedHeightmapKey]
	if !ok {
		return fmt.Errorf("biomephase: blend boundaries: %q missing from shared store", SharedHeightmapKey)
	}
	heightmap, ok := raw.([]float64)
	if !ok {
		return fmt.Errorf("biomephase: blend boundaries: %q has unexpected type %T", SharedHeightmapKey, raw)
	}

	width := int(ctx.Profile.Width)
	for _, layer := range ctx.Profile.Layers {
		startRow, endRow, err := ctx.LayerRangePx(layer.Key)
		if err != nil {
			return fmt.Errorf("biomephase: blend boundaries: %w", err)
		}
		for y := startRow; y < endRow; y++ {
			for x := 1; x < width; x++ {
				left := bm.Get(x-1, y)
				cur := bm.Get(x, y)
				if left == 0 || cur == 0 || left == cur {
					continue
				}
				idx := y*width + x
				if idx < 0 || idx >= len(heightmap) {
					continue
				}
				if heightmap[idx] < 0.5 {
					bm.Set(x, y, left)
				}
			}
		}
	}
	return nil
}

// regionCountForLayer scales baseCount by a layer's position when
// layer_bias asks for it: surface_heavy gives the topmost layer the
// full count and halves it by the bottom layer; depth_heavy is the
// mirror image. uniform (and any single-layer profile) leaves
// baseCount untouched.
func regionCountForLayer(baseCount, layerIndex, numLayers int, biasMode string) int {
	if numLayers <= 1 || biasMode == "uniform" {
		return baseCount
	}
	frac := float64(layerIndex) / float64(numLayers-1)
	var weight float64
	switch biasMode {
	case "surface_heavy":
		weight = 1.0 - 0.5*frac
	case "depth_heavy":
		weight = 0.5 + 0.5*frac
	default:
		return baseCount
	}
	n := int(float64(baseCount) * weight)
	if n < 1 {
		n = 1
	}
	return n
}

// selectBiome picks a biome id for one region. With a non-empty
// dominant key, half the draws favor it when present in ctx.Biomes; the
// rest (and every draw when dominant is unset or unmatched) pick
// uniformly at random.
func selectBiome(ctx *phase.RuntimeContext, dominant string) uint8 {
	if dominant != "" && ctx.RNG.Float64() < 0.5 {
		for _, bi := range ctx.Biomes {
			if bi.Key == dominant {
				return bi.ID
			}
		}
	}
	idx := ctx.RNG.IntRange(0, len(ctx.Biomes)-1)
	return ctx.Biomes[idx].ID
}

func biomeOverlayColor(ctx *phase.RuntimeContext, id uint8) [4]uint8 {
	for _, bi := range ctx.Biomes {
		if bi.ID == id {
			return bi.OverlayColor
		}
	}
	return [4]uint8{}
}
