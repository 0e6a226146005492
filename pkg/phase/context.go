package phase

import (
	"github.com/dshills/lwd/pkg/geometry"
	"github.com/dshills/lwd/pkg/grid"
	"github.com/dshills/lwd/pkg/rng"
)

// RuntimeContext is passed by mutable reference to Phase.Execute. World
// is read/write; Profile, Blocks, and Biomes are read-only; BiomeMap may
// be nil until the first phase to need one creates it via
// EnsureBiomeMap; Shared is a typed key-value hand-off store cleared on
// pipeline reset; ShapeLog is write-only for the duration of one
// sub-step.
type RuntimeContext struct {
	World    *grid.World
	Profile  *grid.WorldProfile
	Blocks   []grid.Block
	Biomes   []grid.Biome
	RNG      *rng.Stream
	BiomeMap *grid.BiomeMap
	Shared   map[string]any

	shapeLog *[]geometry.ShapeRecord
}

// NewRuntimeContext builds a RuntimeContext. shapeLog must point at the
// slice the pipeline will collect into after Execute returns.
func NewRuntimeContext(
	world *grid.World,
	profile *grid.WorldProfile,
	blocks []grid.Block,
	biomes []grid.Biome,
	stream *rng.Stream,
	biomeMap *grid.BiomeMap,
	shared map[string]any,
	shapeLog *[]geometry.ShapeRecord,
) *RuntimeContext {
	return &RuntimeContext{
		World:    world,
		Profile:  profile,
		Blocks:   blocks,
		Biomes:   biomes,
		RNG:      stream,
		BiomeMap: biomeMap,
		Shared:   shared,
		shapeLog: shapeLog,
	}
}

// EnsureBiomeMap returns ctx.BiomeMap, creating and attaching one sized
// to Profile's dimensions if it is absent.
func (ctx *RuntimeContext) EnsureBiomeMap() *grid.BiomeMap {
	if ctx.BiomeMap == nil {
		ctx.BiomeMap = grid.NewBiomeMap(ctx.Profile.Width, ctx.Profile.Height)
	}
	return ctx.BiomeMap
}

// PushShape records a ShapeRecord to the current sub-step's shape log.
// Algorithms call this once per geometric fill.
func (ctx *RuntimeContext) PushShape(record geometry.ShapeRecord) {
	*ctx.shapeLog = append(*ctx.shapeLog, record)
}

// LayerRange returns the [start,end) percent range for the named layer.
func (ctx *RuntimeContext) LayerRange(key string) (start, end float64, err error) {
	return ctx.Profile.LayerRange(key)
}

// LayerRangePx returns the [startRow,endRow) pixel-row range for the
// named layer.
func (ctx *RuntimeContext) LayerRangePx(key string) (startRow, endRow int, err error) {
	return ctx.Profile.LayerRangePx(key)
}

// LayerStart returns the start percent of the named layer.
func (ctx *RuntimeContext) LayerStart(key string) (float64, error) {
	return ctx.Profile.LayerStart(key)
}

// LayerEnd returns the end percent of the named layer.
func (ctx *RuntimeContext) LayerEnd(key string) (float64, error) {
	return ctx.Profile.LayerEnd(key)
}

// LayerStartPx returns the start pixel row of the named layer.
func (ctx *RuntimeContext) LayerStartPx(key string) (int, error) {
	return ctx.Profile.LayerStartPx(key)
}

// LayerEndPx returns the end pixel row of the named layer.
func (ctx *RuntimeContext) LayerEndPx(key string) (int, error) {
	return ctx.Profile.LayerEndPx(key)
}
