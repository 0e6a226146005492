// Package grid provides the World and BiomeMap raster data model, the
// immutable Block/Biome/Layer definition tables, and the WorldProfile
// that derives pixel-row ranges from layer percentages.
//
// World and BiomeMap are parallel, row-major, byte-dense grids: the same
// (width, height) pair, addressed y*width+x. Both fail gracefully on
// out-of-bounds access (reads return a sentinel, writes are discarded)
// rather than panicking, since the pipeline's geometry fills routinely
// clip shapes against map bounds.
package grid
