// Package geometry provides the composable Shape language used to paint
// biome regions: primitives (Rect, Ellipse, Trapezoid, Column), boolean
// combinators (Union, Intersect, Subtract), and the BiomeMap fill
// operations built on top of them.
//
// Every Shape answers Contains, BoundingBox, and TypeName; combinators
// delegate Contains as a boolean expression over their operands and
// nest to arbitrary depth. Fills are restricted to the shape's bounding
// box intersected with map bounds, and above a cell-count threshold run
// row-partitioned across goroutines — the result is required to be
// byte-identical to the serial path, since a fill writes one id per cell
// with no ordering dependency between cells.
package geometry
