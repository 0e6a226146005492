// Package shapesvg renders a sub-step's shape log as an SVG debug
// overlay: one rectangle per ShapeRecord's bounding box, in its preview
// color, with an optional label. It exists purely for a host's
// debugging UI — it is never part of the generation pipeline itself and
// never feeds back into World or BiomeMap.
package shapesvg
