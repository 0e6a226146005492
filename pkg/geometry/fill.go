package geometry

import (
	"sync"

	"github.com/dshills/lwd/pkg/grid"
)

// parallelCellThreshold is the bounding-box cell count above which fills
// partition their row range across goroutines. Below it, the
// synchronization overhead is not worth it.
const parallelCellThreshold = 50_000

// clipToMap intersects a shape's bounding box with the map's own bounds,
// so fills never touch coordinates the map does not have.
func clipToMap(box BBox, width, height uint32) BBox {
	return box.Intersect(BBox{X0: 0, Y0: 0, X1: int(width), Y1: int(height)})
}

// FillBiome sets every cell inside shape's bounding box that shape
// contains to id.
func FillBiome(shape Shape, m *grid.BiomeMap, id uint8) {
	FillBiomeIf(shape, m, id, func(uint8) bool { return true })
}

// FillBiomeIf sets every cell inside shape's bounding box that shape
// contains AND predicate(current value) to id.
func FillBiomeIf(shape Shape, m *grid.BiomeMap, id uint8, predicate func(current uint8) bool) {
	box := clipToMap(shape.BoundingBox(), m.Width, m.Height)
	if box.Empty() {
		return
	}

	rows := box.Y1 - box.Y0
	cells := rows * (box.X1 - box.X0)
	if cells <= parallelCellThreshold || rows < 2 {
		fillRowRange(shape, m, id, predicate, box.Y0, box.Y1, box.X0, box.X1)
		return
	}

	workers := rows
	if workers > 8 {
		workers = 8
	}
	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for y := box.Y0; y < box.Y1; y += rowsPerWorker {
		end := y + rowsPerWorker
		if end > box.Y1 {
			end = box.Y1
		}
		wg.Add(1)
		go func(start, stop int) {
			defer wg.Done()
			fillRowRange(shape, m, id, predicate, start, stop, box.X0, box.X1)
		}(y, end)
	}
	wg.Wait()
}

// fillRowRange fills rows [y0,y1) within columns [x0,x1); disjoint row
// ranges touch disjoint slice elements, so concurrent calls over
// non-overlapping ranges need no further synchronization.
func fillRowRange(shape Shape, m *grid.BiomeMap, id uint8, predicate func(uint8) bool, y0, y1, x0, x1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !shape.Contains(x, y) {
				continue
			}
			if !predicate(m.Get(x, y)) {
				continue
			}
			m.Set(x, y, id)
		}
	}
}

// ShapeAllMatch samples cells on an integer stride within shape's
// bounding box (clipped to the map), returning true iff every sampled
// cell that shape contains satisfies predicate. A step <= 0 is treated
// as 1.
func ShapeAllMatch(shape Shape, m *grid.BiomeMap, step int, predicate func(current uint8) bool) bool {
	if step <= 0 {
		step = 1
	}
	box := clipToMap(shape.BoundingBox(), m.Width, m.Height)
	if box.Empty() {
		return true
	}
	for y := box.Y0; y < box.Y1; y += step {
		for x := box.X0; x < box.X1; x += step {
			if !shape.Contains(x, y) {
				continue
			}
			if !predicate(m.Get(x, y)) {
				return false
			}
		}
	}
	return true
}
