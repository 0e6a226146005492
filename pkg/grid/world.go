package grid

// World is a row-major 2D grid of tile identifiers. Index (x, y) maps to
// tiles[y*width+x]. Out-of-bounds reads fail gracefully; out-of-bounds
// writes are silently discarded.
type World struct {
	Width  uint32
	Height uint32
	Tiles  []uint8
}

// NewWorld creates a World with every tile zeroed (air).
func NewWorld(width, height uint32) *World {
	return &World{
		Width:  width,
		Height: height,
		Tiles:  make([]uint8, int(width)*int(height)),
	}
}

// index returns the linear offset for (x, y) and whether it is in bounds.
func (w *World) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= int(w.Width) || y >= int(w.Height) {
		return 0, false
	}
	return y*int(w.Width)+x, true
}

// Get returns the tile at (x, y) and whether the position was in bounds.
func (w *World) Get(x, y int) (uint8, bool) {
	idx, ok := w.index(x, y)
	if !ok {
		return 0, false
	}
	return w.Tiles[idx], true
}

// GetOrAir returns the tile at (x, y), or 0 (air) if out of bounds.
func (w *World) GetOrAir(x, y int) uint8 {
	v, ok := w.Get(x, y)
	if !ok {
		return 0
	}
	return v
}

// Set writes the tile at (x, y). Out-of-bounds writes are silently
// discarded.
func (w *World) Set(x, y int, v uint8) {
	idx, ok := w.index(x, y)
	if !ok {
		return
	}
	w.Tiles[idx] = v
}

// Reset zeroes every tile, leaving width/height unchanged.
func (w *World) Reset() {
	for i := range w.Tiles {
		w.Tiles[i] = 0
	}
}

// ToRGBA maps every tile through blocks[id].RGBA, returning raw RGBA
// bytes sized width*height*4. This is the full extent of this package's
// PNG-export contract: it stops at producing pixel bytes and
// dimensions and never touches image/png, so PNG container encoding
// remains an external collaborator's job.
func (w *World) ToRGBA(blocks []Block) (width, height int, pixels []byte) {
	lut := make(map[uint8][4]uint8, len(blocks))
	for _, b := range blocks {
		lut[b.ID] = b.RGBA
	}

	out := make([]byte, len(w.Tiles)*4)
	for i, tile := range w.Tiles {
		rgba := lut[tile]
		out[i*4+0] = rgba[0]
		out[i*4+1] = rgba[1]
		out[i*4+2] = rgba[2]
		out[i*4+3] = rgba[3]
	}
	return int(w.Width), int(w.Height), out
}

// BiomeMap is a row-major 2D grid of biome identifiers parallel to a
// World. Cell value 0 means unassigned. Same bounds semantics as World.
type BiomeMap struct {
	Width  uint32
	Height uint32
	Cells  []uint8
}

// NewBiomeMap creates a BiomeMap with every cell unassigned (0).
func NewBiomeMap(width, height uint32) *BiomeMap {
	return &BiomeMap{
		Width:  width,
		Height: height,
		Cells:  make([]uint8, int(width)*int(height)),
	}
}

func (m *BiomeMap) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return 0, false
	}
	return y*int(m.Width)+x, true
}

// Get returns the biome id at (x, y), or 0 (unassigned) if out of bounds.
func (m *BiomeMap) Get(x, y int) uint8 {
	idx, ok := m.index(x, y)
	if !ok {
		return 0
	}
	return m.Cells[idx]
}

// Set writes the biome id at (x, y). Out-of-bounds writes are silently
// discarded.
func (m *BiomeMap) Set(x, y int, id uint8) {
	idx, ok := m.index(x, y)
	if !ok {
		return
	}
	m.Cells[idx] = id
}
