package geometry

// BBox is a half-open axis-aligned box [X0,X1) x [Y0,Y1). An empty box has
// X1 <= X0 or Y1 <= Y0.
type BBox struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether the box contains no cells.
func (b BBox) Empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Union returns the smallest box containing both b and other. An empty
// operand is ignored; if both are empty the result is empty.
func (b BBox) Union(other BBox) BBox {
	if b.Empty() {
		return other
	}
	if other.Empty() {
		return b
	}
	return BBox{
		X0: minInt(b.X0, other.X0),
		Y0: minInt(b.Y0, other.Y0),
		X1: maxInt(b.X1, other.X1),
		Y1: maxInt(b.Y1, other.Y1),
	}
}

// Intersect returns the overlap of b and other, empty if they do not
// overlap.
func (b BBox) Intersect(other BBox) BBox {
	result := BBox{
		X0: maxInt(b.X0, other.X0),
		Y0: maxInt(b.Y0, other.Y0),
		X1: minInt(b.X1, other.X1),
		Y1: minInt(b.Y1, other.Y1),
	}
	if result.Empty() {
		return BBox{}
	}
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
