package geometry

// Shape is the capability every primitive and combinator implements:
// point containment, a bounding box for iteration, and a display name
// used in ShapeRecord debug entries.
type Shape interface {
	Contains(x, y int) bool
	BoundingBox() BBox
	TypeName() string
}

// Rect is a half-open axis-aligned box [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

func (r Rect) BoundingBox() BBox {
	return BBox{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

func (r Rect) TypeName() string { return "Rect" }

// Ellipse is centered at (CX,CY) with radii (RX,RY). Containment follows
// the standard normalized-distance test; RX or RY of 0 makes the shape
// contain nothing (division guarded, not a divide-by-zero panic).
type Ellipse struct {
	CX, CY int
	RX, RY int
}

func (e Ellipse) Contains(x, y int) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := float64(x - e.CX)
	dy := float64(y - e.CY)
	normX := (dx * dx) / float64(e.RX*e.RX)
	normY := (dy * dy) / float64(e.RY*e.RY)
	return normX+normY <= 1.0
}

func (e Ellipse) BoundingBox() BBox {
	return BBox{
		X0: e.CX - e.RX,
		Y0: e.CY - e.RY,
		X1: e.CX + e.RX + 1,
		Y1: e.CY + e.RY + 1,
	}
}

func (e Ellipse) TypeName() string { return "Ellipse" }

// Trapezoid spans rows [YTop,YBot) with linearly interpolated left/right
// edges between a top span [TopX0,TopX1] and a bottom span
// [BotX0,BotX1]. YTop must be strictly less than YBot; a malformed
// trapezoid simply contains nothing.
type Trapezoid struct {
	YTop, YBot   int
	TopX0, TopX1 int
	BotX0, BotX1 int
}

func (t Trapezoid) rowSpan(y int) (left, right float64, ok bool) {
	if t.YTop >= t.YBot || y < t.YTop || y >= t.YBot {
		return 0, 0, false
	}
	frac := float64(y-t.YTop) / float64(t.YBot-t.YTop)
	left = lerp(float64(t.TopX0), float64(t.BotX0), frac)
	right = lerp(float64(t.TopX1), float64(t.BotX1), frac)
	return left, right, true
}

func (t Trapezoid) Contains(x, y int) bool {
	left, right, ok := t.rowSpan(y)
	if !ok {
		return false
	}
	lo := int(floorF(left))
	hi := int(ceilF(right))
	return x >= lo && x < hi
}

func (t Trapezoid) BoundingBox() BBox {
	if t.YTop >= t.YBot {
		return BBox{}
	}
	minX := minInt(minInt(t.TopX0, t.TopX1), minInt(t.BotX0, t.BotX1))
	maxX := maxInt(maxInt(t.TopX0, t.TopX1), maxInt(t.BotX0, t.BotX1))
	return BBox{X0: minX, Y0: t.YTop, X1: maxX + 1, Y1: t.YBot}
}

func (t Trapezoid) TypeName() string { return "Trapezoid" }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func floorF(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

func ceilF(v float64) float64 {
	i := int(v)
	if v > 0 && float64(i) != v {
		i++
	}
	return float64(i)
}

// Column is a single-pixel vertical segment: x = X0, y in [Y0,Y1).
type Column struct {
	X0     int
	Y0, Y1 int
}

func (c Column) Contains(x, y int) bool {
	return x == c.X0 && y >= c.Y0 && y < c.Y1
}

func (c Column) BoundingBox() BBox {
	return BBox{X0: c.X0, Y0: c.Y0, X1: c.X0 + 1, Y1: c.Y1}
}

func (c Column) TypeName() string { return "Column" }
