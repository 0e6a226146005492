package geometry

// union combines two shapes: contains iff either operand contains;
// bounding box is the union of both operands' boxes.
type union struct {
	Left, Right Shape
}

// Union returns a Shape containing every cell contained by left or right.
func Union(left, right Shape) Shape {
	return union{Left: left, Right: right}
}

func (u union) Contains(x, y int) bool {
	return u.Left.Contains(x, y) || u.Right.Contains(x, y)
}

func (u union) BoundingBox() BBox {
	return u.Left.BoundingBox().Union(u.Right.BoundingBox())
}

func (u union) TypeName() string {
	return u.Left.TypeName() + " ∪ " + u.Right.TypeName()
}

// intersect combines two shapes: contains iff both operands contain;
// bounding box is the intersection of both operands' boxes.
type intersect struct {
	Left, Right Shape
}

// Intersect returns a Shape containing every cell contained by both left
// and right.
func Intersect(left, right Shape) Shape {
	return intersect{Left: left, Right: right}
}

func (i intersect) Contains(x, y int) bool {
	return i.Left.Contains(x, y) && i.Right.Contains(x, y)
}

func (i intersect) BoundingBox() BBox {
	return i.Left.BoundingBox().Intersect(i.Right.BoundingBox())
}

func (i intersect) TypeName() string {
	return i.Left.TypeName() + " ∩ " + i.Right.TypeName()
}

// subtract combines two shapes: contains iff left contains and right
// does not; bounding box is the left operand's box (the
// subtrahend can only shrink the result, never extend it).
type subtract struct {
	Left, Right Shape
}

// Subtract returns a Shape containing every cell contained by left but
// not by right.
func Subtract(left, right Shape) Shape {
	return subtract{Left: left, Right: right}
}

func (s subtract) Contains(x, y int) bool {
	return s.Left.Contains(x, y) && !s.Right.Contains(x, y)
}

func (s subtract) BoundingBox() BBox {
	return s.Left.BoundingBox()
}

func (s subtract) TypeName() string {
	return s.Left.TypeName() + " ∖ " + s.Right.TypeName()
}
