package geometry

import "fmt"

// ShapeParams is a tagged variant describing the shape behind a
// ShapeRecord: concrete field values for a primitive, or a textual
// description (e.g. "Rect ∪ Ellipse") for a combinator, where untangling
// the operand tree into typed fields would add no debugging value.
type ShapeParams struct {
	Kind        string
	Rect        *RectParams
	Ellipse     *EllipseParams
	Trapezoid   *TrapezoidParams
	Column      *ColumnParams
	Description string
}

type RectParams struct{ X0, Y0, X1, Y1 int }

type EllipseParams struct {
	CX, CY int
	RX, RY int
}

type TrapezoidParams struct {
	YTop, YBot   int
	TopX0, TopX1 int
	BotX0, BotX1 int
}

type ColumnParams struct {
	X0     int
	Y0, Y1 int
}

// DescribeShape extracts a ShapeParams for any Shape. Primitives get
// their concrete fields; anything else (a combinator, or a caller's own
// Shape implementation) falls back to its TypeName as a free-text
// description.
func DescribeShape(s Shape) ShapeParams {
	switch v := s.(type) {
	case Rect:
		return ShapeParams{Kind: "Rect", Rect: &RectParams{X0: v.X0, Y0: v.Y0, X1: v.X1, Y1: v.Y1}}
	case Ellipse:
		return ShapeParams{Kind: "Ellipse", Ellipse: &EllipseParams{CX: v.CX, CY: v.CY, RX: v.RX, RY: v.RY}}
	case Trapezoid:
		return ShapeParams{Kind: "Trapezoid", Trapezoid: &TrapezoidParams{
			YTop: v.YTop, YBot: v.YBot, TopX0: v.TopX0, TopX1: v.TopX1, BotX0: v.BotX0, BotX1: v.BotX1,
		}}
	case Column:
		return ShapeParams{Kind: "Column", Column: &ColumnParams{X0: v.X0, Y0: v.Y0, Y1: v.Y1}}
	default:
		return ShapeParams{Kind: "Composite", Description: s.TypeName()}
	}
}

// ShapeRecord is the debug artifact an algorithm pushes to a sub-step's
// shape log after every fill. Accumulated per sub-step and re-pushed
// deterministically on replay.
type ShapeRecord struct {
	Label        string
	BoundingBox  BBox
	PreviewColor [4]uint8
	Params       ShapeParams
}

// NewShapeRecord builds a ShapeRecord from a shape and its fill label,
// deriving BoundingBox and Params from the shape itself.
func NewShapeRecord(label string, s Shape, previewColor [4]uint8) ShapeRecord {
	return ShapeRecord{
		Label:        label,
		BoundingBox:  s.BoundingBox(),
		PreviewColor: previewColor,
		Params:       DescribeShape(s),
	}
}

func (r ShapeRecord) String() string {
	return fmt.Sprintf("%s[%s] box=%+v", r.Label, r.Params.Kind, r.BoundingBox)
}
