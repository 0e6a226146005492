package shapesvg

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/lwd/pkg/geometry"
)

// Options configures shape-log visualization. WorldWidth/WorldHeight
// are the generated world's tile dimensions; the world is scaled
// to fit CanvasWidth/CanvasHeight preserving aspect ratio.
type Options struct {
	WorldWidth, WorldHeight uint32
	CanvasWidth, CanvasHeight int
	ShowLabels bool
	Title      string
}

// DefaultOptions returns sensible defaults for a world of the given
// dimensions.
func DefaultOptions(worldWidth, worldHeight uint32) Options {
	return Options{
		WorldWidth:   worldWidth,
		WorldHeight:  worldHeight,
		CanvasWidth:  1200,
		CanvasHeight: 800,
		ShowLabels:   true,
		Title:        "Shape Log",
	}
}

// Render draws every record's bounding box, in its PreviewColor, over a
// dark canvas scaled to fit opts.CanvasWidth/CanvasHeight. Records are
// drawn in slice order, so later entries (which fill over earlier ones
// during generation) are also drawn on top here.
func Render(records []geometry.ShapeRecord, opts Options) ([]byte, error) {
	if opts.CanvasWidth <= 0 {
		opts.CanvasWidth = 1200
	}
	if opts.CanvasHeight <= 0 {
		opts.CanvasHeight = 800
	}
	if opts.WorldWidth == 0 || opts.WorldHeight == 0 {
		return nil, fmt.Errorf("shapesvg: world dimensions must be non-zero")
	}

	margin := 30
	headerHeight := 0
	if opts.Title != "" {
		headerHeight = 40
	}
	drawWidth := float64(opts.CanvasWidth - 2*margin)
	drawHeight := float64(opts.CanvasHeight - 2*margin - headerHeight)
	scaleX := drawWidth / float64(opts.WorldWidth)
	scaleY := drawHeight / float64(opts.WorldHeight)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	toCanvasX := func(x int) int { return margin + int(float64(x)*scale) }
	toCanvasY := func(y int) int { return margin + headerHeight + int(float64(y)*scale) }

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.CanvasWidth, opts.CanvasHeight)
	canvas.Rect(0, 0, opts.CanvasWidth, opts.CanvasHeight, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(opts.CanvasWidth/2, 25, opts.Title,
			"text-anchor:middle;font-size:16px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	for _, rec := range records {
		box := rec.BoundingBox
		x0, y0 := toCanvasX(box.X0), toCanvasY(box.Y0)
		x1, y1 := toCanvasX(box.X1), toCanvasY(box.Y1)
		w, h := x1-x0, y1-y0
		if w <= 0 {
			w = 1
		}
		if h <= 0 {
			h = 1
		}

		colorStr := rgbaToCSS(rec.PreviewColor)
		canvas.Rect(x0, y0, w, h, fmt.Sprintf("fill:%s;stroke:#e2e8f0;stroke-width:1;opacity:0.6", colorStr))

		if opts.ShowLabels && rec.Label != "" {
			canvas.Text(x0+2, y0+12, rec.Label,
				"font-size:10px;font-family:monospace;fill:#e2e8f0")
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// RenderToFile renders records to path, creating or truncating it.
func RenderToFile(records []geometry.ShapeRecord, path string, opts Options) error {
	data, err := Render(records, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func rgbaToCSS(c [4]uint8) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c[0], c[1], c[2], float64(c[3])/255.0)
}
