package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showGrid    bool
	fill        string
	stroke      string
	strokeWidth float64
}

// WithSVGGrid overlays the base region rectangles as dashed outlines, which
// makes partition bugs (gaps, overlaps, drifting borders) visible at a
// glance.
func WithSVGGrid() SVGOption { return func(r *svgRenderer) { r.showGrid = true } }

// WithSVGFill sets the piece fill color (default "#e8e0d0").
func WithSVGFill(color string) SVGOption { return func(r *svgRenderer) { r.fill = color } }

// WithSVGStroke sets the outline color and width (defaults "#555", 1.5).
func WithSVGStroke(color string, width float64) SVGOption {
	return func(r *svgRenderer) { r.stroke = color; r.strokeWidth = width }
}

// RenderSVG draws every piece silhouette at its position in the source
// image. Each piece's outline path lives in its final-canvas coordinates, so
// the enclosing group translates by (x − offsets.left, y − offsets.top);
// facing tabs and blanks then meet exactly on the shared border line.
func RenderSVG(pieces []puzzle.Piece, opts ...SVGOption) []byte {
	r := svgRenderer{fill: "#e8e0d0", stroke: "#555", strokeWidth: 1.5}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := imageExtent(pieces)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)

	for _, p := range pieces {
		tx := p.Region.X - p.Geometry.Offsets.Left
		ty := p.Region.Y - p.Geometry.Offsets.Top
		fmt.Fprintf(&buf, `  <g id="piece-%s" transform="translate(%d,%d)">`+"\n", p.Region.ID, tx, ty)
		fmt.Fprintf(&buf, `    <path d="%s" fill="%s" stroke="%s" stroke-width="%g"/>`+"\n",
			p.Outline(), r.fill, r.stroke, r.strokeWidth)
		buf.WriteString("  </g>\n")
	}

	if r.showGrid {
		buf.WriteString(`  <g id="grid" fill="none" stroke="#d33" stroke-dasharray="4 3">` + "\n")
		for _, p := range pieces {
			fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d"/>`+"\n",
				p.Region.X, p.Region.Y, p.Region.Width, p.Region.Height)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// imageExtent returns the bounding extent of all base regions, which is the
// source image size for any well-formed partition.
func imageExtent(pieces []puzzle.Piece) (int, int) {
	width, height := 0, 0
	for _, p := range pieces {
		if r := p.Region.Right(); r > width {
			width = r
		}
		if b := p.Region.Bottom(); b > height {
			height = b
		}
	}
	return width, height
}
