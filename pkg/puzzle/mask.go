package puzzle

import (
	"image"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// Alpha values for mask pixels. The engine only produces hard silhouettes;
// anti-aliasing, if wanted, belongs to the renderer.
const (
	alphaTransparent = 0
	alphaOpaque      = 255

	// hitThreshold is the minimum alpha considered inside the silhouette
	// for hit-testing.
	hitThreshold = 128
)

// Mask is a raster alpha silhouette over a piece's final bounding box.
// Values range from 0 (fully transparent) to 255 (fully opaque).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates an empty (fully transparent) mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewMaskFromBytes reconstructs a mask from row-major alpha data, as
// returned by [Mask.Bytes]. The data is copied.
func NewMaskFromBytes(width, height int, data []byte) (*Mask, error) {
	if len(data) != width*height {
		return nil, errors.New(errors.ErrCodeMaskMismatch,
			"mask data is %d bytes, want %d for %dx%d", len(data), width*height, width, height)
	}
	m := NewMask(width, height)
	copy(m.data, data)
	return m, nil
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At returns the alpha value at (x, y). Coordinates outside the mask are
// fully transparent.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return alphaTransparent
	}
	return m.data[y*m.width+x]
}

// Set writes the alpha value at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Opaque reports whether (x, y) lies inside the piece silhouette. This is
// the hit-test the interaction layer uses instead of bounding-box checks.
func (m *Mask) Opaque(x, y int) bool {
	return m.At(x, y) >= hitThreshold
}

// OpaqueArea returns the number of opaque pixels.
func (m *Mask) OpaqueArea() int {
	n := 0
	for _, v := range m.data {
		if v >= hitThreshold {
			n++
		}
	}
	return n
}

// Bytes returns a copy of the raw alpha data in row-major order.
func (m *Mask) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// fillRect sets a half-open rectangle [x0,x1)×[y0,y1) to the given value.
func (m *Mask) fillRect(x0, y0, x1, y1 int, value uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, value)
		}
	}
}

// fillEllipse sets every pixel whose center lies inside the axis-aligned
// ellipse centered at (cx, cy) with semi-axes rx, ry.
func (m *Mask) fillEllipse(cx, cy, rx, ry float64, value uint8) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0 := int(cx - rx - 1)
	x1 := int(cx + rx + 1)
	y0 := int(cy - ry - 1)
	y1 := int(cy + ry + 1)
	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y, value)
			}
		}
	}
}

// Synthesize renders a piece's alpha silhouette: the base rectangle placed
// at (offsets.left, offsets.top) on the final canvas, plus a half-ellipse
// bump centered on each tab border, minus an identical bite on each blank
// border.
//
// Tabs and blanks rasterize the same full ellipse, centered on the border
// line at the border's shared midpoint with both semi-axes equal to the
// border's effective size. For a tab the inner half of the ellipse lands on
// already-opaque base pixels, so only the outward bump shows; for a blank
// the outer half lands on already-transparent canvas, so only the inward
// bite shows. Since a border's ellipse parameters are identical on both of
// its pieces, the bump and the bite are congruent and interlock exactly.
//
// Borders with zero size (flat, or degenerate geometry) contribute nothing.
func Synthesize(r Region, edges Edges, g Geometry) (*Mask, error) {
	if g.FinalWidth <= 0 || g.FinalHeight <= 0 {
		return nil, errors.New(errors.ErrCodeMaskMismatch,
			"region %q has degenerate final canvas %dx%d", r.ID, g.FinalWidth, g.FinalHeight)
	}

	m := NewMask(g.FinalWidth, g.FinalHeight)

	// Base rectangle in canvas coordinates.
	bx := g.Offsets.Left
	by := g.Offsets.Top
	m.fillRect(bx, by, bx+r.Width, by+r.Height, alphaOpaque)

	for s := range numSides {
		side := Side(s)
		info := g.Borders[side]
		if edges[side] == EdgeFlat || info.Size == 0 {
			continue
		}

		// Ellipse center: border line at the shared midpoint, converted
		// from absolute image coordinates to canvas coordinates.
		var cx, cy float64
		switch side {
		case SideTop:
			cx = info.Mid - float64(r.X) + float64(bx)
			cy = float64(by)
		case SideBottom:
			cx = info.Mid - float64(r.X) + float64(bx)
			cy = float64(by + r.Height)
		case SideLeft:
			cx = float64(bx)
			cy = info.Mid - float64(r.Y) + float64(by)
		case SideRight:
			cx = float64(bx + r.Width)
			cy = info.Mid - float64(r.Y) + float64(by)
		}

		value := uint8(alphaOpaque)
		if edges[side] == EdgeBlank {
			value = alphaTransparent
		}
		radius := float64(info.Size)
		m.fillEllipse(cx, cy, radius, radius, value)
	}

	return m, nil
}
