package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	columns int
	padding int
}

// WithPNGColumns sets the number of contact-sheet columns (default 4).
func WithPNGColumns(n int) PNGOption { return func(r *pngRenderer) { r.columns = n } }

// WithPNGPadding sets the pixel gap between tiles (default 8).
func WithPNGPadding(px int) PNGOption { return func(r *pngRenderer) { r.padding = px } }

// RenderPNG tiles the piece masks into a grayscale contact sheet and encodes
// it as PNG. Tiles keep the pieces' input order, left to right, top to
// bottom; every cell is sized to the largest mask so pieces stay visually
// comparable. Pieces without a mask render as empty cells.
func RenderPNG(pieces []puzzle.Piece, opts ...PNGOption) ([]byte, error) {
	if len(pieces) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no pieces to render")
	}

	r := pngRenderer{columns: 4, padding: 8}
	for _, opt := range opts {
		opt(&r)
	}
	if r.columns <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "columns must be positive, got %d", r.columns)
	}
	if r.padding < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "padding must be non-negative, got %d", r.padding)
	}

	cellW, cellH := 0, 0
	for _, p := range pieces {
		if p.Mask == nil {
			continue
		}
		if w := p.Mask.Width(); w > cellW {
			cellW = w
		}
		if h := p.Mask.Height(); h > cellH {
			cellH = h
		}
	}
	if cellW == 0 || cellH == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no piece has a mask")
	}

	cols := min(r.columns, len(pieces))
	rows := (len(pieces) + cols - 1) / cols

	sheetW := cols*cellW + (cols+1)*r.padding
	sheetH := rows*cellH + (rows+1)*r.padding
	img := image.NewGray(image.Rect(0, 0, sheetW, sheetH))

	for i, p := range pieces {
		if p.Mask == nil {
			continue
		}
		// Center the mask in its cell.
		col, row := i%cols, i/cols
		ox := r.padding + col*(cellW+r.padding) + (cellW-p.Mask.Width())/2
		oy := r.padding + row*(cellH+r.padding) + (cellH-p.Mask.Height())/2
		for y := 0; y < p.Mask.Height(); y++ {
			for x := 0; x < p.Mask.Width(); x++ {
				img.SetGray(ox+x, oy+y, color.Gray{Y: p.Mask.At(x, y)})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode contact sheet")
	}
	return buf.Bytes(), nil
}
