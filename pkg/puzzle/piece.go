package puzzle

import "github.com/matzehuels/piecemaker/pkg/errors"

// Piece is the assembled output record for one puzzle piece: the input
// region, its resolved edge types, the extended geometry, and the alpha
// silhouette. Pieces are immutable once built.
type Piece struct {
	Region     Region
	Edges      Edges
	Geometry   Geometry
	Difficulty Difficulty
	Mask       *Mask
}

// Outline returns the piece silhouette as an SVG path in final-canvas
// coordinates.
func (p Piece) Outline() string {
	return Outline(p.Region, p.Edges, p.Geometry)
}

// Assemble merges the per-stage results into the exported piece record.
// It performs no new computation but refuses to emit a partially-populated
// piece: a half-built piece silently breaks downstream physical-fit logic,
// so an incomplete record fails the batch instead.
//
// Checked invariants:
//   - the region has an id and positive dimensions;
//   - the final box is exactly the base box plus the tab offsets;
//   - a mask is present and its canvas equals the final box.
func Assemble(r Region, edges Edges, g Geometry, m *Mask) (Piece, error) {
	if err := errors.ValidateRegionID(r.ID); err != nil {
		return Piece{}, err
	}
	if err := errors.ValidateDimensions(r.ID, r.Width, r.Height); err != nil {
		return Piece{}, err
	}

	if g.FinalWidth != r.Width+g.Offsets.Left+g.Offsets.Right ||
		g.FinalHeight != r.Height+g.Offsets.Top+g.Offsets.Bottom {
		return Piece{}, errors.New(errors.ErrCodeIncompletePiece,
			"region %q: final box %dx%d does not equal base %dx%d plus offsets %+v",
			r.ID, g.FinalWidth, g.FinalHeight, r.Width, r.Height, g.Offsets)
	}

	if m == nil {
		return Piece{}, errors.New(errors.ErrCodeIncompletePiece, "region %q has no mask", r.ID)
	}
	if m.Width() != g.FinalWidth || m.Height() != g.FinalHeight {
		return Piece{}, errors.New(errors.ErrCodeMaskMismatch,
			"region %q: mask canvas %dx%d disagrees with final box %dx%d",
			r.ID, m.Width(), m.Height(), g.FinalWidth, g.FinalHeight)
	}

	return Piece{
		Region:     r,
		Edges:      edges,
		Geometry:   g,
		Difficulty: Classify(edges, g, m),
		Mask:       m,
	}, nil
}
