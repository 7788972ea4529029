package partition

import (
	"fmt"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// Grid partitions a width×height extent into a uniform rows×cols region
// table. Cells are width/cols by height/rows pixels; the integer-division
// remainder goes to the last column and row, so the union of all regions is
// exactly the extent and no pixel is covered twice.
//
// Region ids are "piece_<n>" in row-major order, matching the numbering the
// rest of the toolchain (and stored puzzles) expect.
func Grid(width, height, rows, cols int) ([]puzzle.Region, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"extent must be positive, got %dx%d", width, height)
	}
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"grid must have positive dimensions, got %dx%d", rows, cols)
	}
	if cols > width || rows > height {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"grid %dx%d is finer than the %dx%d extent", rows, cols, width, height)
	}

	cellW := width / cols
	cellH := height / rows

	regions := make([]puzzle.Region, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			w := cellW
			if col == cols-1 {
				w = width - cellW*(cols-1)
			}
			h := cellH
			if row == rows-1 {
				h = height - cellH*(rows-1)
			}
			regions = append(regions, puzzle.Region{
				ID:     fmt.Sprintf("piece_%d", row*cols+col),
				Row:    row,
				Col:    col,
				X:      col * cellW,
				Y:      row * cellH,
				Width:  w,
				Height: h,
			})
		}
	}
	return regions, nil
}
