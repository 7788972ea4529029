package puzzle

import (
	"slices"
	"strings"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// Adjacency tolerance defaults. Grid partitions produce exact coordinates,
// so a 1px slack suffices; segmentation-derived tables carry rounding noise
// and need more.
const (
	DefaultTolerance      = 1
	SegmentationTolerance = 5
)

// minOverlapFrac is the minimal fraction of the shorter of two candidate
// spans that must overlap for the regions to count as neighbors. It filters
// out diagonal contacts that slip through a generous tolerance.
const minOverlapFrac = 0.25

// Adjacency records one shared border between two regions. A is always the
// left (or top) region, so SideA is SideRight or SideBottom and SideB is its
// opposite. Mid is the midpoint of the overlapping span in absolute image
// coordinates; both pieces place their bump and bite there, which is what
// makes the two shapes line up when the pieces are laid side by side.
type Adjacency struct {
	A     string
	B     string
	SideA Side
	SideB Side
	Mid   float64
	Span  int
}

// Resolve determines every shared border in the region table. Two regions
// are horizontally adjacent when the right border of one lands within
// tolerance of the left border of the other and their vertical spans
// overlap by more than a minimal fraction; vertical adjacency is symmetric.
//
// Each unordered pair is reported at most once, on exactly one side pair.
// A region that turns out to touch two different neighbors on the same side
// violates the input contract and aborts resolution with an
// ADJACENCY_AMBIGUITY error. Sides with no neighbor are simply absent from
// the result; the assigner turns them flat.
//
// The returned list is sorted by (A, SideA, B) so downstream processing is
// reproducible regardless of input order.
func Resolve(regions []Region, tolerance int) ([]Adjacency, error) {
	if err := errors.ValidateTolerance(tolerance); err != nil {
		return nil, err
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	slices.SortFunc(sorted, func(a, b Region) int {
		return strings.Compare(a.ID, b.ID)
	})

	// occupied tracks which (region, side) slots already have a neighbor,
	// so a second neighbor on the same side is caught immediately.
	type slotKey struct {
		id   string
		side Side
	}
	occupied := make(map[slotKey]string)

	claim := func(id string, side Side, neighbor string) error {
		key := slotKey{id, side}
		if prev, ok := occupied[key]; ok {
			return errors.New(errors.ErrCodeAdjacencyAmbiguity,
				"region %q touches both %q and %q on its %s side", id, prev, neighbor, side)
		}
		occupied[key] = neighbor
		return nil
	}

	var out []Adjacency
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			adj, ok := touch(sorted[i], sorted[j], tolerance)
			if !ok {
				continue
			}
			if err := claim(adj.A, adj.SideA, adj.B); err != nil {
				return nil, err
			}
			if err := claim(adj.B, adj.SideB, adj.A); err != nil {
				return nil, err
			}
			out = append(out, adj)
		}
	}

	slices.SortFunc(out, func(x, y Adjacency) int {
		if c := strings.Compare(x.A, y.A); c != 0 {
			return c
		}
		if x.SideA != y.SideA {
			return int(x.SideA) - int(y.SideA)
		}
		return strings.Compare(x.B, y.B)
	})
	return out, nil
}

// touch reports whether a and b share a border within tolerance, and on
// which sides. The returned adjacency is canonicalized so A is the left or
// top region. Horizontal contact is checked first; the overlap-fraction
// guard keeps a pair from qualifying both ways.
func touch(a, b Region, tolerance int) (Adjacency, bool) {
	// Horizontal: a left of b, or b left of a.
	if adj, ok := horizontal(a, b, tolerance); ok {
		return adj, true
	}
	if adj, ok := horizontal(b, a, tolerance); ok {
		return adj, true
	}
	// Vertical: a above b, or b above a.
	if adj, ok := vertical(a, b, tolerance); ok {
		return adj, true
	}
	if adj, ok := vertical(b, a, tolerance); ok {
		return adj, true
	}
	return Adjacency{}, false
}

// horizontal reports whether left.right touches right.left.
func horizontal(left, right Region, tolerance int) (Adjacency, bool) {
	if abs(left.Right()-right.X) > tolerance {
		return Adjacency{}, false
	}
	lo := max(left.Y, right.Y)
	hi := min(left.Bottom(), right.Bottom())
	if !spansOverlap(lo, hi, left.Height, right.Height) {
		return Adjacency{}, false
	}
	return Adjacency{
		A:     left.ID,
		B:     right.ID,
		SideA: SideRight,
		SideB: SideLeft,
		Mid:   float64(lo+hi) / 2,
		Span:  hi - lo,
	}, true
}

// vertical reports whether top.bottom touches bottom.top.
func vertical(top, bottom Region, tolerance int) (Adjacency, bool) {
	if abs(top.Bottom()-bottom.Y) > tolerance {
		return Adjacency{}, false
	}
	lo := max(top.X, bottom.X)
	hi := min(top.Right(), bottom.Right())
	if !spansOverlap(lo, hi, top.Width, bottom.Width) {
		return Adjacency{}, false
	}
	return Adjacency{
		A:     top.ID,
		B:     bottom.ID,
		SideA: SideBottom,
		SideB: SideTop,
		Mid:   float64(lo+hi) / 2,
		Span:  hi - lo,
	}, true
}

func spansOverlap(lo, hi, spanA, spanB int) bool {
	overlap := hi - lo
	if overlap <= 0 {
		return false
	}
	return float64(overlap) > minOverlapFrac*float64(min(spanA, spanB))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
