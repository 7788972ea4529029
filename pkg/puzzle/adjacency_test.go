package puzzle

import (
	"testing"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// grid builds a uniform rows×cols region table with the given cell size.
func grid(rows, cols, cellW, cellH int) []Region {
	var out []Region
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, Region{
				ID:     "piece_" + string(rune('a'+r)) + string(rune('0'+c)),
				Row:    r,
				Col:    c,
				X:      c * cellW,
				Y:      r * cellH,
				Width:  cellW,
				Height: cellH,
			})
		}
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		regions   []Region
		tolerance int
		want      int
		check     func(t *testing.T, adjs []Adjacency)
	}{
		{
			name:      "SingleRegion",
			regions:   []Region{{ID: "only", Width: 100, Height: 100}},
			tolerance: DefaultTolerance,
			want:      0,
		},
		{
			name:      "Grid2x2",
			regions:   grid(2, 2, 100, 100),
			tolerance: DefaultTolerance,
			want:      4,
			check: func(t *testing.T, adjs []Adjacency) {
				for _, adj := range adjs {
					if adj.SideB != adj.SideA.Opposite() {
						t.Errorf("adjacency %q/%q: sides %s/%s are not opposite",
							adj.A, adj.B, adj.SideA, adj.SideB)
					}
				}
			},
		},
		{
			name:      "Row1x3",
			regions:   grid(1, 3, 80, 120),
			tolerance: DefaultTolerance,
			want:      2,
			check: func(t *testing.T, adjs []Adjacency) {
				for _, adj := range adjs {
					if adj.SideA != SideRight {
						t.Errorf("row adjacency %q/%q on side %s, want right", adj.A, adj.B, adj.SideA)
					}
					if adj.Mid != 60 {
						t.Errorf("Mid = %g, want 60 (vertical center of the row)", adj.Mid)
					}
				}
			},
		},
		{
			name: "GapTooWide",
			regions: []Region{
				{ID: "a", X: 0, Y: 0, Width: 100, Height: 100},
				{ID: "b", X: 110, Y: 0, Width: 100, Height: 100},
			},
			tolerance: DefaultTolerance,
			want:      0,
		},
		{
			name: "WithinTolerance",
			regions: []Region{
				{ID: "a", X: 0, Y: 0, Width: 100, Height: 100},
				{ID: "b", X: 103, Y: 0, Width: 100, Height: 100},
			},
			tolerance: SegmentationTolerance,
			want:      1,
		},
		{
			name: "DiagonalContactIgnored",
			regions: []Region{
				{ID: "a", X: 0, Y: 0, Width: 100, Height: 100},
				{ID: "b", X: 100, Y: 99, Width: 100, Height: 100},
			},
			tolerance: SegmentationTolerance,
			want:      0,
		},
		{
			name: "UnequalSpansShareMidpoint",
			regions: []Region{
				{ID: "big", X: 0, Y: 0, Width: 100, Height: 200},
				{ID: "small", X: 100, Y: 50, Width: 100, Height: 100},
			},
			tolerance: DefaultTolerance,
			want:      1,
			check: func(t *testing.T, adjs []Adjacency) {
				adj := adjs[0]
				if adj.Mid != 100 {
					t.Errorf("Mid = %g, want 100 (midpoint of the 50..150 overlap)", adj.Mid)
				}
				if adj.Span != 100 {
					t.Errorf("Span = %d, want 100", adj.Span)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjs, err := Resolve(tt.regions, tt.tolerance)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := len(adjs); got != tt.want {
				t.Fatalf("adjacencies = %d, want %d", got, tt.want)
			}
			if tt.check != nil {
				tt.check(t, adjs)
			}
		})
	}
}

func TestResolveCanonicalOrientation(t *testing.T) {
	// A is always the left (or top) region no matter the input order.
	regions := []Region{
		{ID: "z_right", X: 100, Y: 0, Width: 100, Height: 100},
		{ID: "a_left", X: 0, Y: 0, Width: 100, Height: 100},
	}
	adjs, err := Resolve(regions, DefaultTolerance)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(adjs) != 1 {
		t.Fatalf("adjacencies = %d, want 1", len(adjs))
	}
	adj := adjs[0]
	if adj.A != "a_left" || adj.B != "z_right" {
		t.Errorf("pair = %q/%q, want a_left/z_right", adj.A, adj.B)
	}
	if adj.SideA != SideRight || adj.SideB != SideLeft {
		t.Errorf("sides = %s/%s, want right/left", adj.SideA, adj.SideB)
	}
}

func TestResolveDeterministicOrder(t *testing.T) {
	regions := grid(3, 3, 50, 50)
	first, err := Resolve(regions, DefaultTolerance)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Reverse the input; output must be identical.
	reversed := make([]Region, len(regions))
	for i, r := range regions {
		reversed[len(regions)-1-i] = r
	}
	second, err := Resolve(reversed, DefaultTolerance)
	if err != nil {
		t.Fatalf("Resolve reversed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("adjacency %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestResolveAmbiguity(t *testing.T) {
	// Two regions both landing on a's right side within tolerance and
	// overlapping the same span is an input contract violation.
	regions := []Region{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "b", X: 100, Y: 0, Width: 100, Height: 100},
		{ID: "c", X: 101, Y: 0, Width: 100, Height: 100},
	}
	_, err := Resolve(regions, SegmentationTolerance)
	if err == nil {
		t.Fatal("expected ambiguity error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeAdjacencyAmbiguity {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeAdjacencyAmbiguity)
	}
}

func TestResolveInvalidTolerance(t *testing.T) {
	_, err := Resolve(grid(1, 2, 10, 10), -1)
	if err == nil {
		t.Fatal("expected error for negative tolerance")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidTolerance {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeInvalidTolerance)
	}
}
