package puzzle

import (
	"bytes"
	"testing"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

func TestGenerateGrid2x2(t *testing.T) {
	regions := grid(2, 2, 100, 100)
	pieces, err := Generate(regions, Options{TabDepthRatio: 0.15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pieces) != 4 {
		t.Fatalf("pieces = %d, want 4", len(pieces))
	}

	// Output preserves input order.
	for i, p := range pieces {
		if p.Region.ID != regions[i].ID {
			t.Errorf("piece %d is %q, want %q", i, p.Region.ID, regions[i].ID)
		}
	}

	byID := make(map[string]Piece, len(pieces))
	flats, tabs, blanks := 0, 0, 0
	for _, p := range pieces {
		byID[p.Region.ID] = p
		for _, e := range p.Edges {
			switch e {
			case EdgeFlat:
				flats++
			case EdgeTab:
				tabs++
			case EdgeBlank:
				blanks++
			}
		}
		if p.Geometry.TabSize != 15 {
			t.Errorf("piece %q TabSize = %d, want 15", p.Region.ID, p.Geometry.TabSize)
		}
		if p.Mask.Width() != p.Geometry.FinalWidth || p.Mask.Height() != p.Geometry.FinalHeight {
			t.Errorf("piece %q mask canvas %dx%d != final box %dx%d", p.Region.ID,
				p.Mask.Width(), p.Mask.Height(), p.Geometry.FinalWidth, p.Geometry.FinalHeight)
		}
	}

	// 8 outer sides flat, 4 internal borders split into 4 tabs + 4 blanks.
	if flats != 8 || tabs != 4 || blanks != 4 {
		t.Errorf("edge mix = %d flat / %d tab / %d blank, want 8/4/4", flats, tabs, blanks)
	}

	// Facing sides carry identical border parameters.
	adjs := mustResolve(t, regions)
	for _, adj := range adjs {
		infoA := byID[adj.A].Geometry.Borders[adj.SideA]
		infoB := byID[adj.B].Geometry.Borders[adj.SideB]
		if infoA != infoB {
			t.Errorf("border %q/%q: params %+v vs %+v, want identical", adj.A, adj.B, infoA, infoB)
		}
		if infoA.Size != 15 {
			t.Errorf("border %q/%q size = %d, want 15", adj.A, adj.B, infoA.Size)
		}
	}
}

func TestGenerateRow(t *testing.T) {
	regions := grid(1, 3, 80, 120)
	pieces, err := Generate(regions, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Ends of the row have three flat sides, the middle piece two.
	wantFlats := []int{3, 2, 3}
	for i, p := range pieces {
		flats := 0
		for _, e := range p.Edges {
			if e == EdgeFlat {
				flats++
			}
		}
		if flats != wantFlats[i] {
			t.Errorf("piece %q has %d flat sides, want %d", p.Region.ID, flats, wantFlats[i])
		}
		if p.Edges[SideTop] != EdgeFlat || p.Edges[SideBottom] != EdgeFlat {
			t.Errorf("piece %q has non-flat top/bottom in a single row", p.Region.ID)
		}
	}

	// Default ratio applies: round(80 * 0.15) = 12.
	if got := pieces[0].Geometry.TabSize; got != 12 {
		t.Errorf("TabSize = %d, want 12", got)
	}
}

func TestGenerateSingleRegion(t *testing.T) {
	regions := []Region{{ID: "only", Width: 100, Height: 100}}
	pieces, err := Generate(regions, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := pieces[0]
	if p.Edges != (Edges{EdgeFlat, EdgeFlat, EdgeFlat, EdgeFlat}) {
		t.Errorf("edges = %v, want all flat", p.Edges)
	}
	if p.Geometry.FinalWidth != 100 || p.Geometry.FinalHeight != 100 {
		t.Errorf("final box = %dx%d, want 100x100 (no extension)",
			p.Geometry.FinalWidth, p.Geometry.FinalHeight)
	}
	if got := p.Mask.OpaqueArea(); got != 100*100 {
		t.Errorf("opaque area = %d, want %d", got, 100*100)
	}
	if p.Difficulty != DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", p.Difficulty)
	}
}

func TestGenerateDegenerateRegionRecovers(t *testing.T) {
	// A 2x2px region has candidate size 0; its shared border degrades to a
	// flat shape on both pieces and the batch still succeeds.
	regions := []Region{
		{ID: "big", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "tiny", X: 100, Y: 49, Width: 2, Height: 2},
	}
	pieces, err := Generate(regions, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, p := range pieces {
		if p.Geometry.Offsets != (Offsets{}) {
			t.Errorf("piece %q offsets = %+v, want zero (flat-shaped border)", p.Region.ID, p.Geometry.Offsets)
		}
	}

	big, tiny := pieces[0], pieces[1]
	if got := big.Mask.OpaqueArea(); got != 100*100 {
		t.Errorf("big opaque area = %d, want %d (no bump, no bite)", got, 100*100)
	}
	if got := tiny.Mask.OpaqueArea(); got != 4 {
		t.Errorf("tiny opaque area = %d, want 4", got)
	}

	// The edge types still record the logical assignment.
	if big.Edges[SideRight] == EdgeFlat || tiny.Edges[SideLeft] == EdgeFlat {
		t.Error("shared border lost its edge assignment")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	regions := grid(3, 3, 60, 60)

	run := func(workers int) []Piece {
		pieces, err := Generate(regions, Options{Workers: workers})
		if err != nil {
			t.Fatalf("Generate(workers=%d): %v", workers, err)
		}
		return pieces
	}

	serial := run(1)
	parallel := run(8)

	for i := range serial {
		a, b := serial[i], parallel[i]
		if a.Region != b.Region || a.Edges != b.Edges || a.Geometry != b.Geometry {
			t.Errorf("piece %d differs between worker counts", i)
		}
		if !bytes.Equal(a.Mask.Bytes(), b.Mask.Bytes()) {
			t.Errorf("piece %d mask differs between worker counts", i)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		regions  []Region
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "EmptyTable",
			regions:  nil,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "DuplicateID",
			regions:  []Region{{ID: "a", Width: 10, Height: 10}, {ID: "a", X: 10, Width: 10, Height: 10}},
			wantCode: errors.ErrCodeInvalidRegion,
		},
		{
			name:     "EmptyID",
			regions:  []Region{{Width: 10, Height: 10}},
			wantCode: errors.ErrCodeInvalidRegion,
		},
		{
			name:     "ZeroDimensions",
			regions:  []Region{{ID: "a", Width: 0, Height: 10}},
			wantCode: errors.ErrCodeInvalidRegion,
		},
		{
			name:     "RatioTooLarge",
			regions:  []Region{{ID: "a", Width: 10, Height: 10}},
			opts:     Options{TabDepthRatio: 0.5},
			wantCode: errors.ErrCodeInvalidRatio,
		},
		{
			name:     "AmbiguousAdjacency",
			regions:  []Region{{ID: "a", Width: 100, Height: 100}, {ID: "b", X: 100, Width: 100, Height: 100}, {ID: "c", X: 101, Width: 100, Height: 100}},
			opts:     Options{Tolerance: SegmentationTolerance},
			wantCode: errors.ErrCodeAdjacencyAmbiguity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.regions, tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestGenerateUnequalNeighbors(t *testing.T) {
	// The shared border uses the smaller candidate; each piece still reports
	// its own candidate as TabSize.
	regions := []Region{
		{ID: "big", X: 0, Y: 0, Width: 200, Height: 200},
		{ID: "small", X: 200, Y: 50, Width: 40, Height: 100},
	}
	pieces, err := Generate(regions, Options{TabDepthRatio: 0.15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	big, small := pieces[0], pieces[1]
	if big.Geometry.TabSize != 30 {
		t.Errorf("big TabSize = %d, want 30", big.Geometry.TabSize)
	}
	if small.Geometry.TabSize != 6 {
		t.Errorf("small TabSize = %d, want 6", small.Geometry.TabSize)
	}

	// round(min(40,100)*0.15) = 6 is the effective size on both sides.
	if got := big.Geometry.Borders[SideRight].Size; got != 6 {
		t.Errorf("big right border size = %d, want 6", got)
	}
	if got := small.Geometry.Borders[SideLeft].Size; got != 6 {
		t.Errorf("small left border size = %d, want 6", got)
	}

	// Only the tab-holder grows, and only by the effective size.
	tabHolder := big
	if big.Edges[SideRight] != EdgeTab {
		tabHolder = small
	}
	total := tabHolder.Geometry.Offsets.Left + tabHolder.Geometry.Offsets.Top +
		tabHolder.Geometry.Offsets.Right + tabHolder.Geometry.Offsets.Bottom
	if total != 6 {
		t.Errorf("tab holder total extension = %d, want 6", total)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.TabDepthRatio != DefaultTabDepthRatio {
		t.Errorf("TabDepthRatio = %g, want %g", opts.TabDepthRatio, DefaultTabDepthRatio)
	}
	if opts.Tolerance != DefaultTolerance {
		t.Errorf("Tolerance = %d, want %d", opts.Tolerance, DefaultTolerance)
	}
	if opts.Workers <= 0 {
		t.Errorf("Workers = %d, want positive", opts.Workers)
	}
	if opts.Logger == nil {
		t.Error("Logger is nil, want discarding default")
	}

	// Idempotent.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults: %v", err)
	}
}
