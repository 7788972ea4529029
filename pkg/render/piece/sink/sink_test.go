package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

func generate(t *testing.T, rows, cols int) []puzzle.Piece {
	t.Helper()
	regions, err := partition.Grid(cols*100, rows*100, rows, cols)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	pieces, err := puzzle.Generate(regions, puzzle.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return pieces
}

func TestRenderJSON(t *testing.T) {
	pieces := generate(t, 2, 2)

	data, err := RenderJSON(pieces, WithJSONRatio(0.15))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var doc struct {
		Count         int     `json:"count"`
		TabDepthRatio float64 `json:"tab_depth_ratio"`
		Pieces        []struct {
			ID    string `json:"id"`
			Edges struct {
				Top string `json:"top"`
			} `json:"edges"`
			TabSize int `json:"tabSize"`
			Mask    any `json:"mask"`
		} `json:"pieces"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Count != 4 || len(doc.Pieces) != 4 {
		t.Fatalf("count = %d / %d pieces, want 4", doc.Count, len(doc.Pieces))
	}
	if doc.TabDepthRatio != 0.15 {
		t.Errorf("tab_depth_ratio = %g, want 0.15", doc.TabDepthRatio)
	}
	if doc.Pieces[0].ID != "piece_0" {
		t.Errorf("first piece = %q, want piece_0", doc.Pieces[0].ID)
	}
	if doc.Pieces[0].Edges.Top != "flat" {
		t.Errorf("piece_0 top edge = %q, want flat", doc.Pieces[0].Edges.Top)
	}
	if doc.Pieces[0].TabSize != 15 {
		t.Errorf("tabSize = %d, want 15", doc.Pieces[0].TabSize)
	}
	if doc.Pieces[0].Mask != nil {
		t.Error("mask present without WithJSONMasks")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	pieces := generate(t, 2, 3)

	data, err := RenderJSON(pieces, WithJSONMasks(), WithJSONOutlines())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(got) != len(pieces) {
		t.Fatalf("pieces = %d, want %d", len(got), len(pieces))
	}

	for i := range pieces {
		want, have := pieces[i], got[i]
		if have.Region != want.Region {
			t.Errorf("piece %d region = %+v, want %+v", i, have.Region, want.Region)
		}
		if have.Edges != want.Edges {
			t.Errorf("piece %d edges = %v, want %v", i, have.Edges, want.Edges)
		}
		if have.Geometry != want.Geometry {
			t.Errorf("piece %d geometry = %+v, want %+v", i, have.Geometry, want.Geometry)
		}
		if have.Difficulty != want.Difficulty {
			t.Errorf("piece %d difficulty = %s, want %s", i, have.Difficulty, want.Difficulty)
		}
		if have.Mask == nil {
			t.Fatalf("piece %d lost its mask", i)
		}
		if !bytes.Equal(have.Mask.Bytes(), want.Mask.Bytes()) {
			t.Errorf("piece %d mask bytes differ after round trip", i)
		}
	}
}

func TestDecodeJSONRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed", `{"pieces": [`},
		{"MissingID", `{"pieces": [{"width": 10, "height": 10}]}`},
		{"BadEdgeName", `{"pieces": [{"id": "a", "edges": {"top": "bump"}}]}`},
		{"BadBorderSide", `{"pieces": [{"id": "a", "borders": [{"side": "middle", "size": 5}]}]}`},
		{"BadMaskBase64", `{"pieces": [{"id": "a", "mask": {"width": 2, "height": 2, "data": "!!"}}]}`},
		{"MaskSizeMismatch", `{"pieces": [{"id": "a", "mask": {"width": 2, "height": 2, "data": "AAA="}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	pieces := generate(t, 2, 2)

	svg := string(RenderSVG(pieces))

	if !strings.Contains(svg, `viewBox="0 0 200 200"`) {
		t.Errorf("svg missing image-extent viewBox:\n%s", svg)
	}
	for _, p := range pieces {
		if !strings.Contains(svg, `id="piece-`+p.Region.ID+`"`) {
			t.Errorf("svg missing group for %q", p.Region.ID)
		}
	}
	// Internal borders produce arcs.
	if !strings.Contains(svg, "A 15 15 0 0 ") {
		t.Error("svg contains no elliptical arcs")
	}
	if strings.Contains(svg, `id="grid"`) {
		t.Error("grid overlay present without WithSVGGrid")
	}

	withGrid := string(RenderSVG(pieces, WithSVGGrid()))
	if !strings.Contains(withGrid, `id="grid"`) {
		t.Error("WithSVGGrid did not add the grid overlay")
	}
}

func TestRenderSVGPlacement(t *testing.T) {
	pieces := generate(t, 1, 2)

	svg := string(RenderSVG(pieces))

	// piece_0 holds the tab on its right side, so its canvas is not shifted;
	// piece_1's blank does not grow its box either. Both groups translate by
	// their base origin.
	if !strings.Contains(svg, `transform="translate(0,0)"`) {
		t.Errorf("svg missing origin placement:\n%s", svg)
	}
	if !strings.Contains(svg, `transform="translate(100,0)"`) {
		t.Errorf("svg missing neighbor placement:\n%s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	pieces := generate(t, 2, 2)

	data, err := RenderPNG(pieces, WithPNGColumns(2), WithPNGPadding(4))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}

	// Cells are sized to the largest mask (115x115 for corner pieces of a
	// 2x2 grid: base 100 plus one 15px tab per axis).
	wantW := 2*115 + 3*4
	wantH := 2*115 + 3*4
	b := img.Bounds()
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderPNGErrors(t *testing.T) {
	if _, err := RenderPNG(nil); err == nil {
		t.Error("expected error for empty piece list")
	}
	pieces := generate(t, 1, 2)
	if _, err := RenderPNG(pieces, WithPNGColumns(0)); err == nil {
		t.Error("expected error for zero columns")
	}
}
