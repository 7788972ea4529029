package partition

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		rows, cols    int
		want          int
		check         func(t *testing.T, regions []puzzle.Region)
	}{
		{
			name:  "Even2x2",
			width: 200, height: 200, rows: 2, cols: 2,
			want: 4,
			check: func(t *testing.T, regions []puzzle.Region) {
				for _, r := range regions {
					if r.Width != 100 || r.Height != 100 {
						t.Errorf("region %q = %dx%d, want 100x100", r.ID, r.Width, r.Height)
					}
				}
			},
		},
		{
			name:  "RemainderAbsorbedByLast",
			width: 103, height: 50, rows: 1, cols: 2,
			want: 2,
			check: func(t *testing.T, regions []puzzle.Region) {
				if regions[0].Width != 51 {
					t.Errorf("first width = %d, want 51", regions[0].Width)
				}
				if regions[1].Width != 52 {
					t.Errorf("last width = %d, want 52 (absorbs remainder)", regions[1].Width)
				}
				if regions[1].X != 51 {
					t.Errorf("last x = %d, want 51", regions[1].X)
				}
			},
		},
		{
			name:  "SingleCell",
			width: 640, height: 480, rows: 1, cols: 1,
			want: 1,
			check: func(t *testing.T, regions []puzzle.Region) {
				r := regions[0]
				if r.X != 0 || r.Y != 0 || r.Width != 640 || r.Height != 480 {
					t.Errorf("region = %+v, want the full extent", r)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions, err := Grid(tt.width, tt.height, tt.rows, tt.cols)
			if err != nil {
				t.Fatalf("Grid: %v", err)
			}
			if got := len(regions); got != tt.want {
				t.Fatalf("regions = %d, want %d", got, tt.want)
			}

			// Row-major ids and exact tiling regardless of parameters.
			area := 0
			for i, r := range regions {
				wantID := "piece_" + string(rune('0'+i))
				if i < 10 && r.ID != wantID {
					t.Errorf("region %d id = %q, want %q", i, r.ID, wantID)
				}
				area += r.Width * r.Height
			}
			if area != tt.width*tt.height {
				t.Errorf("total area = %d, want %d (gap or overlap)", area, tt.width*tt.height)
			}

			if tt.check != nil {
				tt.check(t, regions)
			}
		})
	}
}

func TestGridFeedsEngine(t *testing.T) {
	regions, err := Grid(300, 200, 2, 3)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	pieces, err := puzzle.Generate(regions, puzzle.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pieces) != 6 {
		t.Fatalf("pieces = %d, want 6", len(pieces))
	}
}

func TestGridErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		rows, cols    int
	}{
		{"ZeroExtent", 0, 100, 2, 2},
		{"ZeroRows", 100, 100, 0, 2},
		{"NegativeCols", 100, 100, 2, -1},
		{"FinerThanExtent", 10, 10, 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(tt.width, tt.height, tt.rows, tt.cols)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != errors.ErrCodeInvalidInput {
				t.Errorf("code = %s, want %s", got, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRegionTableRoundTrip(t *testing.T) {
	regions, err := Grid(200, 200, 2, 2)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRegions(regions, &buf); err != nil {
		t.Fatalf("WriteRegions: %v", err)
	}

	got, err := ReadRegions(&buf)
	if err != nil {
		t.Fatalf("ReadRegions: %v", err)
	}
	if len(got) != len(regions) {
		t.Fatalf("regions = %d, want %d", len(got), len(regions))
	}
	for i := range regions {
		if got[i] != regions[i] {
			t.Errorf("region %d = %+v, want %+v", i, got[i], regions[i])
		}
	}
}

func TestReadRegionsRejectsBadTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"Malformed", `{"regions": [`, errors.ErrCodeInvalidFormat},
		{"Empty", `{"regions": []}`, errors.ErrCodeInvalidInput},
		{"MissingID", `{"regions": [{"width": 10, "height": 10}]}`, errors.ErrCodeInvalidRegion},
		{"ZeroWidth", `{"regions": [{"id": "a", "width": 0, "height": 10}]}`, errors.ErrCodeInvalidRegion},
		{
			name:     "Duplicate",
			input:    `{"regions": [{"id": "a", "width": 10, "height": 10}, {"id": "a", "x": 10, "width": 10, "height": 10}]}`,
			wantCode: errors.ErrCodeInvalidRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRegions(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestMarshalRegionsCanonical(t *testing.T) {
	regions, err := Grid(100, 100, 2, 2)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	a, err := MarshalRegions(regions)
	if err != nil {
		t.Fatalf("MarshalRegions: %v", err)
	}
	b, err := MarshalRegions(regions)
	if err != nil {
		t.Fatalf("MarshalRegions: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical tables produced different bytes")
	}
}

func TestImportRegionsMissingFile(t *testing.T) {
	_, err := ImportRegions("does-not-exist.json")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeFileNotFound)
	}
}
