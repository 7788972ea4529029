package adjacency

import (
	"strings"
	"testing"

	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

func TestToDOT(t *testing.T) {
	regions, err := partition.Grid(200, 200, 2, 2)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	adjs, err := puzzle.Resolve(regions, puzzle.DefaultTolerance)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	pieces, err := puzzle.Generate(regions, puzzle.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dot := ToDOT(regions, adjs, pieces, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("dot is not an undirected graph:\n%s", dot)
	}
	for _, r := range regions {
		if !strings.Contains(dot, `"`+r.ID+`"`) {
			t.Errorf("dot missing node %q", r.ID)
		}
	}
	if got := strings.Count(dot, " -- "); got != len(adjs) {
		t.Errorf("dot has %d edges, want %d", got, len(adjs))
	}
	// Every border records its tab direction.
	if got := strings.Count(dot, "dir="); got != len(adjs) {
		t.Errorf("dot has %d directed borders, want %d", got, len(adjs))
	}
	if strings.Contains(dot, "mid ") {
		t.Error("detailed labels present without Options.Detailed")
	}

	detailed := ToDOT(regions, adjs, pieces, Options{Detailed: true})
	if !strings.Contains(detailed, "mid ") || !strings.Contains(detailed, "span ") {
		t.Error("Options.Detailed did not add midpoint labels")
	}
}

func TestToDOTWithoutPieces(t *testing.T) {
	regions, err := partition.Grid(100, 100, 1, 2)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	adjs, err := puzzle.Resolve(regions, puzzle.DefaultTolerance)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	dot := ToDOT(regions, adjs, nil, Options{})
	if strings.Contains(dot, "dir=") {
		t.Error("tab direction marked without piece data")
	}
	if !strings.Contains(dot, `"piece_0" -- "piece_1"`) {
		t.Errorf("dot missing border edge:\n%s", dot)
	}
}
