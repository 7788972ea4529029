package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
	"github.com/matzehuels/piecemaker/pkg/render/piece/sink"
)

func writePieceDoc(t *testing.T, mutate func([]puzzle.Piece)) string {
	t.Helper()

	regions, err := partition.Grid(300, 200, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	pieces, err := puzzle.Generate(regions, puzzle.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		mutate(pieces)
	}

	data, err := sink.RenderJSON(pieces, sink.WithJSONMasks())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pieces.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunVerifyAcceptsEngineOutput(t *testing.T) {
	path := writePieceDoc(t, nil)
	if err := runVerify(path, puzzle.DefaultTolerance); err != nil {
		t.Errorf("runVerify() error = %v", err)
	}
}

func TestRunVerifyCatchesBrokenComplement(t *testing.T) {
	path := writePieceDoc(t, func(pieces []puzzle.Piece) {
		// Flip one interior edge so it no longer complements its neighbor.
		for i, p := range pieces {
			for s, e := range p.Edges {
				if e == puzzle.EdgeTab {
					pieces[i].Edges[s] = puzzle.EdgeBlank
					return
				}
			}
		}
		t.Fatal("no tab edge found to corrupt")
	})
	if err := runVerify(path, puzzle.DefaultTolerance); err == nil {
		t.Error("runVerify() should report a complement mismatch")
	}
}

func TestRunVerifyCatchesNonFlatBoundary(t *testing.T) {
	path := writePieceDoc(t, func(pieces []puzzle.Piece) {
		// piece_0 sits in the top-left corner; its top side is a boundary.
		pieces[0].Edges[puzzle.SideTop] = puzzle.EdgeTab
	})
	if err := runVerify(path, puzzle.DefaultTolerance); err == nil {
		t.Error("runVerify() should report a non-flat boundary side")
	}
}

func TestRunVerifyMissingFile(t *testing.T) {
	if err := runVerify(filepath.Join(t.TempDir(), "absent.json"), 1); err == nil {
		t.Error("runVerify() should fail on a missing file")
	}
}
