package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/piecemaker/pkg/puzzle"
	"github.com/matzehuels/piecemaker/pkg/render/piece/sink"
)

// newVerifyCmd creates the verify command, which checks a piece document
// for interlock consistency: every shared border must pair a tab with a
// blank carrying identical bump parameters, and every boundary side must
// be flat.
func newVerifyCmd() *cobra.Command {
	var tolerance int

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check a piece document for interlock consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], tolerance)
		},
	}

	cmd.Flags().IntVar(&tolerance, "tolerance", puzzle.DefaultTolerance, "segmentation tolerance in pixels")

	return cmd
}

// runVerify loads pieces, re-resolves adjacency from their regions, and
// cross-checks the recorded edge types and border parameters.
func runVerify(path string, tolerance int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pieces, err := sink.DecodeJSON(data)
	if err != nil {
		return err
	}

	byID := make(map[string]puzzle.Piece, len(pieces))
	regions := make([]puzzle.Region, len(pieces))
	for i, p := range pieces {
		byID[p.Region.ID] = p
		regions[i] = p.Region
	}

	adjacencies, err := puzzle.Resolve(regions, tolerance)
	if err != nil {
		return err
	}

	problems := 0
	shared := make(map[string]map[puzzle.Side]bool, len(pieces))
	for id := range byID {
		shared[id] = make(map[puzzle.Side]bool)
	}

	for _, adj := range adjacencies {
		a, b := byID[adj.A], byID[adj.B]
		shared[adj.A][adj.SideA] = true
		shared[adj.B][adj.SideB] = true

		ea := a.Edges[adj.SideA]
		eb := b.Edges[adj.SideB]
		if ea.Complement() != eb {
			printError("%s/%s and %s/%s: %s does not complement %s",
				adj.A, adj.SideA, adj.B, adj.SideB, ea, eb)
			problems++
		}
		if ea == puzzle.EdgeFlat && eb == puzzle.EdgeFlat {
			// Degenerate geometry legitimately leaves both sides flat;
			// only border parameter disagreement is an error there.
			if a.Geometry.Borders[adj.SideA].Size != 0 || b.Geometry.Borders[adj.SideB].Size != 0 {
				printError("%s/%s and %s/%s: flat border carries a bump size",
					adj.A, adj.SideA, adj.B, adj.SideB)
				problems++
			}
			continue
		}

		ba := a.Geometry.Borders[adj.SideA]
		bb := b.Geometry.Borders[adj.SideB]
		if ba != bb {
			printError("%s/%s and %s/%s: border parameters disagree (%+v vs %+v)",
				adj.A, adj.SideA, adj.B, adj.SideB, ba, bb)
			problems++
		}
	}

	// Boundary sides must be flat.
	for id, p := range byID {
		for side, edge := range p.Edges {
			if !shared[id][puzzle.Side(side)] && edge != puzzle.EdgeFlat {
				printError("%s/%s: boundary side is %s, want flat", id, puzzle.Side(side), edge)
				problems++
			}
		}
	}

	if problems > 0 {
		printDetail("%d pieces, %d shared borders checked", len(pieces), len(adjacencies))
		return fmt.Errorf("%d interlock problems found", problems)
	}
	printSuccess("All %d pieces interlock correctly", len(pieces))
	printDetail("%d shared borders checked", len(adjacencies))
	return nil
}
