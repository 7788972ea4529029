package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
	"github.com/matzehuels/piecemaker/pkg/render/adjacency"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string // output file path
	format    string // dot, svg, or png
	detailed  bool   // include midpoint and span labels
	tolerance int    // segmentation tolerance in pixels
	ratio     float64
	pieces    bool // generate pieces to mark tab direction on edges
}

// newGraphCmd creates the graph command, which renders the region
// adjacency graph. Nodes are pinned at region centers so the drawing
// mirrors the physical layout.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{
		format:    "dot",
		tolerance: puzzle.DefaultTolerance,
		ratio:     puzzle.DefaultTabDepthRatio,
	}

	cmd := &cobra.Command{
		Use:   "graph [regions.json]",
		Short: "Render the region adjacency graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with midpoint and span")
	cmd.Flags().IntVar(&opts.tolerance, "tolerance", opts.tolerance, "segmentation tolerance in pixels")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", opts.ratio, "tab depth ratio used when marking tab direction")
	cmd.Flags().BoolVar(&opts.pieces, "direction", false, "generate pieces and mark tab direction on edges")

	return cmd
}

func runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	regions, err := partition.ImportRegions(input)
	if err != nil {
		return err
	}
	adjacencies, err := puzzle.Resolve(regions, opts.tolerance)
	if err != nil {
		return err
	}
	logger.Debugf("Resolved %d shared borders across %d regions", len(adjacencies), len(regions))

	var pieces []puzzle.Piece
	if opts.pieces {
		pieces, err = puzzle.Generate(regions, puzzle.Options{
			TabDepthRatio: opts.ratio,
			Tolerance:     opts.tolerance,
			Logger:        logger,
		})
		if err != nil {
			return err
		}
	}

	dot := adjacency.ToDOT(regions, adjacencies, pieces, adjacency.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = adjacency.RenderSVG(dot)
	case "png":
		data, err = adjacency.RenderPNG(dot)
	default:
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", opts.format)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = outputPath(input, opts.format)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	printSuccess("Rendered adjacency graph (%d regions, %d borders)", len(regions), len(adjacencies))
	printFile(output)
	return nil
}
