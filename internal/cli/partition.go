package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/pipeline"
)

// newPartitionCmd creates the partition command, which writes a region
// table without generating pieces. The table can be hand-edited and fed
// back into generate via --regions.
func newPartitionCmd() *cobra.Command {
	var (
		output string
		width  int
		height int
		rows   int
		cols   int
	)

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Write a uniform grid region table as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if width == 0 {
				width = pipeline.DefaultWidth
			}
			if height == 0 {
				height = pipeline.DefaultHeight
			}
			if rows == 0 {
				rows = pipeline.DefaultRows
			}
			if cols == 0 {
				cols = pipeline.DefaultCols
			}

			regions, err := partition.Grid(width, height, rows, cols)
			if err != nil {
				return err
			}
			if err := partition.ExportRegions(regions, output); err != nil {
				return err
			}

			logger.Debugf("Wrote %d regions (%dx%d grid over %dx%d px)", len(regions), rows, cols, width, height)
			printSuccess("Partitioned %dx%d image into %d regions", width, height, len(regions))
			printFile(output)
			printNextStep("Generate pieces", "piecemaker generate --regions "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "regions.json", "output file")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().IntVar(&rows, "rows", 0, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "grid columns")

	return cmd
}
