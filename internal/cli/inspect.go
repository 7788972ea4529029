package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/piecemaker/pkg/render/piece/sink"
)

// newInspectCmd creates the inspect command, an interactive terminal
// browser for a generated piece document. Requires the document to have
// been written with masks included (generate --masks).
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse pieces interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pieces, err := sink.DecodeJSON(data)
			if err != nil {
				return err
			}
			if len(pieces) == 0 {
				return fmt.Errorf("%s contains no pieces", args[0])
			}
			hasMasks := false
			for _, p := range pieces {
				if p.Mask != nil {
					hasMasks = true
					break
				}
			}
			if !hasMasks {
				printWarning("Document has no masks; previews will be empty (regenerate with --masks)")
			}

			model := NewPieceListModel(pieces)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}
