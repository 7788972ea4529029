package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newBatchCmd creates the batch management command for persisted puzzle
// batches. Useful with the mongo store backend; the memory backend does
// not persist across processes.
func newBatchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Manage persisted puzzle batches",
	}

	cmd.AddCommand(newBatchListCmd(configPath))
	cmd.AddCommand(newBatchExportCmd(configPath))
	cmd.AddCommand(newBatchDeleteCmd(configPath))

	return cmd
}

func newBatchListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			batches, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(batches) == 0 {
				printInfo("No saved batches")
				return nil
			}
			for _, b := range batches {
				printKeyValue(b.CreatedAt.Format("2006-01-02"),
					fmt.Sprintf("%s  %d pieces  ratio %.2f", b.ID, b.PieceCount, b.TabDepthRatio))
			}
			return nil
		},
	}
}

func newBatchExportCmd(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a saved batch's piece document to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid batch id: %w", err)
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			batch, err := s.Load(ctx, id)
			if err != nil {
				return err
			}
			if output == "" {
				output = id.String() + ".json"
			}
			if err := os.WriteFile(output, batch.Data, 0644); err != nil {
				return err
			}
			printSuccess("Exported batch %s (%d pieces)", id, batch.PieceCount)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.json)")
	return cmd
}

func newBatchDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid batch id: %w", err)
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			printSuccess("Deleted batch %s", id)
			return nil
		},
	}
}
