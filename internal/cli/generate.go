package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/piecemaker/pkg/config"
	"github.com/matzehuels/piecemaker/pkg/pipeline"
	"github.com/matzehuels/piecemaker/pkg/render/piece/sink"
	"github.com/matzehuels/piecemaker/pkg/store"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string   // output base path
	regions   string   // region table JSON file (overrides grid flags)
	width     int      // image width in pixels
	height    int      // image height in pixels
	rows      int      // grid rows
	cols      int      // grid columns
	ratio     float64  // tab depth ratio
	tolerance int      // segmentation tolerance in pixels
	workers   int      // parallel piece builders
	formats   []string // output formats
	masks     bool     // include base64 masks in JSON output
	outlines  bool     // include outline paths in JSON output
	grid      bool     // overlay region grid in SVG output
	columns   int      // PNG contact sheet columns
	refresh   bool     // bypass the pieces cache
	noCache   bool     // disable caching entirely
	save      bool     // persist the batch to the configured store
}

// newGenerateCmd creates the generate command, which runs the full
// partition, generate, render pipeline.
func newGenerateCmd(configPath *string) *cobra.Command {
	var formatsStr string
	opts := generateOpts{
		ratio:   0, // pipeline default
		columns: 4,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzle pieces from a region table or grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "puzzle", "output base path (format extensions are appended)")
	cmd.Flags().StringVarP(&opts.regions, "regions", "r", "", "region table JSON file (overrides grid flags)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid columns")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "tab depth as a fraction of the shorter piece dimension")
	cmd.Flags().IntVar(&opts.tolerance, "tolerance", 0, "segmentation tolerance in pixels")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel piece builders (default: number of CPUs)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.masks, "masks", false, "include base64 masks in JSON output")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "include outline paths in JSON output")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "overlay the region grid in SVG output")
	cmd.Flags().IntVar(&opts.columns, "columns", opts.columns, "PNG contact sheet columns")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if a cached result exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist the batch to the configured store")

	return cmd
}

// runGenerate executes the pipeline and writes one file per format.
func runGenerate(ctx context.Context, configPath string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, logger)
	if !opts.noCache {
		c, err := openCache(ctx, cfg)
		if err != nil {
			printWarning("Cache unavailable, continuing without: %v", err)
		} else {
			runner.Cache = c
		}
	}
	defer runner.Close()

	ratio := opts.ratio
	if ratio == 0 {
		ratio = cfg.TabDepthRatio
	}
	tolerance := opts.tolerance
	if tolerance == 0 {
		tolerance = cfg.Tolerance
	}

	pipeOpts := pipeline.Options{
		RegionsFile:   opts.regions,
		Width:         opts.width,
		Height:        opts.height,
		Rows:          opts.rows,
		Cols:          opts.cols,
		TabDepthRatio: ratio,
		Tolerance:     tolerance,
		Workers:       opts.workers,
		Refresh:       opts.refresh,
		Formats:       opts.formats,
		Masks:         opts.masks,
		Outlines:      opts.outlines,
		Grid:          opts.grid,
		Columns:       opts.columns,
		Logger:        logger,
	}

	spinner := newSpinnerWithContext(ctx, "Generating pieces...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %d pieces", result.Stats.PieceCount))
	printStats(result.Stats.RegionCount, result.Stats.PieceCount, result.CacheInfo.GenerateHit)

	for _, format := range opts.formats {
		path := outputPath(opts.output, format)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if opts.save {
		if err := saveBatch(ctx, cfg, result, ratio); err != nil {
			return err
		}
		printDetail("Saved batch %s", result.PuzzleID)
	}

	if contains(opts.formats, pipeline.FormatJSON) {
		printNextStep("Inspect pieces", "piecemaker inspect "+outputPath(opts.output, "json"))
	}
	return nil
}

// saveBatch persists the pipeline result to the configured batch store.
// The stored document always includes masks so the batch can be fully
// reloaded, regardless of the run's JSON flags.
func saveBatch(ctx context.Context, cfg config.Config, result *pipeline.Result, ratio float64) error {
	id, err := uuid.Parse(result.PuzzleID)
	if err != nil {
		return fmt.Errorf("parse batch id: %w", err)
	}

	data, err := sink.RenderJSON(result.Pieces, sink.WithJSONMasks(), sink.WithJSONRatio(ratio))
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	return s.Save(ctx, store.Batch{
		ID:            id,
		CreatedAt:     time.Now().UTC(),
		RegionsHash:   result.RegionsHash,
		PieceCount:    result.Stats.PieceCount,
		TabDepthRatio: ratio,
		Data:          data,
	})
}

// outputPath appends a format extension to the base path, stripping any
// existing known extension first.
func outputPath(base, format string) string {
	ext := filepath.Ext(base)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["json"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
