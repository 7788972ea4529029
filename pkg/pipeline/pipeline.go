// Package pipeline provides the core generation pipeline for Piecemaker.
//
// This package implements the complete partition → generate → render pipeline
// that can be used by CLI, daemon, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Partition: Build a region table (uniform grid) or load one from JSON
//  2. Generate: Resolve adjacencies, assign edge types, synthesize geometry
//     and masks
//  3. Render: Produce output artifacts in various formats (JSON, SVG, PNG,
//     DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
// The generate and render stages are cached by content hash: identical region
// tables and options reuse earlier results byte for byte.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:  800,
//	    Height: 600,
//	    Rows:   4,
//	    Cols:   6,
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/piecemaker/pkg/cache"
	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Daemon, and Worker
// =============================================================================

const (
	// DefaultRows and DefaultCols define the fallback grid when neither a
	// region file nor explicit grid dimensions are given.
	DefaultRows = 4
	DefaultCols = 6

	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 600
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for worker requests.
type Options struct {
	// Partition options. RegionsFile takes precedence; otherwise a uniform
	// Rows×Cols grid over Width×Height is used.
	RegionsFile string `json:"regions_file,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Cols        int    `json:"cols,omitempty"`

	// Generate options
	TabDepthRatio float64 `json:"tab_depth_ratio,omitempty"`
	Tolerance     int     `json:"tolerance,omitempty"`
	Workers       int     `json:"workers,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"` // Bypass the pieces cache

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Masks    bool     `json:"masks,omitempty"`    // Include base64 masks in JSON output
	Outlines bool     `json:"outlines,omitempty"` // Include SVG outline paths in JSON output
	Grid     bool     `json:"grid,omitempty"`     // Overlay region grid in SVG output
	Columns  int      `json:"columns,omitempty"`  // PNG contact sheet columns

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PuzzleID identifies this generated batch, for persistence and logs.
	PuzzleID string

	// Regions is the input region table.
	Regions []puzzle.Region

	// RegionsHash is the content hash of the canonical region table bytes.
	RegionsHash string

	// Pieces are the generated puzzle pieces.
	Pieces []puzzle.Piece

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RegionCount   int
	PieceCount    int
	BorderCount   int
	PartitionTime time.Duration
	GenerateTime  time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the piece document came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, png, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPartition(); err != nil {
		return err
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPartition checks and defaults the partition inputs.
func (o *Options) ValidateForPartition() error {
	if o.RegionsFile != "" {
		return nil // grid parameters unused
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Width < 0 || o.Height < 0 || o.Rows < 0 || o.Cols < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"partition parameters must be positive")
	}
	return nil
}

// ValidateForGenerate checks and defaults the generation inputs.
func (o *Options) ValidateForGenerate() error {
	if o.TabDepthRatio == 0 {
		o.TabDepthRatio = puzzle.DefaultTabDepthRatio
	}
	if err := errors.ValidateTabDepthRatio(o.TabDepthRatio); err != nil {
		return err
	}
	if o.Tolerance == 0 {
		o.Tolerance = puzzle.DefaultTolerance
	}
	if err := errors.ValidateTolerance(o.Tolerance); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender checks and defaults the render inputs.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Columns == 0 {
		o.Columns = 4
	}
	return ValidateFormats(o.Formats)
}

// EngineOptions converts the pipeline configuration to engine options.
func (o *Options) EngineOptions() puzzle.Options {
	return puzzle.Options{
		TabDepthRatio: o.TabDepthRatio,
		Tolerance:     o.Tolerance,
		Workers:       o.Workers,
		Logger:        o.Logger,
	}
}

// PiecesKeyOpts returns cache key options for the generate stage.
func (o *Options) PiecesKeyOpts() cache.PiecesKeyOpts {
	return cache.PiecesKeyOpts{
		TabDepthRatio: o.TabDepthRatio,
		Tolerance:     o.Tolerance,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Masks:    o.Masks,
		Outlines: o.Outlines,
		Columns:  o.Columns,
	}
}
