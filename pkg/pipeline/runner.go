package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/piecemaker/pkg/cache"
	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/observability"
	"github.com/matzehuels/piecemaker/pkg/partition"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
	"github.com/matzehuels/piecemaker/pkg/render/adjacency"
	"github.com/matzehuels/piecemaker/pkg/render/piece/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and daemon can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete partition → generate → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		PuzzleID:  uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Partition
	partitionStart := time.Now()
	regions, err := r.Partition(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Regions = regions
	result.Stats.PartitionTime = time.Since(partitionStart)
	result.Stats.RegionCount = len(regions)

	regionsData, err := partition.MarshalRegions(regions)
	if err != nil {
		return nil, err
	}
	result.RegionsHash = cache.Hash(regionsData)

	r.Logger.Info("partitioned image",
		"regions", len(regions),
		"duration", result.Stats.PartitionTime)

	// Stage 2: Generate
	generateStart := time.Now()
	pieces, generateHit, err := r.GenerateWithCacheInfo(ctx, regions, result.RegionsHash, opts)
	if err != nil {
		return nil, err
	}
	result.Pieces = pieces
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.PieceCount = len(pieces)
	result.CacheInfo.GenerateHit = generateHit

	r.Logger.Info("generated pieces",
		"pieces", len(pieces),
		"cached", generateHit,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, regions, pieces, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Partition builds the region table: from a JSON file when configured,
// otherwise as a uniform grid.
func (r *Runner) Partition(ctx context.Context, opts Options) ([]puzzle.Region, error) {
	if err := opts.ValidateForPartition(); err != nil {
		return nil, err
	}

	source := "grid"
	if opts.RegionsFile != "" {
		source = opts.RegionsFile
	}
	start := time.Now()
	observability.Pipeline().OnPartitionStart(ctx, source)

	var regions []puzzle.Region
	var err error
	if opts.RegionsFile != "" {
		regions, err = partition.ImportRegions(opts.RegionsFile)
	} else {
		regions, err = partition.Grid(opts.Width, opts.Height, opts.Rows, opts.Cols)
	}

	observability.Pipeline().OnPartitionComplete(ctx, source, len(regions), time.Since(start), err)
	return regions, err
}

// GenerateWithCacheInfo generates pieces with caching and returns cache hit
// info. Cached entries store the full piece document (masks included) so a
// hit round-trips through the JSON sink instead of re-running the engine.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, regions []puzzle.Region, regionsHash string, opts Options) ([]puzzle.Piece, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.PiecesKey(regionsHash, opts.PiecesKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			pieces, err := sink.DecodeJSON(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "pieces")
				return pieces, true, nil // Cache hit
			}
			// Corrupt entry: drop it and regenerate.
			_ = r.Cache.Delete(ctx, cacheKey)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "pieces")

	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, len(regions))
	pieces, err := puzzle.Generate(regions, opts.EngineOptions())
	observability.Pipeline().OnGenerateComplete(ctx, len(pieces), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result with masks so a hit restores complete pieces.
	if data, err := sink.RenderJSON(pieces, sink.WithJSONMasks(), sink.WithJSONRatio(opts.TabDepthRatio)); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPieces); err == nil {
			observability.Cache().OnCacheSet(ctx, "pieces", len(data))
		}
	}

	return pieces, false, nil // Cache miss
}

// Generate is a convenience wrapper that computes the region hash and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, regions []puzzle.Region, opts Options) ([]puzzle.Piece, error) {
	data, err := partition.MarshalRegions(regions)
	if err != nil {
		return nil, err
	}
	pieces, _, err := r.GenerateWithCacheInfo(ctx, regions, cache.Hash(data), opts)
	return pieces, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, regions []puzzle.Region, pieces []puzzle.Piece, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Artifacts key off the piece document, not the region table: two
	// region tables that generate identical pieces share artifacts.
	piecesData, err := sink.RenderJSON(pieces)
	if err != nil {
		return nil, false, err
	}
	piecesHash := cache.Hash(piecesData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(piecesHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := r.renderAll(regions, pieces, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(piecesHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, regions []puzzle.Region, pieces []puzzle.Piece, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, regions, pieces, opts)
	return artifacts, err
}

// renderAll produces every requested format.
func (r *Runner) renderAll(regions []puzzle.Region, pieces []puzzle.Piece, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(format, regions, pieces, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(format string, regions []puzzle.Region, pieces []puzzle.Piece, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONRatio(opts.TabDepthRatio)}
		if opts.Masks {
			jsonOpts = append(jsonOpts, sink.WithJSONMasks())
		}
		if opts.Outlines {
			jsonOpts = append(jsonOpts, sink.WithJSONOutlines())
		}
		return sink.RenderJSON(pieces, jsonOpts...)

	case FormatSVG:
		svgOpts := []sink.SVGOption{}
		if opts.Grid {
			svgOpts = append(svgOpts, sink.WithSVGGrid())
		}
		return sink.RenderSVG(pieces, svgOpts...), nil

	case FormatPNG:
		return sink.RenderPNG(pieces, sink.WithPNGColumns(opts.Columns))

	case FormatDOT:
		adjs, err := puzzle.Resolve(regions, opts.Tolerance)
		if err != nil {
			return nil, err
		}
		return []byte(adjacency.ToDOT(regions, adjs, pieces, adjacency.Options{Detailed: true})), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
