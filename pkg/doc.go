// Package pkg provides the core libraries for Piecemaker puzzle generation.
//
// # Overview
//
// Piecemaker converts a rectangular image segmentation into interlocking
// jigsaw puzzle pieces. The pkg directory is organized into:
//
//  1. [puzzle] - Domain logic (adjacency resolution, edge assignment,
//     geometry and mask synthesis)
//  2. [partition] - Region table construction and JSON import/export
//  3. [render] - Output sinks (piece JSON/SVG/PNG, adjacency graphs)
//  4. [pipeline] - Orchestration with stage caching
//  5. [cache], [store], [config] - Infrastructure
//
// # Architecture
//
// The typical data flow through Piecemaker:
//
//	Region table (grid or JSON)
//	         ↓
//	    [puzzle] package (resolve → assign → synthesize)
//	         ↓
//	    [render] package (JSON / SVG / PNG / DOT output)
//
// # Quick Start
//
// Generate pieces from a uniform grid and render them as SVG:
//
//	import (
//	    "github.com/matzehuels/piecemaker/pkg/partition"
//	    "github.com/matzehuels/piecemaker/pkg/puzzle"
//	    "github.com/matzehuels/piecemaker/pkg/render/piece/sink"
//	)
//
//	regions, _ := partition.Grid(800, 600, 4, 6)
//	pieces, _ := puzzle.Generate(regions, puzzle.Options{})
//	svg := sink.RenderSVG(pieces)
//
// Or run the complete cached pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Rows: 4, Cols: 6})
//
// # Main Packages
//
// [puzzle] - The generation engine. Resolves which regions share borders,
// assigns complementary tab/blank pairs, and synthesizes per-piece geometry
// and alpha masks in parallel.
//
// [partition] - Region tables: uniform grids, validation, and the JSON
// interchange format consumed by the engine.
//
// [render/piece/sink] - Piece output formats: a JSON document (optionally
// with base64 masks and outline paths), an SVG sheet with pieces at their
// image positions, and a PNG contact sheet of masks.
//
// [render/adjacency] - The region adjacency graph as Graphviz DOT, with
// optional SVG/PNG rasterization.
//
// [pipeline] - The partition → generate → render pipeline with content-hash
// stage caching, shared by every entry point.
//
// [cache] - Cache backends (file, redis, null) and stage key derivation.
//
// [store] - Batch persistence (memory, mongo) for generated puzzles.
//
// [config] - TOML configuration for generation defaults and backend
// selection.
//
// [errors] - Coded errors shared across all packages.
//
// [puzzle]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/puzzle
// [partition]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/partition
// [render]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/render
// [render/piece/sink]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/render/piece/sink
// [render/adjacency]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/render/adjacency
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/piecemaker/pkg/errors
package pkg
