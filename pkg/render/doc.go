// Package render provides the output renderers for generated puzzles.
//
// # Overview
//
// Rendering is split by concern:
//
//   - [piece/sink]: transforms a generated piece list into final output
//     formats (JSON interchange, SVG silhouettes, PNG contact sheets)
//   - [adjacency]: renders the resolved adjacency structure as a Graphviz
//     graph for debugging edge assignment
//
// The piece sinks are the pipeline's artifact stage; the adjacency renderer
// is wired to the `graph` CLI command.
//
// [piece/sink]: github.com/matzehuels/piecemaker/pkg/render/piece/sink
// [adjacency]: github.com/matzehuels/piecemaker/pkg/render/adjacency
package render
