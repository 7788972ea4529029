// Package sink provides output format renderers for generated puzzle pieces.
//
// # Overview
//
// A "sink" transforms a slice of [puzzle.Piece] into a final output format.
// This package provides renderers for:
//
//   - JSON: the canonical interchange document (re-importable)
//   - SVG: piece silhouettes as vector paths, laid out in image coordinates
//   - PNG: a raster contact sheet of the piece masks
//
// # JSON Output
//
// [RenderJSON] is the primary interchange format: everything the consuming
// game layer needs per piece (base geometry, edge types, offsets, difficulty,
// and the alpha mask base64-encoded) in one document. [DecodeJSON] reads the
// same document back, enabling round-trip verification and cached pipelines.
//
// # SVG Output
//
// [RenderSVG] draws each piece outline at its position in the source image,
// so neighboring tabs and blanks visibly interlock. [WithSVGGrid] overlays
// the base region boundaries for debugging partition output.
//
// # PNG Output
//
// [RenderPNG] tiles the piece masks into a grayscale contact sheet, the
// quickest way to eyeball mask synthesis without a browser.
//
// [puzzle.Piece]: github.com/matzehuels/piecemaker/pkg/puzzle.Piece
package sink
