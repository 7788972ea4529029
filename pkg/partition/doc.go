// Package partition produces and serializes region tables, the input of the
// puzzle engine.
//
// Two sources are supported:
//
//   - [Grid] computes a uniform rows×cols partition of an image extent, the
//     fallback used when no segmentation is available. Remainder pixels are
//     absorbed by the last row and column so the table always tiles the
//     extent exactly.
//   - [ImportRegions] / [ReadRegions] load a table produced elsewhere (for
//     example by a segmentation service) from JSON.
//
// The JSON format is a single object with a "regions" array:
//
//	{
//	  "regions": [
//	    {"id": "piece_0", "row": 0, "col": 0, "x": 0, "y": 0, "width": 100, "height": 100}
//	  ]
//	}
//
// [MarshalRegions] returns the canonical byte form of a table, used by the
// pipeline as cache-key material: identical tables always produce identical
// bytes.
package partition
