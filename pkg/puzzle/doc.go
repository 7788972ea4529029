// Package puzzle implements the jigsaw piece generation engine.
//
// The engine transforms a flat table of axis-aligned regions (one per
// future piece) into interlocking puzzle pieces. Generation runs in four
// stages:
//
//  1. Resolve: find every shared border between regions within a pixel
//     tolerance ([Resolve]).
//  2. Assign: give each side of each region an edge type (flat, tab, or
//     blank) so that facing sides are always complementary ([Assign],
//     [Verify]).
//  3. Extend: grow each region's bounding box by the tab depth on every
//     tab side ([Extend]).
//  4. Synthesize: render each piece's alpha silhouette on the extended
//     canvas ([Synthesize]) and assemble the final record ([Assemble]).
//
// [Generate] runs the full sequence. The whole computation is a pure batch
// transformation: the same region table and options always produce
// byte-identical pieces, which is what makes generated puzzles cacheable
// and resumable.
//
// # Example
//
//	regions := partition.Grid(600, 400, 2, 3)
//	pieces, err := puzzle.Generate(regions, puzzle.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range pieces {
//	    fmt.Println(p.Region.ID, p.Edges, p.Geometry.FinalWidth)
//	}
package puzzle
