// Package adjacency renders the resolved adjacency structure of a puzzle as
// a Graphviz graph, the debugging view for edge assignment: every region is
// a node and every shared border an edge labeled with the side pair and the
// tab direction.
package adjacency

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// Options configures adjacency graph rendering.
type Options struct {
	// Detailed includes border midpoint and span in edge labels.
	Detailed bool
}

// ToDOT converts regions and their resolved adjacencies to Graphviz DOT.
// When pieces are given their edge types annotate the graph: each border
// edge points from the tab holder to the blank holder, so a rendered graph
// shows the deterministic assignment at a glance. The resulting DOT string
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(regions []puzzle.Region, adjacencies []puzzle.Adjacency, pieces []puzzle.Piece, opts Options) string {
	edgesByID := make(map[string]puzzle.Edges, len(pieces))
	for _, p := range pieces {
		edgesByID[p.Region.ID] = p.Edges
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, r := range regions {
		// Pin nodes at region centers so the drawing mirrors the image.
		cx := float64(r.X) + float64(r.Width)/2
		cy := float64(r.Y) + float64(r.Height)/2
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.0f,-%.0f!\"];\n",
			r.ID, fmt.Sprintf("%s\n%dx%d", r.ID, r.Width, r.Height), cx/50, cy/50)
	}

	buf.WriteString("\n")
	for _, adj := range adjacencies {
		label := fmt.Sprintf("%s/%s", adj.SideA, adj.SideB)
		if opts.Detailed {
			label += fmt.Sprintf("\nmid %.1f span %d", adj.Mid, adj.Span)
		}

		attrs := fmt.Sprintf("label=%q, fontsize=10", label)
		if edges, ok := edgesByID[adj.A]; ok {
			// Arrowhead on the blank holder's end marks the tab direction.
			if edges[adj.SideA] == puzzle.EdgeTab {
				attrs += ", dir=forward, arrowhead=normal"
			} else {
				attrs += ", dir=back, arrowtail=normal"
			}
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", adj.A, adj.B, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz in-process.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz in-process.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}
