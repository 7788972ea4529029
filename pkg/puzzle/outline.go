package puzzle

import (
	"fmt"
	"strings"
)

// Outline returns the piece silhouette as an SVG path in the coordinate
// space of the final canvas (0,0 at the canvas top-left). The path walks
// the base rectangle clockwise; each tab inserts a clockwise elliptical arc
// bulging outward and each blank a counterclockwise arc biting inward, both
// centered on the border's shared midpoint with semi-axes equal to the
// border's effective size.
//
// The raster mask from [Synthesize] and this outline describe the same
// silhouette; the outline is what the SVG sink emits and what a renderer
// can use for resolution-independent clipping.
func Outline(r Region, edges Edges, g Geometry) string {
	var b strings.Builder

	left := float64(g.Offsets.Left)
	top := float64(g.Offsets.Top)
	right := left + float64(r.Width)
	bottom := top + float64(r.Height)

	// Midpoints converted from absolute image coordinates to canvas
	// coordinates.
	midX := func(s Side) float64 { return g.Borders[s].Mid - float64(r.X) + left }
	midY := func(s Side) float64 { return g.Borders[s].Mid - float64(r.Y) + top }

	fmt.Fprintf(&b, "M %s %s", fnum(left), fnum(top))

	// Top: left to right.
	writeSide(&b, edges[SideTop], g.Borders[SideTop],
		midX(SideTop), top, axisX, right, top)
	// Right: top to bottom.
	writeSide(&b, edges[SideRight], g.Borders[SideRight],
		right, midY(SideRight), axisY, right, bottom)
	// Bottom: right to left.
	writeSide(&b, edges[SideBottom], g.Borders[SideBottom],
		midX(SideBottom), bottom, axisX, left, bottom)
	// Left: bottom to top.
	writeSide(&b, edges[SideLeft], g.Borders[SideLeft],
		left, midY(SideLeft), axisY, left, top)

	b.WriteString(" Z")
	return b.String()
}

type axis uint8

const (
	axisX axis = iota // border runs along x (top or bottom side)
	axisY             // border runs along y (left or right side)
)

// writeSide appends the path segment for one side ending at (endX, endY).
// A flat or zero-size border is a straight line; otherwise the segment runs
// to the arc start, draws the half-ellipse, and continues to the corner.
// The traversal is clockwise, so an outward bump keeps the winding
// (sweep-flag 1) and an inward bite reverses it (sweep-flag 0).
func writeSide(b *strings.Builder, e EdgeType, info SideInfo, mx, my float64, along axis, endX, endY float64) {
	size := float64(info.Size)
	if e == EdgeFlat || size == 0 {
		fmt.Fprintf(b, " L %s %s", fnum(endX), fnum(endY))
		return
	}

	sweep := 1 // tab: clockwise arc, bulging outward
	if e == EdgeBlank {
		sweep = 0
	}

	// Arc endpoints straddle the midpoint along the border axis. The sign
	// of the step follows the traversal direction so the arc is entered
	// from the side we approach it on.
	var ax0, ay0, ax1, ay1 float64
	if along == axisX {
		step := size
		if endX < mx {
			step = -size // bottom side runs right to left
		}
		ax0, ay0 = mx-step, my
		ax1, ay1 = mx+step, my
	} else {
		step := size
		if endY < my {
			step = -size // left side runs bottom to top
		}
		ax0, ay0 = mx, my-step
		ax1, ay1 = mx, my+step
	}

	fmt.Fprintf(b, " L %s %s A %s %s 0 0 %d %s %s L %s %s",
		fnum(ax0), fnum(ay0),
		fnum(size), fnum(size), sweep,
		fnum(ax1), fnum(ay1),
		fnum(endX), fnum(endY))
}

// fnum formats a coordinate with at most one decimal place, trimming the
// trailing ".0" that most grid-aligned values would carry.
func fnum(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
