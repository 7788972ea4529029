package puzzle

import "math"

// DefaultTabDepthRatio is the fraction of the shorter piece dimension used
// as the tab depth.
const DefaultTabDepthRatio = 0.15

// SideInfo carries the interlock parameters of one border: the bump size
// agreed with the neighbor and the midpoint of the shared span in absolute
// image coordinates. Flat sides carry a zero Size and an unused Mid.
type SideInfo struct {
	Size int
	Mid  float64
}

// Borders holds the per-side interlock parameters of one region, indexed
// by [Side].
type Borders [numSides]SideInfo

// Offsets is the per-side pixel growth of a piece's final bounding box.
// Only tab sides grow the box; blanks carve into the existing area.
type Offsets struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Geometry describes the extended bounding box of one piece.
type Geometry struct {
	// TabSize is the piece's own candidate tab depth,
	// round(min(width, height) * ratio). Shared borders may use a smaller
	// effective size when the neighbor is smaller; see Borders.
	TabSize int

	// Borders holds the effective bump size and midpoint per side. Both
	// pieces of a shared border carry identical values here, which is the
	// property that makes a tab and its facing blank congruent.
	Borders Borders

	Offsets     Offsets
	FinalWidth  int
	FinalHeight int
}

// CandidateTabSize computes a region's own tab depth at the given ratio.
// A zero result marks degenerate geometry: the piece is too small for any
// visible protrusion and its sides behave like flat shapes.
func CandidateTabSize(r Region, ratio float64) int {
	return int(math.Round(float64(min(r.Width, r.Height)) * ratio))
}

// BordersFor derives uniform interlock parameters for a lone region: every
// side uses the region's own candidate size and its own side midpoint. The
// engine replaces these with per-border canonical values when neighbors are
// known; this form covers single-piece and test scenarios.
func BordersFor(r Region, ratio float64) Borders {
	size := CandidateTabSize(r, ratio)
	cx := float64(r.X) + float64(r.Width)/2
	cy := float64(r.Y) + float64(r.Height)/2
	return Borders{
		SideTop:    {Size: size, Mid: cx},
		SideRight:  {Size: size, Mid: cy},
		SideBottom: {Size: size, Mid: cx},
		SideLeft:   {Size: size, Mid: cy},
	}
}

// Extend computes the final bounding box of a piece from its edge types and
// border parameters. Each tab side grows the box by that border's effective
// size; flat and blank sides contribute nothing. A piece whose every border
// size is zero still produces valid zero-extension geometry.
func Extend(r Region, edges Edges, borders Borders) Geometry {
	grow := func(s Side) int {
		if edges[s] == EdgeTab {
			return borders[s].Size
		}
		return 0
	}

	off := Offsets{
		Left:   grow(SideLeft),
		Top:    grow(SideTop),
		Right:  grow(SideRight),
		Bottom: grow(SideBottom),
	}

	return Geometry{
		TabSize:     borders.maxSize(),
		Borders:     borders,
		Offsets:     off,
		FinalWidth:  r.Width + off.Left + off.Right,
		FinalHeight: r.Height + off.Top + off.Bottom,
	}
}

// ExtendWithRatio is the convenience form of Extend for a region considered
// in isolation, using its own candidate size on all four sides.
func ExtendWithRatio(r Region, edges Edges, ratio float64) Geometry {
	g := Extend(r, edges, BordersFor(r, ratio))
	g.TabSize = CandidateTabSize(r, ratio)
	return g
}

// maxSize returns the largest per-side size, used as the piece's reported
// TabSize when borders were derived per-neighbor.
func (b Borders) maxSize() int {
	m := 0
	for _, s := range b {
		if s.Size > m {
			m = s.Size
		}
	}
	return m
}
