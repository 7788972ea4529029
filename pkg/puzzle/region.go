package puzzle

import "fmt"

// Side identifies one of the four borders of a region.
type Side uint8

// The four sides, in the fixed processing order used throughout the engine.
const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft

	numSides = 4
)

var sideNames = [numSides]string{"top", "right", "bottom", "left"}

// String returns the lowercase side name.
func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// Opposite returns the side that faces s across a shared border.
func (s Side) Opposite() Side {
	return (s + 2) % numSides
}

// EdgeType is the closed set of shapes a region side can take. Keeping this
// a typed enumeration (rather than strings) means a misspelled edge type is
// a compile error, not a silent complementarity failure at render time.
type EdgeType uint8

const (
	// EdgeFlat is a border with no protrusion or indentation. Only sides
	// without a neighbor are flat.
	EdgeFlat EdgeType = iota

	// EdgeTab protrudes outward and grows the piece's final bounding box.
	EdgeTab

	// EdgeBlank indents inward, carving into the piece's existing area.
	EdgeBlank
)

var edgeNames = [...]string{"flat", "tab", "blank"}

// String returns the lowercase edge type name.
func (e EdgeType) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

// Complement returns the edge type that fits against e across a shared
// border: tab for blank, blank for tab. Flat has no counterpart and maps
// to itself.
func (e EdgeType) Complement() EdgeType {
	switch e {
	case EdgeTab:
		return EdgeBlank
	case EdgeBlank:
		return EdgeTab
	default:
		return EdgeFlat
	}
}

// MarshalText implements encoding.TextMarshaler so edge types serialize as
// their names in JSON documents.
func (e EdgeType) MarshalText() ([]byte, error) {
	if int(e) >= len(edgeNames) {
		return nil, fmt.Errorf("unknown edge type %d", uint8(e))
	}
	return []byte(edgeNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EdgeType) UnmarshalText(text []byte) error {
	for i, name := range edgeNames {
		if string(text) == name {
			*e = EdgeType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown edge type %q", text)
}

// Edges holds the resolved edge type of each side of one region, indexed
// by [Side].
type Edges [numSides]EdgeType

// Region is one axis-aligned input tile, produced by an upstream
// partitioner (uniform grid or segmentation) and never mutated by the
// engine. Row and Col are grid hints; actual adjacency is geometric.
type Region struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Right returns the x coordinate of the region's right border.
func (r Region) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the region's bottom border.
func (r Region) Bottom() int { return r.Y + r.Height }
