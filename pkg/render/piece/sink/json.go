package sink

import (
	"encoding/base64"
	"encoding/json"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	includeMasks    bool
	includeOutlines bool
	tabDepthRatio   float64
}

// WithJSONMasks includes the base64-encoded alpha masks in the output. Masks
// dominate document size, so they are opt-in; consumers that only need
// logical geometry (or that re-synthesize masks themselves) skip them.
func WithJSONMasks() JSONOption { return func(r *jsonRenderer) { r.includeMasks = true } }

// WithJSONOutlines includes the SVG outline path per piece, for consumers
// that clip vector graphics instead of compositing raster masks.
func WithJSONOutlines() JSONOption { return func(r *jsonRenderer) { r.includeOutlines = true } }

// WithJSONRatio records the tab depth ratio used for generation, so the
// document is reproducible from its own header.
func WithJSONRatio(ratio float64) JSONOption {
	return func(r *jsonRenderer) { r.tabDepthRatio = ratio }
}

type jsonDocument struct {
	Count         int         `json:"count"`
	TabDepthRatio float64     `json:"tab_depth_ratio,omitempty"`
	Pieces        []jsonPiece `json:"pieces"`
}

type jsonPiece struct {
	ID          string       `json:"id"`
	Row         int          `json:"row"`
	Col         int          `json:"col"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Edges       jsonEdges    `json:"edges"`
	EdgeOffsets jsonOffsets  `json:"edgeOffsets"`
	TabSize     int          `json:"tabSize"`
	FinalWidth  int          `json:"finalWidth"`
	FinalHeight int          `json:"finalHeight"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Outline     string       `json:"outline,omitempty"`
	Mask        *jsonMask    `json:"mask,omitempty"`
	Borders     []jsonBorder `json:"borders,omitempty"`
}

type jsonEdges struct {
	Top    puzzle.EdgeType `json:"top"`
	Right  puzzle.EdgeType `json:"right"`
	Bottom puzzle.EdgeType `json:"bottom"`
	Left   puzzle.EdgeType `json:"left"`
}

type jsonOffsets struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

type jsonMask struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   string `json:"data"` // base64 row-major alpha bytes
}

type jsonBorder struct {
	Side string  `json:"side"`
	Size int     `json:"size"`
	Mid  float64 `json:"mid"`
}

// RenderJSON exports pieces as a pretty-printed JSON document, the primary
// data interchange format of the engine. The document is self-contained:
// [DecodeJSON] reads it back into pieces (masks included when they were
// rendered), so generation results can be cached, stored, and re-verified
// without rerunning the engine.
//
// RenderJSON does not modify the pieces and is safe to call concurrently.
func RenderJSON(pieces []puzzle.Piece, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	doc := jsonDocument{
		Count:         len(pieces),
		TabDepthRatio: r.tabDepthRatio,
		Pieces:        make([]jsonPiece, len(pieces)),
	}
	for i, p := range pieces {
		doc.Pieces[i] = buildJSONPiece(p, r)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func buildJSONPiece(p puzzle.Piece, r jsonRenderer) jsonPiece {
	g := p.Geometry
	jp := jsonPiece{
		ID:     p.Region.ID,
		Row:    p.Region.Row,
		Col:    p.Region.Col,
		X:      p.Region.X,
		Y:      p.Region.Y,
		Width:  p.Region.Width,
		Height: p.Region.Height,
		Edges: jsonEdges{
			Top:    p.Edges[puzzle.SideTop],
			Right:  p.Edges[puzzle.SideRight],
			Bottom: p.Edges[puzzle.SideBottom],
			Left:   p.Edges[puzzle.SideLeft],
		},
		EdgeOffsets: jsonOffsets{
			Left:   g.Offsets.Left,
			Top:    g.Offsets.Top,
			Right:  g.Offsets.Right,
			Bottom: g.Offsets.Bottom,
		},
		TabSize:     g.TabSize,
		FinalWidth:  g.FinalWidth,
		FinalHeight: g.FinalHeight,
		Difficulty:  string(p.Difficulty),
	}

	for s := puzzle.SideTop; s <= puzzle.SideLeft; s++ {
		info := g.Borders[s]
		if info.Size == 0 {
			continue
		}
		jp.Borders = append(jp.Borders, jsonBorder{Side: s.String(), Size: info.Size, Mid: info.Mid})
	}

	if r.includeOutlines {
		jp.Outline = p.Outline()
	}
	if r.includeMasks && p.Mask != nil {
		jp.Mask = &jsonMask{
			Width:  p.Mask.Width(),
			Height: p.Mask.Height(),
			Data:   base64.StdEncoding.EncodeToString(p.Mask.Bytes()),
		}
	}
	return jp
}

// DecodeJSON reads a document produced by [RenderJSON] back into pieces.
// Pieces whose document carried a mask get it restored; others come back
// with a nil mask (logical geometry only). Border parameters, edge types,
// and offsets survive the round trip exactly.
func DecodeJSON(data []byte) ([]puzzle.Piece, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode piece document")
	}

	pieces := make([]puzzle.Piece, len(doc.Pieces))
	for i, jp := range doc.Pieces {
		p, err := decodeJSONPiece(jp)
		if err != nil {
			return nil, err
		}
		pieces[i] = p
	}
	return pieces, nil
}

var sideFromName = map[string]puzzle.Side{
	"top":    puzzle.SideTop,
	"right":  puzzle.SideRight,
	"bottom": puzzle.SideBottom,
	"left":   puzzle.SideLeft,
}

func decodeJSONPiece(jp jsonPiece) (puzzle.Piece, error) {
	if err := errors.ValidateRegionID(jp.ID); err != nil {
		return puzzle.Piece{}, err
	}

	var borders puzzle.Borders
	for _, b := range jp.Borders {
		side, ok := sideFromName[b.Side]
		if !ok {
			return puzzle.Piece{}, errors.New(errors.ErrCodeInvalidFormat,
				"piece %q: unknown border side %q", jp.ID, b.Side)
		}
		borders[side] = puzzle.SideInfo{Size: b.Size, Mid: b.Mid}
	}

	p := puzzle.Piece{
		Region: puzzle.Region{
			ID:     jp.ID,
			Row:    jp.Row,
			Col:    jp.Col,
			X:      jp.X,
			Y:      jp.Y,
			Width:  jp.Width,
			Height: jp.Height,
		},
		Edges: puzzle.Edges{
			puzzle.SideTop:    jp.Edges.Top,
			puzzle.SideRight:  jp.Edges.Right,
			puzzle.SideBottom: jp.Edges.Bottom,
			puzzle.SideLeft:   jp.Edges.Left,
		},
		Geometry: puzzle.Geometry{
			TabSize: jp.TabSize,
			Borders: borders,
			Offsets: puzzle.Offsets{
				Left:   jp.EdgeOffsets.Left,
				Top:    jp.EdgeOffsets.Top,
				Right:  jp.EdgeOffsets.Right,
				Bottom: jp.EdgeOffsets.Bottom,
			},
			FinalWidth:  jp.FinalWidth,
			FinalHeight: jp.FinalHeight,
		},
		Difficulty: puzzle.Difficulty(jp.Difficulty),
	}

	if jp.Mask != nil {
		raw, err := base64.StdEncoding.DecodeString(jp.Mask.Data)
		if err != nil {
			return puzzle.Piece{}, errors.Wrap(errors.ErrCodeInvalidFormat, err,
				"piece %q: decode mask data", jp.ID)
		}
		m, err := puzzle.NewMaskFromBytes(jp.Mask.Width, jp.Mask.Height, raw)
		if err != nil {
			return puzzle.Piece{}, errors.Wrap(errors.ErrCodeMaskMismatch, err, "piece %q", jp.ID)
		}
		p.Mask = m
	}

	return p, nil
}
