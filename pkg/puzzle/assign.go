package puzzle

import (
	"slices"
	"strings"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// slot is one write-once cell in the assignment table: unset until the
// assigner writes it exactly once.
type slot struct {
	set bool
	typ EdgeType
}

// Assignment is the per-region, per-side edge table. Slots are write-once:
// a second write to the same slot is an invariant violation, never a silent
// overwrite. This keeps the complementarity invariant checkable instead of
// implicit in control flow.
type Assignment struct {
	slots map[string]*[numSides]slot
}

func newAssignment(regions []Region) *Assignment {
	a := &Assignment{slots: make(map[string]*[numSides]slot, len(regions))}
	for _, r := range regions {
		a.slots[r.ID] = &[numSides]slot{}
	}
	return a
}

// set writes a slot, failing if the region is unknown or the slot was
// already written.
func (a *Assignment) set(id string, side Side, typ EdgeType) error {
	row, ok := a.slots[id]
	if !ok {
		return errors.New(errors.ErrCodeInvalidRegion, "unknown region %q in adjacency list", id)
	}
	if row[side].set {
		return errors.New(errors.ErrCodeEdgeMismatch,
			"side %s of region %q assigned twice (have %s)", side, id, row[side].typ)
	}
	row[side] = slot{set: true, typ: typ}
	return nil
}

// at returns the slot for (id, side). ok is false while the slot is unset.
func (a *Assignment) at(id string, side Side) (EdgeType, bool) {
	row, found := a.slots[id]
	if !found || !row[side].set {
		return EdgeFlat, false
	}
	return row[side].typ, true
}

// Edges returns the completed edge set of a region. It must only be called
// after Assign has finalized the table; an unset slot reports ok=false.
func (a *Assignment) Edges(id string) (Edges, bool) {
	row, found := a.slots[id]
	if !found {
		return Edges{}, false
	}
	var e Edges
	for s := range numSides {
		if !row[s].set {
			return Edges{}, false
		}
		e[s] = row[s].typ
	}
	return e, true
}

// Assign walks the adjacency list and fills the edge table so that every
// facing side pair is complementary. The pass is total and deterministic:
//
//   - Adjacencies are processed in a fixed order, sorted by the pair's
//     lexicographically smaller region id, then by that region's side.
//   - On a fresh pair, the region with the smaller id receives the tab and
//     its neighbor the blank. The choice is a pure function of the two ids,
//     so re-running on the same input reproduces the same puzzle.
//   - If one side was already set through an earlier adjacency, the other
//     side gets its complement.
//   - If both are somehow set, they are verified rather than rewritten; a
//     conflict is an EDGE_MISMATCH, which indicates a resolver or assigner
//     bug, not bad input.
//
// After all adjacencies are processed, every remaining unset side is a
// boundary and becomes flat.
func Assign(regions []Region, adjacencies []Adjacency) (*Assignment, error) {
	a := newAssignment(regions)

	ordered := make([]Adjacency, len(adjacencies))
	copy(ordered, adjacencies)
	slices.SortFunc(ordered, func(x, y Adjacency) int {
		if c := strings.Compare(lesserID(x), lesserID(y)); c != 0 {
			return c
		}
		if c := int(lesserSide(x)) - int(lesserSide(y)); c != 0 {
			return c
		}
		return strings.Compare(greaterID(x), greaterID(y))
	})

	for _, adj := range ordered {
		typeA, okA := a.at(adj.A, adj.SideA)
		typeB, okB := a.at(adj.B, adj.SideB)

		switch {
		case okA && okB:
			if typeA.Complement() != typeB || typeA == EdgeFlat {
				return nil, errors.New(errors.ErrCodeEdgeMismatch,
					"regions %q/%q already assigned %s/%s on facing sides %s/%s",
					adj.A, adj.B, typeA, typeB, adj.SideA, adj.SideB)
			}

		case okA:
			if typeA == EdgeFlat {
				return nil, errors.New(errors.ErrCodeEdgeMismatch,
					"region %q is flat on %s but faces %q", adj.A, adj.SideA, adj.B)
			}
			if err := a.set(adj.B, adj.SideB, typeA.Complement()); err != nil {
				return nil, err
			}

		case okB:
			if typeB == EdgeFlat {
				return nil, errors.New(errors.ErrCodeEdgeMismatch,
					"region %q is flat on %s but faces %q", adj.B, adj.SideB, adj.A)
			}
			if err := a.set(adj.A, adj.SideA, typeB.Complement()); err != nil {
				return nil, err
			}

		default:
			// Fresh pair: smaller id gets the tab.
			tabID, tabSide, blankID, blankSide := adj.A, adj.SideA, adj.B, adj.SideB
			if adj.B < adj.A {
				tabID, tabSide, blankID, blankSide = adj.B, adj.SideB, adj.A, adj.SideA
			}
			if err := a.set(tabID, tabSide, EdgeTab); err != nil {
				return nil, err
			}
			if err := a.set(blankID, blankSide, EdgeBlank); err != nil {
				return nil, err
			}
		}
	}

	// Boundary pass: anything still unset has no neighbor.
	for _, row := range a.slots {
		for s := range numSides {
			if !row[s].set {
				row[s] = slot{set: true, typ: EdgeFlat}
			}
		}
	}

	return a, nil
}

// Verify re-checks the completed assignment against the adjacency list and
// the region table. It is cheap (one linear scan) and runs unconditionally
// before pieces are handed downstream: the renderer and the physical-fit
// logic both rely on complementarity without re-checking it.
//
// Verified properties:
//   - every facing side pair is one tab and one blank, never flat;
//   - every side without a resolved neighbor is flat.
func Verify(regions []Region, adjacencies []Adjacency, a *Assignment) error {
	neighbored := make(map[string][numSides]bool, len(regions))
	for _, adj := range adjacencies {
		typeA, okA := a.at(adj.A, adj.SideA)
		typeB, okB := a.at(adj.B, adj.SideB)
		if !okA || !okB {
			return errors.New(errors.ErrCodeEdgeMismatch,
				"adjacency %q/%q has an unset side after assignment", adj.A, adj.B)
		}
		if typeA == EdgeFlat || typeB == EdgeFlat || typeA.Complement() != typeB {
			return errors.New(errors.ErrCodeEdgeMismatch,
				"facing sides %q.%s=%s and %q.%s=%s are not complementary",
				adj.A, adj.SideA, typeA, adj.B, adj.SideB, typeB)
		}

		marks := neighbored[adj.A]
		marks[adj.SideA] = true
		neighbored[adj.A] = marks
		marks = neighbored[adj.B]
		marks[adj.SideB] = true
		neighbored[adj.B] = marks
	}

	for _, r := range regions {
		edges, ok := a.Edges(r.ID)
		if !ok {
			return errors.New(errors.ErrCodeEdgeMismatch, "region %q has unset sides after assignment", r.ID)
		}
		marks := neighbored[r.ID]
		for s := range numSides {
			if !marks[s] && edges[s] != EdgeFlat {
				return errors.New(errors.ErrCodeEdgeMismatch,
					"boundary side %s of region %q is %s, expected flat", Side(s), r.ID, edges[s])
			}
		}
	}
	return nil
}

func lesserID(a Adjacency) string {
	if a.B < a.A {
		return a.B
	}
	return a.A
}

func greaterID(a Adjacency) string {
	if a.B < a.A {
		return a.A
	}
	return a.B
}

func lesserSide(a Adjacency) Side {
	if a.B < a.A {
		return a.SideB
	}
	return a.SideA
}
