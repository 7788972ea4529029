package puzzle

import (
	"strings"
	"testing"
)

func TestOutlineAllFlat(t *testing.T) {
	r := Region{ID: "p", Width: 100, Height: 60}
	edges := Edges{EdgeFlat, EdgeFlat, EdgeFlat, EdgeFlat}
	g := ExtendWithRatio(r, edges, 0.15)

	got := Outline(r, edges, g)
	want := "M 0 0 L 100 0 L 100 60 L 0 60 L 0 0 Z"
	if got != want {
		t.Errorf("outline = %q, want %q", got, want)
	}
}

func TestOutlineTabArc(t *testing.T) {
	r := Region{ID: "p", Width: 100, Height: 100}
	edges := Edges{EdgeFlat, EdgeTab, EdgeFlat, EdgeFlat}
	g := ExtendWithRatio(r, edges, 0.15)

	got := Outline(r, edges, g)

	// The right side runs top to bottom through an arc straddling y=50.
	if !strings.Contains(got, "A 15 15 0 0 1 100 65") {
		t.Errorf("outline %q missing clockwise tab arc ending at (100,65)", got)
	}
	if !strings.Contains(got, "L 100 35") {
		t.Errorf("outline %q missing approach to arc start (100,35)", got)
	}
	if strings.Count(got, "A ") != 1 {
		t.Errorf("outline %q has %d arcs, want 1", got, strings.Count(got, "A "))
	}
}

func TestOutlineBlankReversesSweep(t *testing.T) {
	r := Region{ID: "p", Width: 100, Height: 100}
	edges := Edges{EdgeFlat, EdgeBlank, EdgeFlat, EdgeFlat}
	g := ExtendWithRatio(r, edges, 0.15)

	got := Outline(r, edges, g)
	if !strings.Contains(got, "A 15 15 0 0 0 ") {
		t.Errorf("outline %q missing counterclockwise blank arc", got)
	}
	if strings.Contains(got, "A 15 15 0 0 1 ") {
		t.Errorf("outline %q contains a clockwise arc, want only counterclockwise", got)
	}
}

func TestOutlineDegenerateFallsBackToLines(t *testing.T) {
	// Zero-size borders draw straight lines even for tab/blank edge types.
	r := Region{ID: "tiny", Width: 2, Height: 2}
	edges := Edges{EdgeTab, EdgeBlank, EdgeTab, EdgeBlank}
	g := ExtendWithRatio(r, edges, 0.15)

	got := Outline(r, edges, g)
	if strings.Contains(got, "A ") {
		t.Errorf("outline %q contains arcs, want straight lines for zero-size borders", got)
	}
}

func TestOutlineArcCountMatchesNonFlatSides(t *testing.T) {
	r := Region{ID: "p", X: 0, Y: 0, Width: 100, Height: 100}
	edges := Edges{EdgeTab, EdgeBlank, EdgeTab, EdgeBlank}
	g := ExtendWithRatio(r, edges, 0.15)

	got := Outline(r, edges, g)
	if n := strings.Count(got, "A "); n != 4 {
		t.Errorf("outline has %d arcs, want 4", n)
	}
	if !strings.HasSuffix(got, " Z") {
		t.Errorf("outline %q is not closed", got)
	}
}
