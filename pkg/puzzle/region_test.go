package puzzle

import (
	"encoding/json"
	"testing"
)

func TestSideOpposite(t *testing.T) {
	pairs := map[Side]Side{
		SideTop:    SideBottom,
		SideRight:  SideLeft,
		SideBottom: SideTop,
		SideLeft:   SideRight,
	}
	for s, want := range pairs {
		if got := s.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", s, got, want)
		}
	}
}

func TestEdgeTypeComplement(t *testing.T) {
	if got := EdgeTab.Complement(); got != EdgeBlank {
		t.Errorf("tab complement = %s, want blank", got)
	}
	if got := EdgeBlank.Complement(); got != EdgeTab {
		t.Errorf("blank complement = %s, want tab", got)
	}
	if got := EdgeFlat.Complement(); got != EdgeFlat {
		t.Errorf("flat complement = %s, want flat", got)
	}
}

func TestEdgeTypeJSON(t *testing.T) {
	data, err := json.Marshal(Edges{EdgeFlat, EdgeTab, EdgeBlank, EdgeFlat})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["flat","tab","blank","flat"]`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var e Edges
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e != (Edges{EdgeFlat, EdgeTab, EdgeBlank, EdgeFlat}) {
		t.Errorf("round trip = %v", e)
	}

	if err := json.Unmarshal([]byte(`["bump"]`), &e); err == nil {
		t.Error("expected error for unknown edge type name")
	}
}

func TestRegionEdgeCoordinates(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 100, Height: 60}
	if got := r.Right(); got != 110 {
		t.Errorf("Right = %d, want 110", got)
	}
	if got := r.Bottom(); got != 80 {
		t.Errorf("Bottom = %d, want 80", got)
	}
}
