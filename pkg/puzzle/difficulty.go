package puzzle

// Difficulty is a coarse per-piece placement difficulty indicator for the
// consuming game layer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Classify rates a piece by its edge mix and silhouette complexity. Corner
// and border pieces (two or more flat sides) are easy to place; fully
// interior pieces whose silhouette deviates a lot from the bounding box
// are hard. The rating is a heuristic hint, not a gameplay guarantee.
func Classify(edges Edges, g Geometry, m *Mask) Difficulty {
	flats := 0
	for _, e := range edges {
		if e == EdgeFlat {
			flats++
		}
	}

	if flats >= 2 {
		return DifficultyEasy
	}

	if flats == 0 && m != nil {
		total := g.FinalWidth * g.FinalHeight
		if total > 0 && float64(m.OpaqueArea())/float64(total) < 0.75 {
			return DifficultyHard
		}
	}

	return DifficultyMedium
}
