package model

// Category is one of the four TKA alignment philosophies the questionnaire
// classifies toward. The set is closed and never extended at runtime.
type Category string

const (
	CategoryMechanical Category = "mechanical"
	CategoryAnatomic   Category = "anatomic"
	CategoryKinematic  Category = "kinematic"
	CategoryFunctional Category = "functional"
)

// Categories returns all categories in their fixed enumeration order.
// This order is the tie-break order for recommendations.
func Categories() []Category {
	return []Category{CategoryMechanical, CategoryAnatomic, CategoryKinematic, CategoryFunctional}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMechanical, CategoryAnatomic, CategoryKinematic, CategoryFunctional:
		return true
	}
	return false
}

// ScoreVector holds per-category points. Categories absent from the map
// contribute zero.
type ScoreVector map[Category]int

// NewScoreVector returns a vector with every known category present at zero.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, len(Categories()))
	for _, c := range Categories() {
		v[c] = 0
	}
	return v
}

// Add accumulates other into v, element-wise.
func (v ScoreVector) Add(other ScoreVector) {
	for c, pts := range other {
		v[c] += pts
	}
}

// Clone returns an independent copy of v.
func (v ScoreVector) Clone() ScoreVector {
	out := make(ScoreVector, len(v))
	for c, pts := range v {
		out[c] = pts
	}
	return out
}
