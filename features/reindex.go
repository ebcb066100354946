package features

import "profile-lab/domain"

// Alignment is a vector reindexed onto a classifier's column order.
// Filled lists expected columns absent from the vector (set to 0),
// Dropped lists vector columns the classifier does not know.
type Alignment struct {
	Row     []float64
	Filled  []string
	Dropped []string
}

func (a Alignment) Exact() bool {
	return len(a.Filled) == 0 && len(a.Dropped) == 0
}

// Reindex lays the vector out exactly as order. It never fails: schema drift
// between upstream data and a trained model is reported, not fatal.
func Reindex(v domain.FeatureVector, order []string) Alignment {
	index := make(map[string]int, len(v.Names))
	for i, name := range v.Names {
		index[name] = i
	}
	expected := make(map[string]bool, len(order))
	row := make([]float64, len(order))
	var filled []string
	for i, name := range order {
		expected[name] = true
		if j, ok := index[name]; ok {
			row[i] = v.Values[j]
			continue
		}
		filled = append(filled, name)
	}
	var dropped []string
	for _, name := range v.Names {
		if !expected[name] {
			dropped = append(dropped, name)
		}
	}
	return Alignment{Row: row, Filled: filled, Dropped: dropped}
}
