package training

import (
	"fmt"
	"math"
	"math/rand"
	"profile-lab/domain"
	"profile-lab/errors"
	"sort"
)

// Split holds row indices into the dataset it was computed from.
type Split struct {
	Train []int
	Test  []int
}

// StratifiedSplit holds out round(ratio*n) rows of every class, keeping at least one
// row of each class on both sides. The same seed always yields the same split.
func StratifiedSplit(labels []domain.Label, ratio float64, seed int64) (Split, error) {
	if ratio <= 0 || ratio >= 1 {
		return Split{}, fmt.Errorf("%w: test ratio %v must be in (0,1)", errors.ErrInvalidConfig, ratio)
	}
	rng := rand.New(rand.NewSource(seed))
	var split Split
	for _, class := range byClass(labels) {
		if len(class.rows) < 2 {
			return Split{}, fmt.Errorf("%w: class %s has %d rows, a split needs at least 2",
				errors.ErrSingleClass, class.label, len(class.rows))
		}
		rng.Shuffle(len(class.rows), func(i, j int) { class.rows[i], class.rows[j] = class.rows[j], class.rows[i] })
		nTest := int(math.Round(ratio * float64(len(class.rows))))
		nTest = min(max(nTest, 1), len(class.rows)-1)
		split.Test = append(split.Test, class.rows[:nTest]...)
		split.Train = append(split.Train, class.rows[nTest:]...)
	}
	sort.Ints(split.Train)
	sort.Ints(split.Test)
	return split, nil
}

// StratifiedKFold deals every class round-robin over k folds after a seeded shuffle.
// Fold i tests on its own rows and trains on all the others.
func StratifiedKFold(labels []domain.Label, k int, seed int64) ([]Split, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: %d folds, at least 2 required", errors.ErrInvalidConfig, k)
	}
	rng := rand.New(rand.NewSource(seed))
	foldOf := make([]int, len(labels))
	for _, class := range byClass(labels) {
		if len(class.rows) < k {
			return nil, fmt.Errorf("%w: class %s has %d rows for %d folds",
				errors.ErrSingleClass, class.label, len(class.rows), k)
		}
		rng.Shuffle(len(class.rows), func(i, j int) { class.rows[i], class.rows[j] = class.rows[j], class.rows[i] })
		for pos, row := range class.rows {
			foldOf[row] = pos % k
		}
	}
	folds := make([]Split, k)
	for row, fold := range foldOf {
		for i := range folds {
			if i == fold {
				folds[i].Test = append(folds[i].Test, row)
			} else {
				folds[i].Train = append(folds[i].Train, row)
			}
		}
	}
	return folds, nil
}

type classRows struct {
	label domain.Label
	rows  []int
}

// byClass always returns both classes in label order, an absent class has no rows.
func byClass(labels []domain.Label) []classRows {
	classes := []classRows{{label: domain.LabelReal}, {label: domain.LabelFake}}
	for i, l := range labels {
		if l == domain.LabelFake {
			classes[1].rows = append(classes[1].rows, i)
		} else {
			classes[0].rows = append(classes[0].rows, i)
		}
	}
	return classes
}
