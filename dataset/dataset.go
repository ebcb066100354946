package dataset

import (
	"profile-lab/domain"
	"slices"
)

// Dataset is an aligned feature matrix with its labels, all rows share Columns.
// It is built once per training run and only read afterwards.
type Dataset struct {
	Columns   []string
	Rows      [][]float64
	Labels    []domain.Label
	Usernames []string
}

func (d Dataset) Len() int {
	return len(d.Rows)
}

// Counts returns the number of real and fake rows.
func (d Dataset) Counts() (real, fake int) {
	for _, l := range d.Labels {
		if l == domain.LabelFake {
			fake++
		} else {
			real++
		}
	}
	return real, fake
}

// Subset shares row storage with the receiver; rows must not be modified.
func (d Dataset) Subset(indices []int) Dataset {
	sub := Dataset{
		Columns:   slices.Clone(d.Columns),
		Rows:      make([][]float64, len(indices)),
		Labels:    make([]domain.Label, len(indices)),
		Usernames: make([]string, len(indices)),
	}
	for i, idx := range indices {
		sub.Rows[i] = d.Rows[idx]
		sub.Labels[i] = d.Labels[idx]
		if idx < len(d.Usernames) {
			sub.Usernames[i] = d.Usernames[idx]
		}
	}
	return sub
}
