package features

import (
	"profile-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReindex(t *testing.T) {
	order := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		vector  domain.FeatureVector
		row     []float64
		filled  []string
		dropped []string
	}{
		{
			name:   "Exact match in another order",
			vector: domain.FeatureVector{Names: []string{"c", "a", "b"}, Values: []float64{3, 1, 2}},
			row:    []float64{1, 2, 3},
		},
		{
			name:   "Missing column is filled with zero",
			vector: domain.FeatureVector{Names: []string{"a", "c"}, Values: []float64{1, 3}},
			row:    []float64{1, 0, 3},
			filled: []string{"b"},
		},
		{
			name:    "Extra column is dropped",
			vector:  domain.FeatureVector{Names: []string{"a", "b", "c", "x"}, Values: []float64{1, 2, 3, 9}},
			row:     []float64{1, 2, 3},
			dropped: []string{"x"},
		},
		{
			name:    "Empty vector",
			vector:  domain.FeatureVector{},
			row:     []float64{0, 0, 0},
			filled:  []string{"a", "b", "c"},
			dropped: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			aligned := Reindex(tt.vector, order)
			req.Equal(tt.row, aligned.Row)
			req.Equal(tt.filled, aligned.Filled)
			req.Equal(tt.dropped, aligned.Dropped)
			req.Equal(len(tt.filled) == 0 && len(tt.dropped) == 0, aligned.Exact())
		})
	}
}
