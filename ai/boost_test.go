package ai

import (
	"context"
	"encoding/json"
	"math"
	"profile-lab/domain"
	"profile-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// separable has fake rows with a low first column and a high second one.
func separable() ([][]float64, []domain.Label) {
	var rows [][]float64
	var labels []domain.Label
	for i := 0; i < 30; i++ {
		rows = append(rows, []float64{float64(100 + i), float64(i % 3)})
		labels = append(labels, domain.LabelReal)
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, []float64{float64(i), float64(50 + i)})
		labels = append(labels, domain.LabelFake)
	}
	return rows, labels
}

func TestFitBoostedTrees_Separable(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 20
	params.ScalePosWeight = 3

	model, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)
	req.Len(model.Trees, 20)
	req.Equal(2, model.NumFeatures())
	req.NoError(model.Validate())

	for i, row := range rows {
		label, err := model.Predict(row)
		req.NoError(err)
		req.Equal(labels[i], label, "row %d", i)

		proba, err := model.PredictProba(row)
		req.NoError(err)
		req.InDelta(1.0, proba[0]+proba[1], 1e-12)
	}

	fake, err := model.PredictProba([]float64{3, 55})
	req.NoError(err)
	req.Greater(fake[1], 0.8)
}

func TestFitBoostedTrees_Deterministic(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 5

	a, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)
	b, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)
	req.Equal(a, b)
}

func TestFitBoostedTrees_Errors(t *testing.T) {
	req := require.New(t)

	_, err := FitBoostedTrees(context.Background(), nil, nil, DefaultBoostParams())
	req.ErrorIs(err, errors.ErrTrainingDataEmpty)

	_, err = FitBoostedTrees(context.Background(), [][]float64{{1}, {1, 2}}, []domain.Label{0, 1}, DefaultBoostParams())
	req.Error(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, labels := separable()
	_, err = FitBoostedTrees(ctx, rows, labels, DefaultBoostParams())
	req.ErrorIs(err, context.Canceled)
}

func TestBoostedTrees_WrongRowLength(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 2
	model, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)

	_, err = model.PredictProba([]float64{1, 2, 3})
	req.ErrorIs(err, errors.ErrVectorizerMismatch)
}

func TestBoostedTrees_JSONRoundTrip(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 10
	model, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)

	data, err := json.Marshal(model)
	req.NoError(err)
	var decoded BoostedTrees
	req.NoError(json.Unmarshal(data, &decoded))
	req.NoError(decoded.Validate())

	for _, row := range rows {
		want, err := model.Margin(row)
		req.NoError(err)
		got, err := decoded.Margin(row)
		req.NoError(err)
		req.Equal(want, got)
	}
}

func TestFitBoostedTrees_SaturatedWithoutRegularization(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 300
	params.Lambda = 0
	params.MinChildWeight = 0

	model, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)
	for _, tree := range model.Trees {
		for _, node := range tree.Nodes {
			req.False(math.IsNaN(node.Value) || math.IsInf(node.Value, 0))
		}
	}
	for _, gain := range model.Gain {
		req.False(math.IsNaN(gain) || math.IsInf(gain, 0))
	}
	_, err = json.Marshal(model)
	req.NoError(err)

	for i, row := range rows {
		label, err := model.Predict(row)
		req.NoError(err)
		req.Equal(labels[i], label)
	}
}

func TestBoostedTrees_Validate(t *testing.T) {
	tests := []struct {
		name  string
		model BoostedTrees
	}{
		{name: "Wrong version", model: BoostedTrees{Version: 9, NumFeature: 1}},
		{name: "No features", model: BoostedTrees{Version: BoostFormatVersion}},
		{name: "Empty tree", model: BoostedTrees{Version: BoostFormatVersion, NumFeature: 1, Trees: []Tree{{}}}},
		{
			name: "Unknown feature",
			model: BoostedTrees{Version: BoostFormatVersion, NumFeature: 1, Trees: []Tree{{Nodes: []TreeNode{
				{Feature: 4, Left: 1, Right: 2}, {Leaf: true}, {Leaf: true},
			}}}},
		},
		{
			name: "Cycle",
			model: BoostedTrees{Version: BoostFormatVersion, NumFeature: 1, Trees: []Tree{{Nodes: []TreeNode{
				{Feature: 0, Left: 0, Right: 1}, {Leaf: true},
			}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Error(tt.model.Validate())
		})
	}
}

func TestBoostedTrees_Importance(t *testing.T) {
	req := require.New(t)
	rows, labels := separable()
	params := DefaultBoostParams()
	params.Rounds = 5
	model, err := FitBoostedTrees(context.Background(), rows, labels, params)
	req.NoError(err)

	ranked := model.Importance([]string{"followers", "following"})
	req.NotEmpty(ranked)
	for i := 1; i < len(ranked); i++ {
		req.GreaterOrEqual(ranked[i-1].Gain, ranked[i].Gain)
	}
	req.Contains([]string{"followers", "following"}, ranked[0].Feature)
}
