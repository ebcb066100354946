package training

import (
	"context"
	"profile-lab/ai"
	"profile-lab/dataset"
)

// CrossValidation summarises per-fold scores of a stratified k-fold run.
type CrossValidation struct {
	Folds        int       `json:"folds"`
	Accuracy     []float64 `json:"accuracy"`
	FakeF1       []float64 `json:"fake_f1"`
	MeanAccuracy float64   `json:"mean_accuracy"`
	StdAccuracy  float64   `json:"std_accuracy"`
	MeanFakeF1   float64   `json:"mean_fake_f1"`
	StdFakeF1    float64   `json:"std_fake_f1"`
}

// CrossValidate refits the learner on every fold. The imbalance weight is recomputed
// from each fold's training rows.
func CrossValidate(ctx context.Context, ds dataset.Dataset, k int, seed int64, params ai.BoostParams) (CrossValidation, error) {
	folds, err := StratifiedKFold(ds.Labels, k, seed)
	if err != nil {
		return CrossValidation{}, err
	}
	cv := CrossValidation{Folds: k}
	for _, fold := range folds {
		train, test := ds.Subset(fold.Train), ds.Subset(fold.Test)
		foldParams := params
		if foldParams.ScalePosWeight, err = ScalePosWeight(train.Labels); err != nil {
			return CrossValidation{}, err
		}
		model, err := ai.FitBoostedTrees(ctx, train.Rows, train.Labels, foldParams)
		if err != nil {
			return CrossValidation{}, err
		}
		report, err := evaluate(model, test)
		if err != nil {
			return CrossValidation{}, err
		}
		cv.Accuracy = append(cv.Accuracy, report.Accuracy)
		cv.FakeF1 = append(cv.FakeF1, report.Fake.F1)
	}
	cv.MeanAccuracy, cv.StdAccuracy = ai.MeanStd(cv.Accuracy)
	cv.MeanFakeF1, cv.StdFakeF1 = ai.MeanStd(cv.FakeF1)
	return cv, nil
}
