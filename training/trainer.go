package training

import (
	"context"
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/dataset"
	"profile-lab/domain"
	"profile-lab/errors"

	"github.com/go-playground/validator/v10"
)

type Options struct {
	TestRatio float64        `validate:"gt=0,lt=1"`
	Seed      int64          `validate:"gte=0"`
	CVFolds   int            `validate:"eq=0|gte=2"`
	Boost     ai.BoostParams `validate:"-"`
}

func DefaultOptions() Options {
	return Options{TestRatio: 0.2, Seed: 42, Boost: ai.DefaultBoostParams()}
}

// Metrics is everything a training run reports besides the artifacts themselves.
type Metrics struct {
	Report          ai.Report
	ScalePosWeight  float64
	TrainSize       int
	TestSize        int
	Importance      []ai.FeatureImportance
	CrossValidation *CrossValidation
}

type Trainer struct {
	log     *slog.Logger
	options Options
}

func NewTrainer(log *slog.Logger, options Options) (*Trainer, error) {
	if err := validator.New().Struct(options); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return &Trainer{log: log, options: options}, nil
}

// Train splits the dataset, fits the boosted trees with the class imbalance corrected
// on the training side only, and evaluates on the held-out rows. Nothing is returned
// unless every step succeeded.
func (t *Trainer) Train(ctx context.Context, ds dataset.Dataset, vectorizer *ai.TfidfVectorizer) (ai.Artifacts, Metrics, error) {
	if ds.Len() == 0 {
		return ai.Artifacts{}, Metrics{}, errors.ErrTrainingDataEmpty
	}
	split, err := StratifiedSplit(ds.Labels, t.options.TestRatio, t.options.Seed)
	if err != nil {
		return ai.Artifacts{}, Metrics{}, err
	}
	train, test := ds.Subset(split.Train), ds.Subset(split.Test)

	params := t.options.Boost
	params.ScalePosWeight, err = ScalePosWeight(train.Labels)
	if err != nil {
		return ai.Artifacts{}, Metrics{}, err
	}
	t.log.Info("Training classifier",
		"train", train.Len(),
		"test", test.Len(),
		"scale_pos_weight", params.ScalePosWeight,
		"rounds", params.Rounds,
		"max_depth", params.MaxDepth)

	model, err := ai.FitBoostedTrees(ctx, train.Rows, train.Labels, params)
	if err != nil {
		return ai.Artifacts{}, Metrics{}, fmt.Errorf("unable to fit classifier: %w", err)
	}
	report, err := evaluate(model, test)
	if err != nil {
		return ai.Artifacts{}, Metrics{}, fmt.Errorf("unable to evaluate classifier: %w", err)
	}
	metrics := Metrics{
		Report:         report,
		ScalePosWeight: params.ScalePosWeight,
		TrainSize:      train.Len(),
		TestSize:       test.Len(),
		Importance:     model.Importance(ds.Columns),
	}

	if t.options.CVFolds > 0 {
		cv, err := CrossValidate(ctx, ds, t.options.CVFolds, t.options.Seed, t.options.Boost)
		if err != nil {
			return ai.Artifacts{}, Metrics{}, fmt.Errorf("cross validation failed: %w", err)
		}
		metrics.CrossValidation = &cv
	}

	t.log.Info("Classifier evaluated",
		"accuracy", report.Accuracy,
		"fake_f1", report.Fake.F1,
		"real_f1", report.Real.F1)
	return ai.NewArtifacts(model, vectorizer, ds.Columns, &metrics.Report), metrics, nil
}

// ScalePosWeight is count(real)/count(fake), the weight applied to every fake row.
func ScalePosWeight(labels []domain.Label) (float64, error) {
	var real, fake int
	for _, l := range labels {
		if l == domain.LabelFake {
			fake++
		} else {
			real++
		}
	}
	if real == 0 || fake == 0 {
		return 0, fmt.Errorf("%w: %d real and %d fake rows", errors.ErrSingleClass, real, fake)
	}
	return float64(real) / float64(fake), nil
}

func evaluate(classifier ai.Classifier, test dataset.Dataset) (ai.Report, error) {
	predicted := make([]domain.Label, test.Len())
	for i, row := range test.Rows {
		label, err := classifier.Predict(row)
		if err != nil {
			return ai.Report{}, err
		}
		predicted[i] = label
	}
	return ai.Evaluate(test.Labels, predicted), nil
}
