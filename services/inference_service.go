package services

import (
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/domain"
	"profile-lab/errors"
	"profile-lab/features"
	"profile-lab/ingestion"
	"profile-lab/repositories"
)

// FallbackConfidence is reported when the classifier gives a hard class without probabilities.
const FallbackConfidence = 100.0

type IInferenceService interface {
	Predict(artifacts *ai.Artifacts, record domain.ProfileRecord) (domain.Prediction, error)
}

// InferenceService scores single records against loaded artifacts. It holds no
// per-call state and can be shared between goroutines.
type InferenceService struct {
	log       *slog.Logger
	extractor *features.Extractor
}

func NewInferenceService(log *slog.Logger, extractor *features.Extractor) *InferenceService {
	return &InferenceService{log: log, extractor: extractor}
}

// LoadArtifacts reads the current artifacts from a repository.
func LoadArtifacts(repository repositories.IArtifactRepository) (*ai.Artifacts, error) {
	artifacts, err := repository.Load()
	if err != nil {
		return nil, err
	}
	return &artifacts, nil
}

// PredictRaw parses a scraped payload and scores it.
func (s *InferenceService) PredictRaw(artifacts *ai.Artifacts, payload []byte) (domain.Prediction, error) {
	record, err := ingestion.Parse(payload)
	if err != nil {
		return domain.Prediction{}, err
	}
	return s.Predict(artifacts, record)
}

// Predict extracts the features of record exactly as training did, aligns them on the
// classifier's column order and scores the row. Confidence is 100*max(P) when the
// classifier exposes probabilities, FallbackConfidence otherwise.
func (s *InferenceService) Predict(artifacts *ai.Artifacts, record domain.ProfileRecord) (prediction domain.Prediction, err error) {
	if artifacts == nil || artifacts.Classifier == nil || artifacts.Vectorizer == nil {
		return domain.Prediction{}, errors.ErrArtifactUnavailable
	}
	if len(artifacts.FeatureNames) != artifacts.Classifier.NumFeatures() {
		return domain.Prediction{}, fmt.Errorf("%w: %d feature names for a classifier of %d features",
			errors.ErrVectorizerMismatch, len(artifacts.FeatureNames), artifacts.Classifier.NumFeatures())
	}
	defer func() {
		if r := recover(); r != nil {
			prediction = domain.Prediction{}
			err = fmt.Errorf("%w: %v", errors.ErrPredictionFailure, r)
		}
	}()

	vector := s.extractor.ExtractWithText(record, artifacts.Vectorizer)
	aligned := features.Reindex(vector, artifacts.FeatureNames)
	if !aligned.Exact() {
		s.log.Debug("Feature columns realigned",
			"username", record.Username,
			"filled", aligned.Filled,
			"dropped", aligned.Dropped)
	}

	if proba, ok := artifacts.Classifier.(ai.ProbabilisticClassifier); ok {
		p, err := proba.PredictProba(aligned.Row)
		if err != nil {
			return domain.Prediction{}, fmt.Errorf("%w: %w", errors.ErrPredictionFailure, err)
		}
		label := domain.LabelReal
		if p[domain.LabelFake] > p[domain.LabelReal] {
			label = domain.LabelFake
		}
		return domain.Prediction{Label: label, Confidence: 100 * max(p[0], p[1]), HasProbability: true}, nil
	}

	label, err := artifacts.Classifier.Predict(aligned.Row)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %w", errors.ErrPredictionFailure, err)
	}
	return domain.Prediction{Label: label, Confidence: FallbackConfidence}, nil
}
