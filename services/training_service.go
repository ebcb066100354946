package services

import (
	"context"
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/dataset"
	"profile-lab/domain"
	"profile-lab/observability"
	"profile-lab/repositories"
	"profile-lab/training"
)

type ITrainingService interface {
	Run(ctx context.Context, records []domain.ProfileRecord) (ai.Artifacts, training.Metrics, error)
}

// TrainingService builds the dataset, trains, and only then persists the artifacts.
// Any failure before Save leaves the previously saved artifacts in place.
type TrainingService struct {
	log        *slog.Logger
	builder    *dataset.Builder
	trainer    *training.Trainer
	repository repositories.IArtifactRepository
	monitor    *observability.RunMonitor
}

func NewTrainingService(
	log *slog.Logger,
	builder *dataset.Builder,
	trainer *training.Trainer,
	repository repositories.IArtifactRepository,
	monitor *observability.RunMonitor,
) *TrainingService {
	if monitor == nil {
		monitor = observability.NewRunMonitor(log)
	}
	return &TrainingService{log: log, builder: builder, trainer: trainer, repository: repository, monitor: monitor}
}

func (s *TrainingService) Run(ctx context.Context, records []domain.ProfileRecord) (ai.Artifacts, training.Metrics, error) {
	done := s.monitor.Stage("build")
	ds, vectorizer, err := s.builder.Build(records)
	done()
	if err != nil {
		return ai.Artifacts{}, training.Metrics{}, fmt.Errorf("dataset build failed: %w", err)
	}

	done = s.monitor.Stage("train")
	artifacts, metrics, err := s.trainer.Train(ctx, ds, vectorizer)
	done()
	if err != nil {
		return ai.Artifacts{}, training.Metrics{}, fmt.Errorf("training failed: %w", err)
	}

	done = s.monitor.Stage("persist")
	err = s.repository.Save(artifacts)
	done()
	if err != nil {
		return ai.Artifacts{}, training.Metrics{}, fmt.Errorf("unable to persist artifacts: %w", err)
	}
	s.log.Info("Training run completed", "artifact_id", artifacts.ID, "features", len(artifacts.FeatureNames))
	return artifacts, metrics, nil
}

func (s *TrainingService) Monitor() *observability.RunMonitor {
	return s.monitor
}
