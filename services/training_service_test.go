package services

import (
	"context"
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/dataset"
	"profile-lab/domain"
	"profile-lab/errors"
	"profile-lab/features"
	"profile-lab/internal/fixtures"
	"profile-lab/mocks"
	"profile-lab/observability"
	"profile-lab/training"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTrainingService(t *testing.T, repository *mocks.MockIArtifactRepository) *TrainingService {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	extractor, err := features.NewExtractor(ai.NewNormalizer())
	require.NoError(t, err)
	options := training.DefaultOptions()
	options.Boost.Rounds = 5
	trainer, err := training.NewTrainer(log, options)
	require.NoError(t, err)
	builder := dataset.NewBuilder(log, extractor, 100, dataset.UnknownExclude)
	return NewTrainingService(log, builder, trainer, repository, observability.NewRunMonitor(log))
}

func TestTrainingService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("should persist the artifacts once training succeeded", func(t *testing.T) {
		req := require.New(t)
		repository := mocks.NewMockIArtifactRepository(ctrl)
		service := newTrainingService(t, repository)

		var saved ai.Artifacts
		repository.EXPECT().
			Save(gomock.Any()).
			DoAndReturn(func(a ai.Artifacts) error {
				saved = a
				return nil
			}).
			Times(1)

		artifacts, metrics, err := service.Run(context.Background(), fixtures.Corpus(42, 40, 12))
		req.NoError(err)
		req.Equal(artifacts.ID, saved.ID)
		req.NoError(saved.Validate())
		req.Positive(metrics.TestSize)

		stats := service.Monitor().Stats()
		req.Len(stats.Stages, 3)
		req.Equal("build", stats.Stages[0].Name)
		req.Equal("persist", stats.Stages[2].Name)
	})

	t.Run("should not persist anything when a class is missing", func(t *testing.T) {
		req := require.New(t)
		repository := mocks.NewMockIArtifactRepository(ctrl)
		service := newTrainingService(t, repository)

		repository.EXPECT().Save(gomock.Any()).Times(0)

		_, _, err := service.Run(context.Background(), fixtures.Corpus(42, 40, 0))
		req.ErrorIs(err, errors.ErrSingleClass)
	})

	t.Run("should not persist anything without labeled records", func(t *testing.T) {
		req := require.New(t)
		repository := mocks.NewMockIArtifactRepository(ctrl)
		service := newTrainingService(t, repository)

		repository.EXPECT().Save(gomock.Any()).Times(0)

		_, _, err := service.Run(context.Background(), []domain.ProfileRecord{{AccountLabel: domain.AccountUnknown}})
		req.ErrorIs(err, errors.ErrTrainingDataEmpty)
	})

	t.Run("should surface repository failures", func(t *testing.T) {
		req := require.New(t)
		repository := mocks.NewMockIArtifactRepository(ctrl)
		service := newTrainingService(t, repository)

		repository.EXPECT().Save(gomock.Any()).Return(fmt.Errorf("disk full")).Times(1)

		_, _, err := service.Run(context.Background(), fixtures.Corpus(42, 40, 12))
		req.ErrorContains(err, "disk full")
	})
}

func TestLoadArtifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := require.New(t)

	repository := mocks.NewMockIArtifactRepository(ctrl)
	repository.EXPECT().Load().Return(ai.Artifacts{}, errors.ErrArtifactUnavailable).Times(1)

	artifacts, err := LoadArtifacts(repository)
	req.Nil(artifacts)
	req.ErrorIs(err, errors.ErrArtifactUnavailable)
}
