package internal

import (
	"profile-lab/dataset"
	"profile-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	config, err := LoadConfig()
	req.NoError(err)

	req.Equal("INFO", config.LogLevel)
	req.Equal(BackendFile, config.ArtifactBackend)
	req.Equal(100, config.MaxFeatures)
	req.InDelta(0.2, config.TestRatio, 1e-12)
	req.Equal(int64(42), config.RandomSeed)

	policy, err := config.Policy()
	req.NoError(err)
	req.Equal(dataset.UnknownExclude, policy)

	options := config.TrainingOptions()
	req.Equal(100, options.Boost.Rounds)
	req.Equal(6, options.Boost.MaxDepth)
	req.InDelta(0.3, options.Boost.LearningRate, 1e-12)
	req.Zero(options.CVFolds)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("ARTIFACT_BACKEND", "badger")
	t.Setenv("BADGER_FILEPATH", "/tmp/profile-lab")
	t.Setenv("UNKNOWN_LABEL_POLICY", "fake")
	t.Setenv("MAX_FEATURES", "50")
	t.Setenv("CV_FOLDS", "5")

	config, err := LoadConfig()
	req.NoError(err)
	req.Equal(BackendBadger, config.ArtifactBackend)
	req.Equal(50, config.MaxFeatures)
	req.Equal(5, config.TrainingOptions().CVFolds)
	policy, err := config.Policy()
	req.NoError(err)
	req.Equal(dataset.UnknownAsFake, policy)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown backend", env: map[string]string{"ARTIFACT_BACKEND": "s3"}},
		{name: "Badger without path", env: map[string]string{"ARTIFACT_BACKEND": "badger"}},
		{name: "Unknown policy", env: map[string]string{"UNKNOWN_LABEL_POLICY": "maybe"}},
		{name: "Ratio out of range", env: map[string]string{"TEST_RATIO": "1.5"}},
		{name: "Single fold", env: map[string]string{"CV_FOLDS": "1"}},
		{name: "No regularization", env: map[string]string{"LAMBDA": "0", "MIN_CHILD_WEIGHT": "0"}},
		{name: "Not a number", env: map[string]string{"MAX_FEATURES": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			req.ErrorIs(err, errors.ErrInvalidConfig)
		})
	}
}
