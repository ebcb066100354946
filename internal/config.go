package internal

import (
	"fmt"
	"profile-lab/ai"
	"profile-lab/dataset"
	"profile-lab/errors"
	"profile-lab/training"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

type Config struct {
	LogLevel           string  `env:"LOG_LEVEL,default=INFO"`
	CorpusDir          string  `env:"CORPUS_DIR,default=./data"`
	ArtifactDir        string  `env:"ARTIFACT_DIR,default=./artifacts" validate:"required_if=ArtifactBackend file"`
	ArtifactBackend    string  `env:"ARTIFACT_BACKEND,default=file" validate:"oneof=file badger"`
	BadgerFilepath     string  `env:"BADGER_FILEPATH" validate:"required_if=ArtifactBackend badger"`
	MaxFeatures        int     `env:"MAX_FEATURES,default=100" validate:"gt=0"`
	TestRatio          float64 `env:"TEST_RATIO,default=0.2" validate:"gt=0,lt=1"`
	RandomSeed         int64   `env:"RANDOM_SEED,default=42" validate:"gte=0"`
	UnknownLabelPolicy string  `env:"UNKNOWN_LABEL_POLICY,default=exclude" validate:"oneof=exclude real fake"`
	BoostRounds        int     `env:"BOOST_ROUNDS,default=100" validate:"gt=0"`
	MaxDepth           int     `env:"MAX_DEPTH,default=6" validate:"gt=0,lte=32"`
	LearningRate       float64 `env:"LEARNING_RATE,default=0.3" validate:"gt=0,lte=1"`
	MinChildWeight     float64 `env:"MIN_CHILD_WEIGHT,default=1" validate:"gte=0"`
	Lambda             float64 `env:"LAMBDA,default=1" validate:"gt=0"`
	CVFolds            int     `env:"CV_FOLDS,default=0" validate:"eq=0|gte=2"`
}

// LoadConfig reads an optional .env file, then the environment, then validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Policy() (dataset.UnknownPolicy, error) {
	return dataset.ParseUnknownPolicy(c.UnknownLabelPolicy)
}

func (c Config) TrainingOptions() training.Options {
	return training.Options{
		TestRatio: c.TestRatio,
		Seed:      c.RandomSeed,
		CVFolds:   c.CVFolds,
		Boost: ai.BoostParams{
			Rounds:         c.BoostRounds,
			MaxDepth:       c.MaxDepth,
			LearningRate:   c.LearningRate,
			Lambda:         c.Lambda,
			MinChildWeight: c.MinChildWeight,
			ScalePosWeight: 1,
		},
	}
}
