package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"profile-lab/ai"
	"profile-lab/dataset"
	"profile-lab/errors"
	"profile-lab/features"
	"profile-lab/internal"
	"profile-lab/observability"
	"profile-lab/services"
	"profile-lab/training"
	"syscall"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitData    = 3
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run loads the corpus, trains and persists the artifacts, then prints the evaluation report.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	policy, err := config.Policy()
	if err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Artifact storage
	repository, closeRepository, err := internal.OpenArtifactRepository(config, log)
	if err != nil {
		return exitRuntime, err
	}
	defer closeRepository()

	// 3. Pipeline
	extractor, err := features.NewExtractor(ai.NewNormalizer())
	if err != nil {
		return exitRuntime, err
	}
	trainer, err := training.NewTrainer(log, config.TrainingOptions())
	if err != nil {
		return exitConfig, err
	}
	monitor := observability.NewRunMonitor(log)
	builder := dataset.NewBuilder(log, extractor, config.MaxFeatures, policy)
	service := services.NewTrainingService(log, builder, trainer, repository, monitor)

	// 4. Corpus
	done := monitor.Stage("load")
	records, _, err := dataset.LoadCorpus(log, config.CorpusDir)
	done()
	if err != nil {
		return exitData, err
	}
	stats := dataset.ComputeStats(records)
	log.Info("Corpus statistics",
		"total", stats.Total,
		"real", stats.Labels["real"],
		"fake", stats.Labels["fake"],
		"unknown", stats.Labels["unknown"],
		"empty_bios", stats.EmptyBios)
	if len(stats.Languages) > 0 {
		log.Info("Dominant bio language", "lang", stats.Languages[0].Lang, "count", stats.Languages[0].Count)
	}

	// 5. Train
	artifacts, metrics, err := service.Run(ctx, records)
	if err != nil {
		if stderrors.Is(err, errors.ErrTrainingDataEmpty) || stderrors.Is(err, errors.ErrSingleClass) {
			return exitData, err
		}
		return exitRuntime, err
	}
	monitor.LogSummary()

	fmt.Printf("Artifacts %s\n\n", artifacts.ID)
	training.WriteReport(os.Stdout, metrics, 15)
	return exitOK, nil
}
