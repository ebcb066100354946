package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"profile-lab/ai"
	"profile-lab/domain"
	"profile-lab/errors"
	"profile-lab/features"
	"profile-lab/ingestion"
	"profile-lab/internal"
	"profile-lab/services"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitRetrain = 4
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prediction terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run scores one scraped profile read from -profile (or stdin) and prints the JSON result.
func run() (int, error) {
	profilePath := flag.String("profile", "-", "scraped profile JSON file, - for stdin")
	plain := flag.Bool("plain", false, "print only the JSON result")
	flag.Parse()

	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	payload, err := readPayload(*profilePath)
	if err != nil {
		return exitRuntime, err
	}
	record, err := ingestion.Parse(payload)
	if err != nil {
		return exitRuntime, err
	}

	repository, closeRepository, err := internal.OpenArtifactRepository(config, log)
	if err != nil {
		return exitRuntime, err
	}
	defer closeRepository()

	artifacts, err := services.LoadArtifacts(repository)
	if err != nil {
		if errors.IsRetrainNeeded(err) {
			return exitRetrain, err
		}
		return exitRuntime, err
	}

	extractor, err := features.NewExtractor(ai.NewNormalizer())
	if err != nil {
		return exitRuntime, err
	}
	prediction, err := services.NewInferenceService(log, extractor).Predict(artifacts, record)
	if err != nil {
		if errors.IsRetrainNeeded(err) {
			return exitRetrain, err
		}
		return exitRuntime, err
	}

	result := prediction.ToResult(record.Username)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return exitRuntime, err
	}
	fmt.Println(string(out))
	if !*plain {
		fmt.Println(verdict(prediction, result.ConfidencePercent))
	}
	return exitOK, nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func verdict(p domain.Prediction, confidence string) string {
	text := fmt.Sprintf(" %s (%s%%) ", p.Label, confidence)
	if p.Label == domain.LabelFake {
		return color.New(color.BgBlack, color.FgRed).Render(text)
	}
	return color.New(color.BgBlack, color.FgGreen).Render(text)
}
