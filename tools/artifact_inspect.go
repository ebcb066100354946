package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"profile-lab/ai"
	"profile-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	backend := flag.String("backend", "file", "artifact backend: file or badger")
	dir := flag.String("dir", "./artifacts", "artifact directory of the file backend")
	dbPath := flag.String("db", "", "path to badger DB")
	top := flag.Int("top", 20, "number of importance rows")
	flag.Parse()

	logger := logs.GetLoggerFromLevel(slog.LevelWarn)

	var repository repositories.IArtifactRepository
	var versions int
	switch *backend {
	case "badger":
		db, err := badger.Open(badger.DefaultOptions(*dbPath).
			WithReadOnly(true).
			WithLogger(nil).
			WithBypassLockGuard(true))
		if err != nil {
			log.Fatal("Error while opening Badger: ", err)
		}
		defer db.Close()
		badgerRepository := repositories.NewBadgerArtifactRepository(db, logger)
		ids, err := badgerRepository.ListVersions()
		if err != nil {
			log.Fatal(err)
		}
		versions = len(ids)
		repository = badgerRepository
	default:
		repository = repositories.NewFileArtifactRepository(*dir, logger)
	}

	artifacts, err := repository.Load()
	if err != nil {
		log.Fatal(err)
	}

	summary := newTable()
	summary.SetHeader([]string{"Field", "Value"})
	summary.Append([]string{"ID", artifacts.ID.String()})
	summary.Append([]string{"Created", artifacts.CreatedAt.Format("2006-01-02 15:04:05")})
	summary.Append([]string{"Classifier", artifacts.Classifier.Kind()})
	summary.Append([]string{"Features", fmt.Sprint(len(artifacts.FeatureNames))})
	summary.Append([]string{"Vocabulary", fmt.Sprint(artifacts.Vectorizer.Size())})
	summary.Append([]string{"Fingerprint", artifacts.Vectorizer.Fingerprint()})
	if versions > 0 {
		summary.Append([]string{"Stored versions", fmt.Sprint(versions)})
	}
	if r := artifacts.Report; r != nil {
		summary.Append([]string{"Accuracy", fmt.Sprintf("%.4f", r.Accuracy)})
		summary.Append([]string{"Fake F1", fmt.Sprintf("%.4f", r.Fake.F1)})
	}
	summary.Render()

	if model, ok := artifacts.Classifier.(*ai.BoostedTrees); ok {
		fmt.Println()
		importance := newTable()
		importance.SetHeader([]string{"Feature", "Gain"})
		ranked := model.Importance(artifacts.FeatureNames)
		for _, fi := range ranked[:min(*top, len(ranked))] {
			importance.Append([]string{fi.Feature, fmt.Sprintf("%.4f", fi.Gain)})
		}
		importance.Render()
	}
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
