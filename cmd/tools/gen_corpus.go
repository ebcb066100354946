package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"profile-lab/internal/fixtures"
)

// Writes a synthetic labeled corpus, one scraped-shape JSON file per profile under real/ and fake/.
func main() {
	outputDir := flag.String("out", "./data", "destination directory")
	real := flag.Int("real", 200, "number of real profiles")
	fake := flag.Int("fake", 60, "number of fake profiles")
	seed := flag.Int64("seed", 42, "generator seed")
	flag.Parse()

	for i, record := range fixtures.Corpus(*seed, *real, *fake) {
		dir := filepath.Join(*outputDir, string(record.AccountLabel))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to create %s: %v\n", dir, err)
			os.Exit(1)
		}
		data, err := json.MarshalIndent(fixtures.Raw(record), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to encode profile %d: %v\n", i, err)
			os.Exit(1)
		}
		path := filepath.Join(dir, fmt.Sprintf("profile_%05d.json", i))
		if err = os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to write %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Corpus written to %s (%d real, %d fake)\n", *outputDir, *real, *fake)
}
