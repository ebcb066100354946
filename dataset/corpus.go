package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"profile-lab/domain"
	"profile-lab/domain/mimetypes"
	"profile-lab/ingestion"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// CorpusCounter tracks what a corpus walk saw.
type CorpusCounter struct {
	FilesRead    int
	FilesSkipped int
	DirsScanned  int
}

// LoadCorpus reads every *.json file under dir, one profile per file, in lexical path order.
// A record without account_label takes it from the nearest "real" or "fake" parent directory.
// Files that fail to parse are skipped and logged with their sniffed MIME type.
func LoadCorpus(log *slog.Logger, dir string) ([]domain.ProfileRecord, CorpusCounter, error) {
	var counter CorpusCounter
	info, err := os.Stat(dir)
	if err != nil {
		return nil, counter, fmt.Errorf("unable to open corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, counter, fmt.Errorf("corpus path %q is not a directory", dir)
	}

	var records []domain.ProfileRecord
	pending := []string{dir}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		entries, err := os.ReadDir(current)
		if err != nil {
			log.Debug("Permission denied or path error", "path", current, "error", err)
			continue
		}
		counter.DirsScanned++
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			if entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			fullPath := filepath.Join(current, entry.Name())
			if entry.IsDir() {
				pending = append(pending, fullPath)
				continue
			}
			if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
				continue
			}
			record, ok := readProfile(log, fullPath)
			if !ok {
				counter.FilesSkipped++
				continue
			}
			if record.AccountLabel == domain.AccountUnknown {
				record.AccountLabel = labelFromPath(dir, fullPath)
			}
			records = append(records, record)
			counter.FilesRead++
		}
	}
	log.Info("Corpus loaded", "dir", dir, "records", len(records), "skipped", counter.FilesSkipped)
	return records, counter, nil
}

func readProfile(log *slog.Logger, path string) (domain.ProfileRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Unable to read profile file", "path", path, "error", err)
		return domain.ProfileRecord{}, false
	}
	record, err := ingestion.Parse(data)
	if err != nil {
		sniff := data
		if len(sniff) > 512 {
			sniff = sniff[:512]
		}
		detected := mimetype.Detect(sniff).String()
		log.Warn("Skipping undecodable profile file",
			"path", path,
			"mime_type", detected,
			"kind", mimetypes.Classify(detected),
			"error", err)
		return domain.ProfileRecord{}, false
	}
	return record, true
}

// labelFromPath walks from the file up to root and returns the first real/fake directory label.
func labelFromPath(root, path string) domain.AccountLabel {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return domain.AccountUnknown
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if label := domain.ParseAccountLabel(parts[i]); label != domain.AccountUnknown {
			return label
		}
	}
	return domain.AccountUnknown
}
