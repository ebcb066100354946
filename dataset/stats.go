package dataset

import (
	"profile-lab/domain"
	"sort"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

const languageUndetermined = "und"

// Stats summarises a raw corpus before any label policy is applied.
type Stats struct {
	Total     int
	Labels    map[domain.AccountLabel]int
	Languages []LanguageCount
	EmptyBios int
}

type LanguageCount struct {
	Lang  string
	Count int
}

// ComputeStats counts account labels and the detected language of every non-empty bio.
// Languages are sorted by count, highest first, ties by code.
func ComputeStats(records []domain.ProfileRecord) Stats {
	stats := Stats{
		Total:  len(records),
		Labels: lo.CountValuesBy(records, func(r domain.ProfileRecord) domain.AccountLabel { return r.AccountLabel }),
	}
	langs := make(map[string]int)
	for _, r := range records {
		if strings.TrimSpace(r.Bio) == "" {
			stats.EmptyBios++
			continue
		}
		langs[detectLanguage(r.Bio)]++
	}
	stats.Languages = lo.MapToSlice(langs, func(lang string, count int) LanguageCount {
		return LanguageCount{Lang: lang, Count: count}
	})
	sort.Slice(stats.Languages, func(i, j int) bool {
		if stats.Languages[i].Count != stats.Languages[j].Count {
			return stats.Languages[i].Count > stats.Languages[j].Count
		}
		return stats.Languages[i].Lang < stats.Languages[j].Lang
	})
	return stats
}

func detectLanguage(text string) string {
	code := whatlanggo.Detect(text).Lang.Iso6391()
	if code == "" {
		return languageUndetermined
	}
	return code
}
