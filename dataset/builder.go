package dataset

import (
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/domain"
	"profile-lab/errors"
	"profile-lab/features"
)

type Builder struct {
	log         *slog.Logger
	extractor   *features.Extractor
	maxFeatures int
	policy      UnknownPolicy
}

func NewBuilder(log *slog.Logger, extractor *features.Extractor, maxFeatures int, policy UnknownPolicy) *Builder {
	return &Builder{log: log, extractor: extractor, maxFeatures: maxFeatures, policy: policy}
}

// Build turns labeled records into a dataset and the vectorizer fitted on their bios.
// Records dropped by the unknown-label policy take no part in the vectorizer fit either.
func (b *Builder) Build(records []domain.ProfileRecord) (Dataset, *ai.TfidfVectorizer, error) {
	kept := make([]domain.ProfileRecord, 0, len(records))
	labels := make([]domain.Label, 0, len(records))
	excluded := 0
	for _, r := range records {
		label, ok := b.policy.Resolve(r.AccountLabel)
		if !ok {
			excluded++
			continue
		}
		kept = append(kept, r)
		labels = append(labels, label)
	}
	if excluded > 0 {
		b.log.Warn("Records without a usable label were excluded", "excluded", excluded, "policy", b.policy)
	}
	if len(kept) == 0 {
		return Dataset{}, nil, fmt.Errorf("%w: %d records received, none kept", errors.ErrTrainingDataEmpty, len(records))
	}

	structural := make([]domain.FeatureVector, len(kept))
	corpus := make([]string, len(kept))
	for i, r := range kept {
		structural[i] = b.extractor.Extract(r)
		corpus[i] = b.extractor.NormalizedBio(r)
	}

	vectorizer := ai.FitTfidf(corpus, b.maxFeatures)
	b.log.Debug("Text vectorizer fitted", "documents", len(corpus), "vocabulary", vectorizer.Size())

	ds := Dataset{
		Columns:   ai.ExpectedColumns(vectorizer),
		Rows:      make([][]float64, len(kept)),
		Labels:    labels,
		Usernames: make([]string, len(kept)),
	}
	for i, r := range kept {
		ds.Rows[i] = structural[i].Append(features.TextBlock(vectorizer, corpus[i])).Values
		ds.Usernames[i] = r.Username
	}
	realCount, fakeCount := ds.Counts()
	b.log.Info("Dataset built", "rows", ds.Len(), "columns", len(ds.Columns), "real", realCount, "fake", fakeCount)
	return ds, vectorizer, nil
}
