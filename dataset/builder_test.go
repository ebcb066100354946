package dataset

import (
	"log/slog"
	"profile-lab/ai"
	"profile-lab/domain"
	"profile-lab/errors"
	"profile-lab/features"
	"profile-lab/internal/fixtures"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, maxFeatures int, policy UnknownPolicy) *Builder {
	t.Helper()
	extractor, err := features.NewExtractor(ai.NewNormalizer())
	require.NoError(t, err)
	return NewBuilder(logs.GetLoggerFromLevel(slog.LevelDebug), extractor, maxFeatures, policy)
}

func TestBuilder_Build(t *testing.T) {
	req := require.New(t)
	records := fixtures.Corpus(7, 20, 8)

	ds, vectorizer, err := newBuilder(t, 100, UnknownExclude).Build(records)
	req.NoError(err)
	req.Equal(28, ds.Len())
	req.Equal(ai.ExpectedColumns(vectorizer), ds.Columns)
	for _, row := range ds.Rows {
		req.Len(row, len(ds.Columns))
	}
	real, fake := ds.Counts()
	req.Equal(20, real)
	req.Equal(8, fake)
	req.LessOrEqual(vectorizer.Size(), 100)
	req.Equal(records[0].Username, ds.Usernames[0])
}

func TestBuilder_VocabularyCap(t *testing.T) {
	req := require.New(t)
	ds, vectorizer, err := newBuilder(t, 3, UnknownExclude).Build(fixtures.Corpus(7, 20, 8))
	req.NoError(err)
	req.Equal(3, vectorizer.Size())
	req.Len(ds.Columns, 16)
}

func TestBuilder_UnknownPolicy(t *testing.T) {
	records := []domain.ProfileRecord{
		{Username: "a", Bio: "cats running", AccountLabel: domain.AccountReal},
		{Username: "b", Bio: "free giveaway", AccountLabel: domain.AccountFake},
		{Username: "c", Bio: "zebra stripes", AccountLabel: domain.AccountUnknown},
	}

	tests := []struct {
		policy UnknownPolicy
		rows   int
		fake   int
		zebra  bool
	}{
		{policy: UnknownExclude, rows: 2, fake: 1, zebra: false},
		{policy: UnknownAsReal, rows: 3, fake: 1, zebra: true},
		{policy: UnknownAsFake, rows: 3, fake: 2, zebra: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			req := require.New(t)
			ds, vectorizer, err := newBuilder(t, 100, tt.policy).Build(records)
			req.NoError(err)
			req.Equal(tt.rows, ds.Len())
			_, fake := ds.Counts()
			req.Equal(tt.fake, fake)
			req.Equal(tt.zebra, containsColumn(ds.Columns, "tfidf_zebra"), vectorizer.Vocabulary())
		})
	}
}

func TestBuilder_Empty(t *testing.T) {
	req := require.New(t)
	builder := newBuilder(t, 100, UnknownExclude)

	_, _, err := builder.Build(nil)
	req.ErrorIs(err, errors.ErrTrainingDataEmpty)

	_, _, err = builder.Build([]domain.ProfileRecord{{AccountLabel: domain.AccountUnknown}})
	req.ErrorIs(err, errors.ErrTrainingDataEmpty)
}

func TestDataset_Subset(t *testing.T) {
	req := require.New(t)
	ds := Dataset{
		Columns:   []string{"x"},
		Rows:      [][]float64{{1}, {2}, {3}},
		Labels:    []domain.Label{0, 1, 0},
		Usernames: []string{"a", "b", "c"},
	}
	sub := ds.Subset([]int{2, 1})
	req.Equal([][]float64{{3}, {2}}, sub.Rows)
	req.Equal([]domain.Label{0, 1}, sub.Labels)
	req.Equal([]string{"c", "b"}, sub.Usernames)
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
