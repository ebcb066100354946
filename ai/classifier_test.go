package ai

import (
	"profile-lab/domain"
	"profile-lab/errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectedColumns(t *testing.T) {
	req := require.New(t)
	v := FitTfidf([]string{"cat run"}, 100)

	columns := ExpectedColumns(v)
	req.Len(columns, len(domain.StructuralColumns)+2)
	req.Equal(domain.StructuralColumns, columns[:13])
	req.Equal([]string{"tfidf_cat", "tfidf_run"}, columns[13:])
}

func TestArtifacts_Validate(t *testing.T) {
	v := FitTfidf([]string{"cat run"}, 100)
	columns := ExpectedColumns(v)
	model := &BoostedTrees{Version: BoostFormatVersion, NumFeature: len(columns)}

	swapped := slices.Clone(columns)
	swapped[13], swapped[14] = swapped[14], swapped[13]

	tests := []struct {
		name      string
		artifacts Artifacts
		err       error
	}{
		{name: "Consistent", artifacts: NewArtifacts(model, v, columns, nil)},
		{name: "Missing classifier", artifacts: NewArtifacts(nil, v, columns, nil), err: errors.ErrArtifactUnavailable},
		{name: "Missing vectorizer", artifacts: NewArtifacts(model, nil, columns, nil), err: errors.ErrArtifactUnavailable},
		{name: "Column count", artifacts: NewArtifacts(model, v, columns[:14], nil), err: errors.ErrVectorizerMismatch},
		{name: "Column order", artifacts: NewArtifacts(model, v, swapped, nil), err: errors.ErrVectorizerMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := tt.artifacts.Validate()
			if tt.err == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.err)
		})
	}
}
