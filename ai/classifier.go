package ai

import (
	"fmt"
	"profile-lab/domain"
	"profile-lab/errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Classifier scores one aligned feature row.
type Classifier interface {
	Kind() string
	NumFeatures() int
	Predict(row []float64) (domain.Label, error)
}

// ProbabilisticClassifier also exposes class probabilities, [P(real), P(fake)].
type ProbabilisticClassifier interface {
	Classifier
	PredictProba(row []float64) ([2]float64, error)
}

// Artifacts is the co-dependent result of one training run. The classifier only makes
// sense with the vectorizer that produced its text columns and the exact column order
// it was fit on. A value is never mutated once built.
type Artifacts struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	Classifier   Classifier
	Vectorizer   *TfidfVectorizer
	FeatureNames []string
	Report       *Report
}

func NewArtifacts(classifier Classifier, vectorizer *TfidfVectorizer, featureNames []string, report *Report) Artifacts {
	return Artifacts{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Classifier:   classifier,
		Vectorizer:   vectorizer,
		FeatureNames: slices.Clone(featureNames),
		Report:       report,
	}
}

// Validate checks that the three parts agree: the structural block first, then one
// text column per vocabulary term in vocabulary order, and as many columns as the
// classifier expects.
func (a Artifacts) Validate() error {
	if a.Classifier == nil || a.Vectorizer == nil {
		return fmt.Errorf("%w: classifier or vectorizer missing", errors.ErrArtifactUnavailable)
	}
	if len(a.FeatureNames) != a.Classifier.NumFeatures() {
		return fmt.Errorf("%w: %d feature names for a classifier of %d features",
			errors.ErrVectorizerMismatch, len(a.FeatureNames), a.Classifier.NumFeatures())
	}
	expected := ExpectedColumns(a.Vectorizer)
	if !slices.Equal(expected, a.FeatureNames) {
		return fmt.Errorf("%w: feature order does not match the structural columns plus %d vocabulary terms",
			errors.ErrVectorizerMismatch, a.Vectorizer.Size())
	}
	return nil
}

// ExpectedColumns is the canonical column order for a given vectorizer.
func ExpectedColumns(vectorizer *TfidfVectorizer) []string {
	columns := slices.Clone(domain.StructuralColumns)
	for _, term := range vectorizer.Vocabulary() {
		columns = append(columns, domain.TextColumn(term))
	}
	return columns
}
