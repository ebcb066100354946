//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=../mocks/mock_artifact_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"profile-lab/ai"
	"profile-lab/errors"
	"time"

	"github.com/google/uuid"
)

const ArtifactFormatVersion = 1

// IArtifactRepository persists the co-dependent classifier, vectorizer and feature order
// of one training run. Save either exposes the whole set or nothing; Load returns the
// latest complete set.
type IArtifactRepository interface {
	Save(artifacts ai.Artifacts) error
	Load() (ai.Artifacts, error)
}

// Manifest ties a classifier and a vectorizer together.
type Manifest struct {
	Version               int        `json:"version"`
	ID                    uuid.UUID  `json:"id"`
	CreatedAt             time.Time  `json:"created_at"`
	FeatureNames          []string   `json:"feature_names"`
	VectorizerFingerprint string     `json:"vectorizer_fingerprint"`
	ClassifierKind        string     `json:"classifier_kind"`
	Metrics               *ai.Report `json:"metrics,omitempty"`
}

// encodedArtifacts is the three documents any backend writes.
type encodedArtifacts struct {
	classifier []byte
	vectorizer []byte
	manifest   []byte
}

func encodeArtifacts(a ai.Artifacts) (encodedArtifacts, error) {
	if err := a.Validate(); err != nil {
		return encodedArtifacts{}, err
	}
	model, ok := a.Classifier.(*ai.BoostedTrees)
	if !ok {
		return encodedArtifacts{}, fmt.Errorf("classifier kind %q cannot be persisted", a.Classifier.Kind())
	}
	classifier, err := json.Marshal(model)
	if err != nil {
		return encodedArtifacts{}, err
	}
	vectorizer, err := json.Marshal(a.Vectorizer.Model())
	if err != nil {
		return encodedArtifacts{}, err
	}
	manifest, err := json.MarshalIndent(Manifest{
		Version:               ArtifactFormatVersion,
		ID:                    a.ID,
		CreatedAt:             a.CreatedAt,
		FeatureNames:          a.FeatureNames,
		VectorizerFingerprint: a.Vectorizer.Fingerprint(),
		ClassifierKind:        model.Kind(),
		Metrics:               a.Report,
	}, "", "  ")
	if err != nil {
		return encodedArtifacts{}, err
	}
	return encodedArtifacts{classifier: classifier, vectorizer: vectorizer, manifest: manifest}, nil
}

// decodeArtifacts rebuilds a set and refuses any combination that does not belong together.
func decodeArtifacts(e encodedArtifacts) (ai.Artifacts, error) {
	var manifest Manifest
	if err := json.Unmarshal(e.manifest, &manifest); err != nil {
		return ai.Artifacts{}, fmt.Errorf("%w: unreadable manifest: %v", errors.ErrArtifactUnavailable, err)
	}
	if manifest.Version != ArtifactFormatVersion {
		return ai.Artifacts{}, fmt.Errorf("%w: unsupported artifact format version %d",
			errors.ErrArtifactUnavailable, manifest.Version)
	}
	if manifest.ClassifierKind != ai.KindBoostedTrees {
		return ai.Artifacts{}, fmt.Errorf("%w: unsupported classifier kind %q",
			errors.ErrArtifactUnavailable, manifest.ClassifierKind)
	}

	var model ai.BoostedTrees
	if err := json.Unmarshal(e.classifier, &model); err != nil {
		return ai.Artifacts{}, fmt.Errorf("%w: unreadable classifier: %v", errors.ErrArtifactUnavailable, err)
	}
	if err := model.Validate(); err != nil {
		return ai.Artifacts{}, fmt.Errorf("%w: %v", errors.ErrArtifactUnavailable, err)
	}

	var tfidf ai.TfidfModel
	if err := json.Unmarshal(e.vectorizer, &tfidf); err != nil {
		return ai.Artifacts{}, fmt.Errorf("%w: unreadable vectorizer: %v", errors.ErrArtifactUnavailable, err)
	}
	if err := tfidf.Validate(); err != nil {
		return ai.Artifacts{}, fmt.Errorf("%w: %v", errors.ErrVectorizerMismatch, err)
	}
	vectorizer := ai.NewTfidfVectorizer(tfidf)
	if fp := vectorizer.Fingerprint(); fp != manifest.VectorizerFingerprint {
		return ai.Artifacts{}, fmt.Errorf("%w: vectorizer fingerprint %s, manifest expects %s",
			errors.ErrVectorizerMismatch, fp, manifest.VectorizerFingerprint)
	}

	artifacts := ai.Artifacts{
		ID:           manifest.ID,
		CreatedAt:    manifest.CreatedAt,
		Classifier:   &model,
		Vectorizer:   vectorizer,
		FeatureNames: manifest.FeatureNames,
		Report:       manifest.Metrics,
	}
	if err := artifacts.Validate(); err != nil {
		return ai.Artifacts{}, err
	}
	return artifacts, nil
}
