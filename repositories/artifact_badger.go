package repositories

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"profile-lab/ai"
	"profile-lab/errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const currentArtifactKey = "artifact:current"

// BadgerArtifactRepository stores each set under "artifact:{id}:{part}" and moves
// "artifact:current" in the same transaction, so a load never mixes two runs.
type BadgerArtifactRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerArtifactRepository(db *badger.DB, log *slog.Logger) BadgerArtifactRepository {
	return BadgerArtifactRepository{db: db, log: log}
}

func artifactKey(id uuid.UUID, part string) []byte {
	return []byte(fmt.Sprintf("artifact:%s:%s", id, part))
}

func (r BadgerArtifactRepository) Save(artifacts ai.Artifacts) error {
	encoded, err := encodeArtifacts(artifacts)
	if err != nil {
		return fmt.Errorf("unable to encode artifacts: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		entries := []struct {
			key   []byte
			value []byte
		}{
			{artifactKey(artifacts.ID, "classifier"), encoded.classifier},
			{artifactKey(artifacts.ID, "vectorizer"), encoded.vectorizer},
			{artifactKey(artifacts.ID, "manifest"), encoded.manifest},
			{[]byte(currentArtifactKey), []byte(artifacts.ID.String())},
		}
		for _, e := range entries {
			if err := txn.Set(e.key, e.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info("Artifacts saved", "id", artifacts.ID)
	return nil
}

func (r BadgerArtifactRepository) Load() (ai.Artifacts, error) {
	var encoded encodedArtifacts
	var id uuid.UUID
	err := r.db.View(func(txn *badger.Txn) error {
		current, err := getValue(txn, []byte(currentArtifactKey))
		if err != nil {
			return err
		}
		if id, err = uuid.ParseBytes(current); err != nil {
			return fmt.Errorf("%w: invalid current pointer: %v", errors.ErrArtifactUnavailable, err)
		}
		if encoded.classifier, err = getValue(txn, artifactKey(id, "classifier")); err != nil {
			return err
		}
		if encoded.vectorizer, err = getValue(txn, artifactKey(id, "vectorizer")); err != nil {
			return err
		}
		encoded.manifest, err = getValue(txn, artifactKey(id, "manifest"))
		return err
	})
	if err != nil {
		return ai.Artifacts{}, err
	}
	artifacts, err := decodeArtifacts(encoded)
	if err != nil {
		return ai.Artifacts{}, err
	}
	r.log.Debug("Artifacts loaded", "id", id, "features", len(artifacts.FeatureNames))
	return artifacts, nil
}

// ListVersions returns the ids of every stored set, in key order.
func (r BadgerArtifactRepository) ListVersions() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		prefix := []byte("artifact:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if !strings.HasSuffix(key, ":manifest") {
				continue
			}
			id, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(key, "artifact:"), ":manifest"))
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: missing key %s", errors.ErrArtifactUnavailable, key)
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
