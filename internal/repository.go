package internal

import (
	"fmt"
	"log/slog"
	"profile-lab/repositories"

	"github.com/dgraph-io/badger/v4"
)

// OpenArtifactRepository builds the configured backend. The returned close func must always be called.
func OpenArtifactRepository(config Config, log *slog.Logger) (repositories.IArtifactRepository, func(), error) {
	switch config.ArtifactBackend {
	case BackendBadger:
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.ERROR))
		if err != nil {
			return nil, func() {}, fmt.Errorf("database opening failed: %w", err)
		}
		return repositories.NewBadgerArtifactRepository(db, log), func() {
			log.Debug("Closing BadgerDB...")
			_ = db.Close()
		}, nil
	default:
		return repositories.NewFileArtifactRepository(config.ArtifactDir, log), func() {}, nil
	}
}
