package repositories

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"profile-lab/ai"
	"profile-lab/errors"
	"strings"
)

const (
	currentPointer = "CURRENT"
	versionsDir    = "versions"
	classifierFile = "classifier.json"
	vectorizerFile = "vectorizer.json"
	manifestFile   = "manifest.json"
)

// FileArtifactRepository keeps every saved set under versions/<id>/ and a CURRENT file
// naming the live one. A set is fully written and synced before CURRENT is renamed
// over, so readers only ever see a complete set.
type FileArtifactRepository struct {
	root string
	log  *slog.Logger
}

func NewFileArtifactRepository(root string, log *slog.Logger) FileArtifactRepository {
	return FileArtifactRepository{root: root, log: log}
}

func (r FileArtifactRepository) Save(artifacts ai.Artifacts) error {
	encoded, err := encodeArtifacts(artifacts)
	if err != nil {
		return fmt.Errorf("unable to encode artifacts: %w", err)
	}
	versions := filepath.Join(r.root, versionsDir)
	if err = os.MkdirAll(versions, 0o755); err != nil {
		return err
	}

	id := artifacts.ID.String()
	staging, err := os.MkdirTemp(versions, ".staging-"+id+"-")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	for name, data := range map[string][]byte{
		classifierFile: encoded.classifier,
		vectorizerFile: encoded.vectorizer,
		manifestFile:   encoded.manifest,
	} {
		if err = writeSynced(filepath.Join(staging, name), data); err != nil {
			return fmt.Errorf("unable to write %s: %w", name, err)
		}
	}
	target := filepath.Join(versions, id)
	if err = os.Rename(staging, target); err != nil {
		return fmt.Errorf("unable to publish version %s: %w", id, err)
	}
	committed = true
	if err = syncDir(versions); err != nil {
		return err
	}

	if err = r.swapCurrent(id); err != nil {
		return fmt.Errorf("unable to switch current artifacts: %w", err)
	}
	r.log.Info("Artifacts saved", "id", id, "dir", target)
	return nil
}

// swapCurrent writes the new pointer beside the old one and renames it into place.
func (r FileArtifactRepository) swapCurrent(id string) error {
	tmp, err := os.CreateTemp(r.root, ".current-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.WriteString(id + "\n"); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), filepath.Join(r.root, currentPointer)); err != nil {
		return err
	}
	return syncDir(r.root)
}

func (r FileArtifactRepository) Load() (ai.Artifacts, error) {
	pointer, err := os.ReadFile(filepath.Join(r.root, currentPointer))
	if stderrors.Is(err, fs.ErrNotExist) {
		return ai.Artifacts{}, fmt.Errorf("%w: no artifacts saved under %s", errors.ErrArtifactUnavailable, r.root)
	}
	if err != nil {
		return ai.Artifacts{}, err
	}
	id := strings.TrimSpace(string(pointer))
	if id == "" || strings.ContainsAny(id, `/\`) {
		return ai.Artifacts{}, fmt.Errorf("%w: invalid current pointer %q", errors.ErrArtifactUnavailable, id)
	}
	dir := filepath.Join(r.root, versionsDir, id)

	var encoded encodedArtifacts
	for name, dst := range map[string]*[]byte{
		classifierFile: &encoded.classifier,
		vectorizerFile: &encoded.vectorizer,
		manifestFile:   &encoded.manifest,
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return ai.Artifacts{}, fmt.Errorf("%w: %v", errors.ErrArtifactUnavailable, err)
		}
		*dst = data
	}
	artifacts, err := decodeArtifacts(encoded)
	if err != nil {
		return ai.Artifacts{}, err
	}
	r.log.Debug("Artifacts loaded", "id", id, "features", len(artifacts.FeatureNames))
	return artifacts, nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func syncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return err
	}
	defer d.Close()
	// Some filesystems refuse fsync on directories, the rename is still atomic there.
	_ = d.Sync()
	return nil
}
