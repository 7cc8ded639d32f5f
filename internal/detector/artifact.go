package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"wastevision/internal/storage"
)

// EnsureArtifact makes sure the model file at path exists on local disk.
// When it is missing and key is set, the object is checked with Stat and then
// downloaded from store.
// The download goes to a temporary file that is renamed into place, so an
// interrupted fetch never leaves a truncated model behind.
func EnsureArtifact(ctx context.Context, store storage.Storage, key, path string, log logrus.FieldLogger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat model %s: %w", path, err)
	}

	if key == "" {
		return fmt.Errorf("model %s not found and no object key configured", path)
	}
	if store == nil {
		return fmt.Errorf("model %s not found and object storage is not configured", path)
	}

	l := log.WithFields(logrus.Fields{"component": "detector", "object_key": key, "path": path})
	l.WithField("event", "artifact_fetch_start").Info("fetching model artifact")

	stat, err := store.Stat(ctx, key)
	if err != nil {
		return fmt.Errorf("stat object %s: %w", key, err)
	}
	if stat.Size <= 0 {
		return fmt.Errorf("object %s is empty", key)
	}
	l = l.WithField("size", stat.Size)

	rc, _, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get object %s: %w", key, err)
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, rc)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && n != stat.Size {
		err = fmt.Errorf("short download: got %d of %d bytes", n, stat.Size)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("download %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("install model %s: %w", path, err)
	}

	l.WithFields(logrus.Fields{"event": "artifact_fetch_success", "bytes": n}).Info("model artifact fetched")
	return nil
}
