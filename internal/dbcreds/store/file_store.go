package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// FileStore keeps the encrypted record as a single JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore rooted at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the record atomically: the JSON is written to a temporary file
// in the same directory and renamed over the target, so a crash mid-save
// leaves either the old record or the new one, never a torn file.
func (f *FileStore) Save(ctx context.Context, record *domain.EncryptedRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize encrypted record")
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return apperrors.Wrap(err, "failed to create temporary credentials file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to write credentials file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to sync credentials file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to close credentials file")
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to replace credentials file")
	}

	return nil
}

// Load reads and parses the stored record.
func (f *FileStore) Load(ctx context.Context) (*domain.EncryptedRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read credentials file")
	}

	var record domain.EncryptedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse credentials file")
	}

	return &record, nil
}

// Exists reports whether the credentials file is present.
func (f *FileStore) Exists(ctx context.Context) (bool, error) {
	if _, err := os.Stat(f.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to stat credentials file")
	}
	return true, nil
}

// Remove deletes the credentials file. Removing an absent file is a no-op.
func (f *FileStore) Remove(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, "failed to remove credentials file")
	}
	return nil
}
