package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

func testRecord() *domain.EncryptedRecord {
	return &domain.EncryptedRecord{
		Ciphertext: "deadbeef",
		IV:         "000102030405060708090a0b",
		AuthTag:    "000102030405060708090a0b0c0d0e0f",
		Salt:       "0f0e0d0c0b0a09080706050403020100",
		Version:    domain.RecordVersion,
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.enc")
		fs := NewFileStore(path)

		err := fs.Save(ctx, testRecord())
		require.NoError(t, err)

		loaded, err := fs.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testRecord(), loaded)
	})

	t.Run("Success_SaveOverwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.enc")
		fs := NewFileStore(path)

		require.NoError(t, fs.Save(ctx, testRecord()))

		updated := testRecord()
		updated.Ciphertext = "cafebabe"
		require.NoError(t, fs.Save(ctx, updated))

		loaded, err := fs.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "cafebabe", loaded.Ciphertext)
	})

	t.Run("Success_NoTemporaryFilesLeftBehind", func(t *testing.T) {
		dir := t.TempDir()
		fs := NewFileStore(filepath.Join(dir, "creds.enc"))

		require.NoError(t, fs.Save(ctx, testRecord()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "creds.enc", entries[0].Name())
	})

	t.Run("Error_LoadMissingFile", func(t *testing.T) {
		fs := NewFileStore(filepath.Join(t.TempDir(), "absent.enc"))

		_, err := fs.Load(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_LoadCorruptFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.enc")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		fs := NewFileStore(path)
		_, err := fs.Load(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFileStore_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MissingFile", func(t *testing.T) {
		fs := NewFileStore(filepath.Join(t.TempDir(), "absent.enc"))

		ok, err := fs.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_PresentFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.enc")
		fs := NewFileStore(path)
		require.NoError(t, fs.Save(ctx, testRecord()))

		ok, err := fs.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestFileStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RemovePresentFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.enc")
		fs := NewFileStore(path)
		require.NoError(t, fs.Save(ctx, testRecord()))

		require.NoError(t, fs.Remove(ctx))

		ok, err := fs.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_RemoveIsIdempotent", func(t *testing.T) {
		fs := NewFileStore(filepath.Join(t.TempDir(), "absent.enc"))

		assert.NoError(t, fs.Remove(ctx))
		assert.NoError(t, fs.Remove(ctx))
	})
}
