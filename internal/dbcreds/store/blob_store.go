package store

import (
	"context"
	"encoding/json"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// recordKey is the fixed key of the singleton record inside the bucket.
const recordKey = "db-credentials.enc"

// BlobStore keeps the encrypted record under a fixed key in a gocloud.dev
// bucket, so the same record can live in S3, GCS, Azure or a local bucket.
// Blob writes replace the key atomically, which satisfies the no-torn-record
// requirement without extra work.
type BlobStore struct {
	bucket *blob.Bucket
}

// NewBlobStore creates a BlobStore on top of an opened bucket. The caller
// owns the bucket's lifecycle.
func NewBlobStore(bucket *blob.Bucket) *BlobStore {
	return &BlobStore{bucket: bucket}
}

// Save overwrites the record blob.
func (b *BlobStore) Save(ctx context.Context, record *domain.EncryptedRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize encrypted record")
	}

	if err := b.bucket.WriteAll(ctx, recordKey, data, nil); err != nil {
		return apperrors.Wrap(err, "failed to write credentials blob")
	}
	return nil
}

// Load reads and parses the record blob.
func (b *BlobStore) Load(ctx context.Context) (*domain.EncryptedRecord, error) {
	data, err := b.bucket.ReadAll(ctx, recordKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read credentials blob")
	}

	var record domain.EncryptedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse credentials blob")
	}

	return &record, nil
}

// Exists reports whether the record blob is present.
func (b *BlobStore) Exists(ctx context.Context) (bool, error) {
	ok, err := b.bucket.Exists(ctx, recordKey)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check credentials blob")
	}
	return ok, nil
}

// Remove deletes the record blob. Removing an absent blob is a no-op.
func (b *BlobStore) Remove(ctx context.Context) error {
	if err := b.bucket.Delete(ctx, recordKey); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return apperrors.Wrap(err, "failed to remove credentials blob")
	}
	return nil
}
