// Package store provides durable persistence for the singleton encrypted
// credential record. Implementations share one contract: absence is reported
// as errors.ErrNotFound (an expected steady state, not a failure), saves
// overwrite the record wholesale, and removal is idempotent.
package store

import (
	"context"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
)

// Store persists the encrypted credential record. The same service logic can
// target a file, a blob bucket, or any other durable backend without changing
// the encryption or merge-on-update rules.
type Store interface {
	// Save overwrites the singleton record. A failed save must never leave a
	// partially-written record observable by a subsequent Load.
	Save(ctx context.Context, record *domain.EncryptedRecord) error

	// Load returns the stored record, or errors.ErrNotFound when none exists.
	Load(ctx context.Context) (*domain.EncryptedRecord, error)

	// Exists reports whether a record is stored.
	Exists(ctx context.Context) (bool, error)

	// Remove deletes the record. Removing an absent record is not an error.
	Remove(ctx context.Context) error
}
