// Package usecase implements the credential business rules: merge-on-update,
// masking for API exposure, and connection URL construction.
package usecase

import (
	"context"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
)

// CredentialUseCase defines the business operations over the encrypted
// credential record.
type CredentialUseCase interface {
	// LoadCredentials loads and decrypts the stored credentials. Returns
	// domain.ErrNotConfigured when the master key is absent or no record is
	// stored; propagates domain.ErrDecryptionFailed on key mismatch or tamper.
	LoadCredentials(ctx context.Context) (domain.DbConfig, error)

	// SaveCredentials validates, merges and persists a candidate
	// configuration. An empty candidate password means "reuse the previously
	// stored password"; that merge requires a prior record to exist.
	SaveCredentials(ctx context.Context, candidate domain.DbConfig) error

	// GetMaskedConfig returns the stored credentials with the password
	// stripped, safe for API exposure.
	GetMaskedConfig(ctx context.Context) (domain.MaskedDbConfig, error)

	// RemoveCredentials deletes the stored record. Idempotent.
	RemoveCredentials(ctx context.Context) error

	// BuildConnectionString formats a configuration into a postgres URL.
	BuildConnectionString(cfg domain.DbConfig) string

	// HasMasterKey reports whether encryption-at-rest is available.
	HasMasterKey() bool
}
