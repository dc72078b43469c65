package domain

import (
	"github.com/nexusai/backoffice/internal/errors"
)

// Credential storage error definitions.
var (
	// ErrNotConfigured indicates no credential record is available: either the
	// store holds no record yet or the master key is absent from the
	// environment. This is an expected steady state, not a failure.
	ErrNotConfigured = errors.Wrap(errors.ErrNotFound, "database credentials not configured")

	// ErrMasterKeyMissing indicates a write was attempted without a master key.
	// The system never falls back to unencrypted storage: it either encrypts
	// or refuses to persist.
	ErrMasterKeyMissing = errors.Wrap(errors.ErrConfiguration, "master key missing")

	// ErrDecryptionFailed indicates the stored ciphertext could not be
	// verified with the current master key. The cause (wrong key vs tampered
	// or corrupted data) is deliberately not distinguished.
	ErrDecryptionFailed = errors.Wrap(errors.ErrConfiguration, "credentials could not be decrypted")

	// ErrPasswordRequired indicates a first-time save omitted the password.
	// Password omission is only valid when a prior record exists to merge from.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password is required on first configuration")
)
