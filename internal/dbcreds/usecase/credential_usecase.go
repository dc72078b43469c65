package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	validation "github.com/jellydator/validation"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	"github.com/nexusai/backoffice/internal/dbcreds/service"
	"github.com/nexusai/backoffice/internal/dbcreds/store"
	apperrors "github.com/nexusai/backoffice/internal/errors"
	appValidation "github.com/nexusai/backoffice/internal/validation"
)

// CredentialService implements CredentialUseCase over a pluggable store and
// cipher codec.
type CredentialService struct {
	store     store.Store
	codec     service.Codec
	masterKey string
	sslMode   string
	logger    *slog.Logger
}

// NewCredentialService creates a CredentialService. An empty masterKey puts
// the service in degraded mode: loads report "not configured" and saves fail
// fast rather than falling back to plaintext storage.
func NewCredentialService(
	credStore store.Store,
	codec service.Codec,
	masterKey string,
	sslMode string,
	logger *slog.Logger,
) *CredentialService {
	if sslMode == "" {
		sslMode = "disable"
	}
	return &CredentialService{
		store:     credStore,
		codec:     codec,
		masterKey: masterKey,
		sslMode:   sslMode,
		logger:    logger,
	}
}

// HasMasterKey reports whether encryption-at-rest is available.
func (s *CredentialService) HasMasterKey() bool {
	return s.masterKey != ""
}

// LoadCredentials loads and decrypts the stored credential record.
func (s *CredentialService) LoadCredentials(ctx context.Context) (domain.DbConfig, error) {
	if !s.HasMasterKey() {
		return domain.DbConfig{}, domain.ErrNotConfigured
	}

	record, err := s.store.Load(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return domain.DbConfig{}, domain.ErrNotConfigured
		}
		return domain.DbConfig{}, err
	}

	cfg, err := s.codec.Decrypt(record, s.masterKey)
	if err != nil {
		return domain.DbConfig{}, err
	}

	return cfg, nil
}

// SaveCredentials validates the candidate, applies the merge-on-update rule
// and persists the encrypted result. The record is overwritten wholesale.
func (s *CredentialService) SaveCredentials(ctx context.Context, candidate domain.DbConfig) error {
	if !s.HasMasterKey() {
		return domain.ErrMasterKeyMissing
	}

	if err := validateCandidate(candidate, false); err != nil {
		return err
	}

	if candidate.Password == "" {
		existing, err := s.LoadCredentials(ctx)
		if err != nil {
			if apperrors.Is(err, domain.ErrNotConfigured) {
				return domain.ErrPasswordRequired
			}
			return err
		}
		if existing.Password == "" {
			return domain.ErrPasswordRequired
		}
		candidate.Password = existing.Password
	}

	record, err := s.codec.Encrypt(candidate, s.masterKey)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, record); err != nil {
		return err
	}

	s.logger.Info("database credentials saved",
		slog.String("host", candidate.Host),
		slog.String("database", candidate.Database),
	)

	return nil
}

// GetMaskedConfig returns the stored configuration without the password.
func (s *CredentialService) GetMaskedConfig(ctx context.Context) (domain.MaskedDbConfig, error) {
	cfg, err := s.LoadCredentials(ctx)
	if err != nil {
		return domain.MaskedDbConfig{}, err
	}
	return cfg.Masked(), nil
}

// RemoveCredentials deletes the stored record.
func (s *CredentialService) RemoveCredentials(ctx context.Context) error {
	return s.store.Remove(ctx)
}

// BuildConnectionString formats the configuration into a postgres URL. The
// sslmode defaults to "disable", matching this deployment's non-TLS internal
// network; it is configurable rather than hardcoded.
func (s *CredentialService) BuildConnectionString(cfg domain.DbConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=" + s.sslMode,
	}
	return u.String()
}

// validateCandidate checks the candidate shape. The password is mandatory
// only when requirePassword is set (the test-connection path); saves allow
// omission, which triggers the merge-on-update rule.
func validateCandidate(cfg domain.DbConfig, requirePassword bool) error {
	fields := []*validation.FieldRules{
		validation.Field(&cfg.Host, validation.Required, appValidation.Hostname),
		validation.Field(&cfg.Port, validation.Required, appValidation.Port{}),
		validation.Field(&cfg.User, validation.Required, appValidation.NotBlank),
		validation.Field(&cfg.Database, validation.Required, appValidation.NotBlank),
		validation.Field(&cfg.SessionTable, appValidation.NoWhitespace),
	}
	if requirePassword {
		fields = append(fields, validation.Field(&cfg.Password, validation.Required))
	}
	return appValidation.WrapValidationError(validation.ValidateStruct(&cfg, fields...))
}

// ValidateForTest checks a candidate for the test-connection path, where the
// full password is always required because nothing is persisted to merge from.
func ValidateForTest(cfg domain.DbConfig) error {
	return validateCandidate(cfg, true)
}
