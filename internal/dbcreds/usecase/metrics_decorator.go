package usecase

import (
	"context"
	"time"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	"github.com/nexusai/backoffice/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(
	useCase CredentialUseCase,
	m metrics.BusinessMetrics,
) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "dbcreds", operation, status)
	c.metrics.RecordDuration(ctx, "dbcreds", operation, time.Since(start), status)
}

// LoadCredentials records metrics for credential load operations.
func (c *credentialUseCaseWithMetrics) LoadCredentials(ctx context.Context) (domain.DbConfig, error) {
	start := time.Now()
	cfg, err := c.next.LoadCredentials(ctx)
	c.record(ctx, "credentials_load", start, err)
	return cfg, err
}

// SaveCredentials records metrics for credential save operations.
func (c *credentialUseCaseWithMetrics) SaveCredentials(ctx context.Context, candidate domain.DbConfig) error {
	start := time.Now()
	err := c.next.SaveCredentials(ctx, candidate)
	c.record(ctx, "credentials_save", start, err)
	return err
}

// GetMaskedConfig records metrics for masked config reads.
func (c *credentialUseCaseWithMetrics) GetMaskedConfig(ctx context.Context) (domain.MaskedDbConfig, error) {
	start := time.Now()
	masked, err := c.next.GetMaskedConfig(ctx)
	c.record(ctx, "credentials_get_masked", start, err)
	return masked, err
}

// RemoveCredentials records metrics for credential removal operations.
func (c *credentialUseCaseWithMetrics) RemoveCredentials(ctx context.Context) error {
	start := time.Now()
	err := c.next.RemoveCredentials(ctx)
	c.record(ctx, "credentials_remove", start, err)
	return err
}

// BuildConnectionString delegates without instrumentation; it is a pure function.
func (c *credentialUseCaseWithMetrics) BuildConnectionString(cfg domain.DbConfig) string {
	return c.next.BuildConnectionString(cfg)
}

// HasMasterKey delegates without instrumentation.
func (c *credentialUseCaseWithMetrics) HasMasterKey() bool {
	return c.next.HasMasterKey()
}
