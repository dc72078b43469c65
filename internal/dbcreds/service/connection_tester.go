package service

import (
	"context"
	"time"

	"github.com/nexusai/backoffice/internal/database"
	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// ConnectionTester probes a candidate configuration for reachability without
// touching the long-lived pool or any persisted state.
type ConnectionTester interface {
	Test(ctx context.Context, cfg domain.DbConfig) error
}

// ConnStringBuilder formats a configuration into a driver connection string.
type ConnStringBuilder func(cfg domain.DbConfig) string

// SQLConnectionTester implements ConnectionTester over database/sql. Each probe
// opens a dedicated single-connection pool, issues a trivial query, and closes
// the pool regardless of outcome.
type SQLConnectionTester struct {
	driver       string
	buildConnStr ConnStringBuilder
	timeout      time.Duration
}

// NewSQLConnectionTester creates a new SQLConnectionTester.
func NewSQLConnectionTester(
	driver string,
	buildConnStr ConnStringBuilder,
	timeout time.Duration,
) *SQLConnectionTester {
	return &SQLConnectionTester{
		driver:       driver,
		buildConnStr: buildConnStr,
		timeout:      timeout,
	}
}

// Test opens a throwaway connection and runs SELECT 1 against it.
func (t *SQLConnectionTester) Test(ctx context.Context, cfg domain.DbConfig) error {
	db, err := database.Open(database.Config{
		Driver:             t.driver,
		ConnectionString:   t.buildConnStr(cfg),
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    t.timeout,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to open test connection")
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return apperrors.Wrap(err, "connection test query failed")
	}

	return nil
}
