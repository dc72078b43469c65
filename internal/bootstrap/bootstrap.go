// Package bootstrap resolves the effective database connection source and
// constructs the process-wide connection pool exactly once.
package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nexusai/backoffice/internal/config"
	"github.com/nexusai/backoffice/internal/database"
	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	credsUseCase "github.com/nexusai/backoffice/internal/dbcreds/usecase"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// State models the bootstrapper lifecycle. Initializing is entered at most
// once per process; all concurrent first callers converge on the same
// in-flight initialization and the same pool handle.
type State int

const (
	// Uninitialized means no pool has been constructed yet.
	Uninitialized State = iota
	// Initializing means one initialization is in flight.
	Initializing
	// Ready means the shared pool exists. It lives until process exit.
	Ready
)

// ErrNoConnectionSource is returned when neither stored credentials nor the
// environment fallback yield a usable connection string. The process cannot
// proceed without a database.
var ErrNoConnectionSource = apperrors.Wrap(
	apperrors.ErrConfiguration,
	"no database connection source: no stored credentials and DB_CONNECTION_STRING is empty",
)

// PoolOpener constructs a pool from a database configuration. Injectable so
// tests can count constructions and substitute fakes.
type PoolOpener func(cfg database.Config) (*sql.DB, error)

// Bootstrapper owns the single shared pool. It is constructed by the process
// entry point and injected into every component that needs the database; no
// package-level state is involved, so tests can build as many independent
// bootstrappers as they like.
type Bootstrapper struct {
	cfg    *config.Config
	creds  credsUseCase.CredentialUseCase
	logger *slog.Logger
	open   PoolOpener

	group singleflight.Group

	mu    sync.RWMutex
	state State
	db    *sql.DB
}

// New creates a Bootstrapper. A nil opener defaults to database.Open.
func New(
	cfg *config.Config,
	creds credsUseCase.CredentialUseCase,
	logger *slog.Logger,
	opener PoolOpener,
) *Bootstrapper {
	if opener == nil {
		opener = database.Open
	}
	return &Bootstrapper{
		cfg:    cfg,
		creds:  creds,
		logger: logger,
		open:   opener,
	}
}

// State returns the current lifecycle state.
func (b *Bootstrapper) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// EnsureInitialized drives the state machine to Ready and returns the shared
// pool. Calls after the first are no-ops returning the same handle; concurrent
// first calls share a single in-flight initialization.
func (b *Bootstrapper) EnsureInitialized(ctx context.Context) (*sql.DB, error) {
	b.mu.RLock()
	if b.state == Ready {
		db := b.db
		b.mu.RUnlock()
		return db, nil
	}
	b.mu.RUnlock()

	v, err, _ := b.group.Do("initialize", func() (any, error) {
		// Re-check: a previous flight may have completed between the fast
		// path and joining this one.
		b.mu.RLock()
		if b.state == Ready {
			db := b.db
			b.mu.RUnlock()
			return db, nil
		}
		b.mu.RUnlock()

		return b.initialize(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*sql.DB), nil
}

// initialize resolves the connection source, constructs the pool and moves
// the state machine to Ready. A failed initialization returns the state to
// Uninitialized so a later call may retry.
func (b *Bootstrapper) initialize(ctx context.Context) (*sql.DB, error) {
	b.setState(Initializing)

	connectionString, driver, source, err := b.resolveConnectionSource(ctx)
	if err != nil {
		b.setState(Uninitialized)
		return nil, err
	}

	b.logger.Info("connecting to database",
		slog.String("source", source),
		slog.String("url", maskConnectionString(connectionString)),
	)

	db, err := b.open(database.Config{
		Driver:             driver,
		ConnectionString:   connectionString,
		MaxOpenConnections: b.cfg.DBMaxOpenConnections,
		MaxIdleConnections: b.cfg.DBMaxIdleConnections,
		ConnMaxLifetime:    b.cfg.DBConnMaxLifetime,
	})
	if err != nil {
		b.setState(Uninitialized)
		return nil, apperrors.Wrap(err, "failed to construct connection pool")
	}

	// database/sql has no pool-level error event; a failed liveness probe is
	// logged and the pool kept, connection errors surface per query.
	if err := database.Ping(ctx, db, b.cfg.DBConnectTimeout); err != nil {
		b.logger.Warn("database liveness check failed", slog.Any("error", err))
	}

	b.mu.Lock()
	b.db = db
	b.state = Ready
	b.mu.Unlock()

	b.logger.Info("connection pool ready",
		slog.Int("max_open_connections", b.cfg.DBMaxOpenConnections),
	)

	return db, nil
}

// ResolveSource resolves the effective connection string and driver without
// constructing a pool. Used by tooling (migrations) that manages its own
// connection.
func (b *Bootstrapper) ResolveSource(ctx context.Context) (connectionString, driver string, err error) {
	connectionString, driver, _, err = b.resolveConnectionSource(ctx)
	return connectionString, driver, err
}

// resolveConnectionSource applies the precedence rule: stored encrypted
// credentials win over the environment fallback. "Not configured" (missing
// master key or empty store) falls through; a decryption or store failure is
// fatal rather than silently masked by the fallback.
func (b *Bootstrapper) resolveConnectionSource(
	ctx context.Context,
) (connectionString, driver, source string, err error) {
	stored, err := b.creds.LoadCredentials(ctx)
	switch {
	case err == nil:
		return b.creds.BuildConnectionString(stored), "postgres", "stored-credentials", nil
	case apperrors.Is(err, domain.ErrNotConfigured):
		// fall through to the environment
	default:
		return "", "", "", err
	}

	if b.cfg.DBConnectionString != "" {
		return b.cfg.DBConnectionString, b.cfg.DBDriver, "environment", nil
	}

	return "", "", "", ErrNoConnectionSource
}

// Close releases the shared pool if one was constructed.
func (b *Bootstrapper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.state = Uninitialized
	return err
}

func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// maskConnectionString strips userinfo from a connection URL for logging.
func maskConnectionString(connectionString string) string {
	u, err := url.Parse(connectionString)
	if err != nil || u.User == nil {
		return connectionString
	}
	u.User = url.User("***")
	return u.String()
}
