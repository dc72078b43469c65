// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	adminHTTP "github.com/nexusai/backoffice/internal/admin/http"
	adminRepository "github.com/nexusai/backoffice/internal/admin/repository"
	adminService "github.com/nexusai/backoffice/internal/admin/service"
	adminUsecase "github.com/nexusai/backoffice/internal/admin/usecase"
	"github.com/nexusai/backoffice/internal/bootstrap"
	"github.com/nexusai/backoffice/internal/config"
	contentHTTP "github.com/nexusai/backoffice/internal/content/http"
	contentRepository "github.com/nexusai/backoffice/internal/content/repository"
	contentUsecase "github.com/nexusai/backoffice/internal/content/usecase"
	"github.com/nexusai/backoffice/internal/database"
	dbcredsHTTP "github.com/nexusai/backoffice/internal/dbcreds/http"
	dbcredsService "github.com/nexusai/backoffice/internal/dbcreds/service"
	dbcredsStore "github.com/nexusai/backoffice/internal/dbcreds/store"
	dbcredsUsecase "github.com/nexusai/backoffice/internal/dbcreds/usecase"
	"github.com/nexusai/backoffice/internal/http"
	"github.com/nexusai/backoffice/internal/metrics"
	siteHTTP "github.com/nexusai/backoffice/internal/site/http"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger       *slog.Logger
	bootstrapper *bootstrap.Bootstrapper
	credBucket   *blob.Bucket

	// Managers
	txManager database.TxManager

	// Credential store pipeline
	credStore   dbcredsStore.Store
	credUseCase dbcredsUsecase.CredentialUseCase

	// Repositories
	userRepo    adminUsecase.UserRepository
	sessionRepo adminUsecase.SessionRepository
	agentRepo   contentUsecase.AgentRepository
	promptRepo  contentUsecase.AgentPromptRepository

	// Use Cases
	adminUseCase   adminUsecase.UseCase
	contentUseCase contentUsecase.ContentUseCase

	// Observability
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	bootstrapperInit    sync.Once
	txManagerInit       sync.Once
	credStoreInit       sync.Once
	credUseCaseInit     sync.Once
	userRepoInit        sync.Once
	sessionRepoInit     sync.Once
	agentRepoInit       sync.Once
	promptRepoInit      sync.Once
	adminUseCaseInit    sync.Once
	contentUseCaseInit  sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Bootstrapper returns the connection-pool bootstrapper.
func (c *Container) Bootstrapper() (*bootstrap.Bootstrapper, error) {
	var err error
	c.bootstrapperInit.Do(func() {
		c.bootstrapper, err = c.initBootstrapper()
		if err != nil {
			c.initErrors["bootstrapper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bootstrapper"]; exists {
		return nil, storedErr
	}
	return c.bootstrapper, nil
}

// DB returns the shared database pool, initializing it on first access.
func (c *Container) DB(ctx context.Context) (*sql.DB, error) {
	bootstrapper, err := c.Bootstrapper()
	if err != nil {
		return nil, err
	}
	return bootstrapper.EnsureInitialized(ctx)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager(ctx context.Context) (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		var db *sql.DB
		db, err = c.DB(ctx)
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// CredentialStore returns the encrypted-record store backend.
func (c *Container) CredentialStore(ctx context.Context) (dbcredsStore.Store, error) {
	var err error
	c.credStoreInit.Do(func() {
		c.credStore, err = c.initCredentialStore(ctx)
		if err != nil {
			c.initErrors["credStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credStore"]; exists {
		return nil, storedErr
	}
	return c.credStore, nil
}

// CredentialUseCase returns the credential use case instance.
func (c *Container) CredentialUseCase(ctx context.Context) (dbcredsUsecase.CredentialUseCase, error) {
	var err error
	c.credUseCaseInit.Do(func() {
		c.credUseCase, err = c.initCredentialUseCase(ctx)
		if err != nil {
			c.initErrors["credUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credUseCase"]; exists {
		return nil, storedErr
	}
	return c.credUseCase, nil
}

// UserRepository returns the admin user repository instance.
func (c *Container) UserRepository(ctx context.Context) (adminUsecase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB(ctx)
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = adminRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = adminRepository.NewPostgreSQLUserRepository(db)
		default:
			err = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// SessionRepository returns the admin session repository instance.
func (c *Container) SessionRepository(ctx context.Context) (adminUsecase.SessionRepository, error) {
	var err error
	c.sessionRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB(ctx)
		if err != nil {
			c.initErrors["sessionRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.sessionRepo = adminRepository.NewMySQLSessionRepository(db)
		case "postgres":
			c.sessionRepo = adminRepository.NewPostgreSQLSessionRepository(db)
		default:
			err = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			c.initErrors["sessionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.sessionRepo, nil
}

// AgentRepository returns the agent repository instance.
func (c *Container) AgentRepository(ctx context.Context) (contentUsecase.AgentRepository, error) {
	var err error
	c.agentRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB(ctx)
		if err != nil {
			c.initErrors["agentRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.agentRepo = contentRepository.NewMySQLAgentRepository(db)
		case "postgres":
			c.agentRepo = contentRepository.NewPostgreSQLAgentRepository(db)
		default:
			err = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			c.initErrors["agentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentRepo"]; exists {
		return nil, storedErr
	}
	return c.agentRepo, nil
}

// AgentPromptRepository returns the agent prompt repository instance.
func (c *Container) AgentPromptRepository(ctx context.Context) (contentUsecase.AgentPromptRepository, error) {
	var err error
	c.promptRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB(ctx)
		if err != nil {
			c.initErrors["promptRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.promptRepo = contentRepository.NewMySQLAgentPromptRepository(db)
		case "postgres":
			c.promptRepo = contentRepository.NewPostgreSQLAgentPromptRepository(db)
		default:
			err = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			c.initErrors["promptRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["promptRepo"]; exists {
		return nil, storedErr
	}
	return c.promptRepo, nil
}

// AdminUseCase returns the admin authentication use case instance.
func (c *Container) AdminUseCase(ctx context.Context) (adminUsecase.UseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase(ctx)
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// ContentUseCase returns the content use case instance.
func (c *Container) ContentUseCase(ctx context.Context) (contentUsecase.ContentUseCase, error) {
	var err error
	c.contentUseCaseInit.Do(func() {
		c.contentUseCase, err = c.initContentUseCase(ctx)
		if err != nil {
			c.initErrors["contentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentUseCase"]; exists {
		return nil, storedErr
	}
	return c.contentUseCase, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. Falls back to a
// no-op implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.bootstrapper != nil {
		if err := c.bootstrapper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.credBucket != nil {
		if err := c.credBucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("credential bucket close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initCredentialStore selects the encrypted-record backend.
func (c *Container) initCredentialStore(ctx context.Context) (dbcredsStore.Store, error) {
	switch c.config.CredentialsStoreBackend {
	case "file":
		return dbcredsStore.NewFileStore(c.config.CredentialsFilePath), nil
	case "blob":
		if c.config.CredentialsBlobURL == "" {
			return nil, fmt.Errorf("blob credential store requires DB_CREDENTIALS_BLOB_URL")
		}
		bucket, err := blob.OpenBucket(ctx, c.config.CredentialsBlobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open credential bucket: %w", err)
		}
		c.credBucket = bucket
		return dbcredsStore.NewBlobStore(bucket), nil
	default:
		return nil, fmt.Errorf("unsupported credential store backend: %s", c.config.CredentialsStoreBackend)
	}
}

// initCredentialUseCase assembles the codec, store and service.
func (c *Container) initCredentialUseCase(ctx context.Context) (dbcredsUsecase.CredentialUseCase, error) {
	credStore, err := c.CredentialStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get store for credential use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics for credential use case: %w", err)
	}

	service := dbcredsUsecase.NewCredentialService(
		credStore,
		dbcredsService.NewAESGCMCodec(),
		c.config.MasterKey,
		c.config.CredentialsSSLMode,
		c.Logger(),
	)

	return dbcredsUsecase.NewCredentialUseCaseWithMetrics(service, businessMetrics), nil
}

// initBootstrapper wires the credential use case into the pool bootstrapper.
func (c *Container) initBootstrapper() (*bootstrap.Bootstrapper, error) {
	// The bootstrapper is constructed eagerly but connects lazily, so the
	// credential use case is resolved with a background context here.
	credUseCase, err := c.CredentialUseCase(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for bootstrapper: %w", err)
	}

	return bootstrap.New(c.config, credUseCase, c.Logger(), nil), nil
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase(ctx context.Context) (adminUsecase.UseCase, error) {
	userRepo, err := c.UserRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for admin use case: %w", err)
	}

	sessionRepo, err := c.SessionRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for admin use case: %w", err)
	}

	useCase, err := adminUsecase.NewAdminUseCase(
		userRepo,
		sessionRepo,
		adminService.NewSessionTokenService(),
		c.config.SessionTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin use case: %w", err)
	}

	return useCase, nil
}

// initContentUseCase creates the content use case with all its dependencies.
func (c *Container) initContentUseCase(ctx context.Context) (contentUsecase.ContentUseCase, error) {
	agentRepo, err := c.AgentRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent repository for content use case: %w", err)
	}

	promptRepo, err := c.AgentPromptRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt repository for content use case: %w", err)
	}

	txManager, err := c.TxManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for content use case: %w", err)
	}

	return contentUsecase.NewContentService(agentRepo, promptRepo, txManager), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	adminUseCase, err := c.AdminUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for http server: %w", err)
	}

	credUseCase, err := c.CredentialUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}

	contentUseCase, err := c.ContentUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get content use case for http server: %w", err)
	}

	tester := dbcredsService.NewSQLConnectionTester(
		"postgres",
		credUseCase.BuildConnectionString,
		c.config.DBTestConnectTimeout,
	)

	handlers := http.Handlers{
		Auth: adminHTTP.NewAuthHandler(
			adminUseCase,
			int(c.config.SessionTTL.Seconds()),
			false,
			logger,
		),
		DbConfig:   dbcredsHTTP.NewDbConfigHandler(credUseCase, adminUseCase, tester, logger),
		Agents:     contentHTTP.NewAgentHandler(contentUseCase, logger),
		SiteConfig: siteHTTP.NewSiteConfigHandler(),
	}

	var meterProvider *metrics.Provider
	if c.config.MetricsEnabled {
		meterProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
	}

	if meterProvider != nil {
		return http.NewServer(c.config, adminUseCase, handlers, meterProvider.MeterProvider(), logger), nil
	}
	return http.NewServer(c.config, adminUseCase, handlers, nil, logger), nil
}
