package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/nexusai/backoffice/internal/app"
	"github.com/nexusai/backoffice/internal/config"
)

// RunMigrations executes database migrations against the effective connection
// source: stored encrypted credentials when present, the environment fallback
// otherwise. Determines migration path from the driver and applies all pending
// migrations. Returns nil if there is nothing to apply.
func RunMigrations(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	bootstrapper, err := container.Bootstrapper()
	if err != nil {
		return fmt.Errorf("failed to initialize bootstrapper: %w", err)
	}

	connectionString, driver, err := bootstrapper.ResolveSource(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve connection source: %w", err)
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
	)

	migrationsPath := "file://migrations/postgresql"
	if driver == "mysql" {
		migrationsPath = "file://migrations/mysql"
	}

	m, err := migrate.New(migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
