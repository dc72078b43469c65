package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nexusai/backoffice/internal/app"
	"github.com/nexusai/backoffice/internal/config"
)

// RunCleanExpiredSessions deletes admin sessions past their expiry. Intended
// to run from cron; logins keep working without it, this just bounds table
// growth.
func RunCleanExpiredSessions(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	sessionRepo, err := container.SessionRepository(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize session repository: %w", err)
	}

	deleted, err := sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	logger.Info("expired sessions deleted", slog.Int64("count", deleted))
	fmt.Printf("Deleted %d expired sessions\n", deleted)
	return nil
}
