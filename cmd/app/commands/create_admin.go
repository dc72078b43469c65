package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nexusai/backoffice/internal/app"
	"github.com/nexusai/backoffice/internal/config"
)

// RunCreateAdmin creates a back-office user account. The password is hashed
// before storage and never printed back.
func RunCreateAdmin(ctx context.Context, username, password string, isAdmin bool) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	adminUseCase, err := container.AdminUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize admin use case: %w", err)
	}

	user, err := adminUseCase.CreateUser(ctx, username, password, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("id", user.ID.String()),
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin),
	)

	fmt.Printf("Created user %q (id=%s, admin=%t)\n", user.Username, user.ID, user.IsAdmin)
	return nil
}
