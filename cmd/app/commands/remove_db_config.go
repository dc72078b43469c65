package commands

import (
	"context"
	"fmt"

	"github.com/nexusai/backoffice/internal/app"
	"github.com/nexusai/backoffice/internal/config"
)

// RunRemoveDbConfig deletes the stored encrypted credential record. The next
// server start falls back to DB_CONNECTION_STRING. Idempotent.
func RunRemoveDbConfig(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	credUseCase, err := container.CredentialUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize credential use case: %w", err)
	}

	if err := credUseCase.RemoveCredentials(ctx); err != nil {
		return fmt.Errorf("failed to remove stored credentials: %w", err)
	}

	logger.Info("stored database credentials removed")
	fmt.Println("Stored database credentials removed")
	return nil
}
