package dto

import (
	"github.com/nexusai/backoffice/internal/dbcreds/domain"
)

// SaveDbConfigResponse is the masked configuration plus save metadata. The
// running process keeps its already-initialized pool; a restart is required
// for new credentials to take effect.
type SaveDbConfigResponse struct {
	domain.MaskedDbConfig
	Message         string `json:"message"`
	RequiresRestart bool   `json:"requiresRestart"`
}

// TestConnectionResponse reports the outcome of a connection probe. Details
// carry the underlying driver message: this endpoint is operator-only, so
// driver-level detail aids debugging without exposing anything to the public.
type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
