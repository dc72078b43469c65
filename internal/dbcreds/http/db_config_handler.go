// Package http provides the admin endpoints for managing the encrypted
// database credential record.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	adminHTTP "github.com/nexusai/backoffice/internal/admin/http"
	adminUseCase "github.com/nexusai/backoffice/internal/admin/usecase"
	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	"github.com/nexusai/backoffice/internal/dbcreds/http/dto"
	"github.com/nexusai/backoffice/internal/dbcreds/service"
	"github.com/nexusai/backoffice/internal/dbcreds/usecase"
	apperrors "github.com/nexusai/backoffice/internal/errors"
	"github.com/nexusai/backoffice/internal/httputil"
)

// DbConfigHandler handles the admin database-credential endpoints.
type DbConfigHandler struct {
	credentials usecase.CredentialUseCase
	admin       adminUseCase.UseCase
	tester      service.ConnectionTester
	logger      *slog.Logger
}

// NewDbConfigHandler creates a new DbConfigHandler.
func NewDbConfigHandler(
	credentials usecase.CredentialUseCase,
	admin adminUseCase.UseCase,
	tester service.ConnectionTester,
	logger *slog.Logger,
) *DbConfigHandler {
	return &DbConfigHandler{
		credentials: credentials,
		admin:       admin,
		tester:      tester,
		logger:      logger,
	}
}

// GetHandler returns the stored configuration with the password stripped.
// GET /api/admin/db-config
func (h *DbConfigHandler) GetHandler(c *gin.Context) {
	if !h.credentials.HasMasterKey() {
		httputil.HandleErrorGin(c, domain.ErrMasterKeyMissing, h.logger)
		return
	}

	masked, err := h.credentials.GetMaskedConfig(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, masked)
}

// TestHandler probes a candidate configuration without persisting anything.
// The candidate password is always required: nothing is stored on this path,
// so there is no prior record to merge from.
// POST /api/admin/db-config/test
func (h *DbConfigHandler) TestHandler(c *gin.Context) {
	var req dto.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	candidate := req.ToDomain()

	if err := usecase.ValidateForTest(candidate); err != nil {
		c.JSON(http.StatusBadRequest, dto.TestConnectionResponse{
			Success: false,
			Error:   "invalid configuration",
			Details: err.Error(),
		})
		return
	}

	if err := h.tester.Test(c.Request.Context(), candidate); err != nil {
		h.logger.Warn("database connection test failed",
			slog.String("host", candidate.Host),
			slog.String("database", candidate.Database),
			slog.Any("error", err),
		)
		c.JSON(http.StatusBadRequest, dto.TestConnectionResponse{
			Success: false,
			Error:   "connection test failed",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TestConnectionResponse{
		Success: true,
		Message: "connection successful",
	})
}

// SaveHandler validates, merges and persists a candidate configuration. The
// caller must re-authenticate with their own account password; an incorrect
// password leaves the stored record untouched.
// PUT /api/admin/db-config
func (h *DbConfigHandler) SaveHandler(c *gin.Context) {
	var req dto.SaveDbConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if req.ConfirmPassword == "" {
		httputil.HandleErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "confirmPassword is required"),
			h.logger,
		)
		return
	}

	user, ok := adminHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	verified, err := h.admin.VerifyPassword(c.Request.Context(), user.ID, req.ConfirmPassword)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if !verified {
		httputil.HandleErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrUnauthorized, "password confirmation failed"),
			h.logger,
		)
		return
	}

	candidate := req.ToDomain()

	if err := h.credentials.SaveCredentials(c.Request.Context(), candidate); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Audit line: actor and target only, never credential material.
	h.logger.Info("database credentials updated",
		slog.String("actor", user.Username),
		slog.String("host", candidate.Host),
		slog.String("database", candidate.Database),
	)

	masked, err := h.credentials.GetMaskedConfig(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SaveDbConfigResponse{
		MaskedDbConfig:  masked,
		Message:         "configuration saved",
		RequiresRestart: true,
	})
}
