package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	adminUseCase "github.com/nexusai/backoffice/internal/admin/usecase"
	"github.com/nexusai/backoffice/internal/httputil"
	appValidation "github.com/nexusai/backoffice/internal/validation"
)

// AuthHandler handles login, logout and current-user requests.
type AuthHandler struct {
	useCase      adminUseCase.UseCase
	sessionTTL   int
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. sessionTTLSeconds bounds the
// session cookie lifetime; cookieSecure should be set behind TLS.
func NewAuthHandler(
	useCase adminUseCase.UseCase,
	sessionTTLSeconds int,
	cookieSecure bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		useCase:      useCase,
		sessionTTL:   sessionTTLSeconds,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginHandler verifies credentials and issues a session.
// POST /api/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	token, user, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.SetCookie(SessionCookieName, token, h.sessionTTL, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// LogoutHandler deletes the caller's session.
// POST /api/logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		if err := h.useCase.Logout(c.Request.Context(), token); err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Status(http.StatusNoContent)
}

// CurrentUserHandler returns the session's user.
// GET /api/user (session required)
func (h *AuthHandler) CurrentUserHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}
