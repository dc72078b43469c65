package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexusai/backoffice/internal/admin/domain"
	adminUseCase "github.com/nexusai/backoffice/internal/admin/usecase"
	"github.com/nexusai/backoffice/internal/httputil"
)

// SessionCookieName is the cookie carrying the plain session token.
const SessionCookieName = "backoffice_session"

// sessionToken extracts the plain session token from the request: the session
// cookie first, then a Bearer Authorization header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	const bearerPrefix = "bearer "
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len(bearerPrefix) &&
		strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return authHeader[len(bearerPrefix):]
	}

	return ""
}

// SessionMiddleware authenticates the request's session token and stores the
// user in the request context. Requests without a valid session get 401.
func SessionMiddleware(uc adminUseCase.UseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			httputil.HandleErrorGin(c, domain.ErrSessionInvalid, logger)
			c.Abort()
			return
		}

		user, err := uc.Authenticate(c.Request.Context(), token)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// AdminRequired rejects authenticated users without admin privileges. Must be
// used after SessionMiddleware.
func AdminRequired(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, domain.ErrSessionInvalid, logger)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			logger.Warn("non-admin user attempted admin endpoint",
				slog.String("username", user.Username),
				slog.String("path", c.Request.URL.Path),
			)
			httputil.HandleErrorGin(c, domain.ErrNotAdmin, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
