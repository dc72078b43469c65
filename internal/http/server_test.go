package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminHTTP "github.com/nexusai/backoffice/internal/admin/http"
	"github.com/nexusai/backoffice/internal/config"
	contentHTTP "github.com/nexusai/backoffice/internal/content/http"
	dbcredsHTTP "github.com/nexusai/backoffice/internal/dbcreds/http"
	siteHTTP "github.com/nexusai/backoffice/internal/site/http"
)

// newTestServer builds a server with nil usecases behind the handlers. The
// routes exercised here never reach a usecase: health is a closure, the site
// config handler is env-only, and unauthenticated admin requests are rejected
// by the session middleware before any handler runs.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		LogLevel:         "error",
		RateLimitEnabled: false,
		MetricsEnabled:   false,
	}

	handlers := Handlers{
		Auth:       adminHTTP.NewAuthHandler(nil, 3600, false, discardLogger()),
		DbConfig:   dbcredsHTTP.NewDbConfigHandler(nil, nil, nil, discardLogger()),
		Agents:     contentHTTP.NewAgentHandler(nil, discardLogger()),
		SiteConfig: siteHTTP.NewSiteConfigHandler(),
	}

	return NewServer(cfg, nil, handlers, nil, discardLogger())
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer(t)
	handler := server.GetHandler()
	require.NotNil(t, handler)

	t.Run("Success_Health", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "healthy")
	})

	t.Run("Success_PublicSiteConfig", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_AdminRoutesRequireSession", func(t *testing.T) {
		adminRoutes := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/admin/db-config"},
			{http.MethodPost, "/api/admin/db-config/test"},
			{http.MethodPut, "/api/admin/db-config"},
			{http.MethodPost, "/api/agents"},
			{http.MethodDelete, "/api/agents/00000000-0000-0000-0000-000000000000"},
		}

		for _, route := range adminRoutes {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(route.method, route.path, nil)
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
		}
	})

	t.Run("Error_UnknownRoute", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
