// Package http provides the HTTP server, routing and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	adminHTTP "github.com/nexusai/backoffice/internal/admin/http"
	adminUseCase "github.com/nexusai/backoffice/internal/admin/usecase"
	"github.com/nexusai/backoffice/internal/config"
	contentHTTP "github.com/nexusai/backoffice/internal/content/http"
	dbcredsHTTP "github.com/nexusai/backoffice/internal/dbcreds/http"
	"github.com/nexusai/backoffice/internal/metrics"
	siteHTTP "github.com/nexusai/backoffice/internal/site/http"
)

// Handlers groups the route handlers the server exposes.
type Handlers struct {
	Auth       *adminHTTP.AuthHandler
	DbConfig   *dbcredsHTTP.DbConfigHandler
	Agents     *contentHTTP.AgentHandler
	SiteConfig *siteHTTP.SiteConfigHandler
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	cfg *config.Config,
	adminUC adminUseCase.UseCase,
	handlers Handlers,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if cfg.MetricsEnabled && meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}
	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	session := adminHTTP.SessionMiddleware(adminUC, logger)
	admin := adminHTTP.AdminRequired(logger)

	api := router.Group("/api")
	{
		// Public site surface
		api.GET("/config", handlers.SiteConfig.GetHandler)
		api.GET("/agents", handlers.Agents.ListHandler)
		api.GET("/agents/:id", handlers.Agents.GetHandler)
		api.GET("/agents/:id/prompts", handlers.Agents.ListPromptsHandler)
		api.GET("/agents/:id/active-prompt", handlers.Agents.GetActivePromptHandler)

		// Authentication
		api.POST("/login", handlers.Auth.LoginHandler)
		api.POST("/logout", handlers.Auth.LogoutHandler)
		api.GET("/user", session, handlers.Auth.CurrentUserHandler)

		// Content mutations
		api.POST("/agents", session, admin, handlers.Agents.CreateHandler)
		api.PUT("/agents/:id", session, admin, handlers.Agents.UpdateHandler)
		api.DELETE("/agents/:id", session, admin, handlers.Agents.DeleteHandler)
		api.POST("/agents/:id/prompts", session, admin, handlers.Agents.CreatePromptHandler)
		api.PUT("/agent-prompts/:id", session, admin, handlers.Agents.UpdatePromptHandler)
		api.DELETE("/agent-prompts/:id", session, admin, handlers.Agents.DeletePromptHandler)

		// Database credential management
		adminGroup := api.Group("/admin", session, admin)
		{
			adminGroup.GET("/db-config", handlers.DbConfig.GetHandler)
			adminGroup.POST("/db-config/test", handlers.DbConfig.TestHandler)
			adminGroup.PUT("/db-config", handlers.DbConfig.SaveHandler)
		}
	}

	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
