// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/pantoken/internal/auth/http"
	"github.com/allisson/pantoken/internal/config"
	"github.com/allisson/pantoken/internal/metrics"
	tokenizationHTTP "github.com/allisson/pantoken/internal/tokenization/http"
)

// Pinger reports whether the record store is reachable. *sql.DB satisfies it, and so
// does the in-memory repository.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	db     Pinger
	logger *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	db Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// newHTTPServer applies the timeouts shared by the API and metrics listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the gin engine with every middleware and route.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenizationHandler *tokenizationHTTP.TokenizationHandler,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.Use(BodyLimitMiddleware(int64(cfg.MaxRequestBodyBytes)))

	router.GET("/", s.indexHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	adminAuth := authHTTP.AdminCredentialMiddleware(s.logger)

	v1 := router.Group("/v1")
	{
		tokens := v1.Group("/tokens")
		tokens.POST("", tokenizationHandler.TokenizeHandler)
		tokens.POST("/reveal", adminAuth, tokenizationHandler.RevealHandler)
		tokens.GET("/:token", tokenizationHandler.DescribeHandler)
	}

	// Unversioned routes kept for existing clients.
	router.POST("/encrypt", tokenizationHandler.LegacyEncryptHandler)
	router.POST("/decrypt", adminAuth, tokenizationHandler.LegacyDecryptHandler)
	router.GET("/token/:token", tokenizationHandler.DescribeHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "pantoken",
		"endpoints": []string{
			"POST /v1/tokens",
			"GET /v1/tokens/:token",
			"POST /v1/tokens/reveal",
			"POST /encrypt",
			"POST /decrypt",
			"GET /token/:token",
		},
	})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the record store answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
