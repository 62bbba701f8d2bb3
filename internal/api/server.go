// Package api serves the concierge over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Veraticus/tech-concierge/internal/concierge"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const shutdownTimeout = 10 * time.Second

// Server exposes the agent, catalog and product search routes.
type Server struct {
	echo     *echo.Echo
	agent    *concierge.Agent
	searcher service.ProductSearcher
	logger   *slog.Logger
	addr     string
}

// NewServer builds the HTTP server and registers every route.
func NewServer(addr string, agent *concierge.Agent, searcher service.ProductSearcher, logger *slog.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))

	s := &Server{
		echo:     e,
		agent:    agent,
		searcher: searcher,
		logger:   logger,
		addr:     addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.health)

	agent := s.echo.Group("/api/agent")
	agent.POST("/chat", s.chat)
	agent.POST("/recommend", s.recommend)
	agent.POST("/extract", s.extract)

	s.echo.GET("/api/bundles", s.listBundles)
	s.echo.GET("/api/bundles/:id", s.getBundle)

	s.echo.GET("/api/bestbuy/search", s.searchProducts)
	s.echo.GET("/api/bestbuy/stores", s.findStores)

	s.echo.GET("/api/sessions/:id", s.getSession)
	s.echo.DELETE("/api/sessions/:id", s.deleteSession)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) health(c echo.Context) error {
	return ok(c, map[string]string{"status": "ok"})
}
