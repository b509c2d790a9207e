package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/store"
)

// Config holds the server's collaborators and tunables.
type Config struct {
	Store    store.Store
	Registry *engine.Registry
	Logger   *slog.Logger
	// Timeout is the per-node budget passed to each runner. Zero means the
	// engine default.
	Timeout time.Duration
	// RateLimitMax is the allowed number of requests per client per minute.
	// Zero disables rate limiting.
	RateLimitMax int
}

// Server wires the fiber app with routes against a store and a registry.
type Server struct {
	app      *fiber.App
	store    store.Store
	registry *engine.Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// New builds a ready-to-listen server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:      fiber.New(),
		store:    cfg.Store,
		registry: cfg.Registry,
		logger:   logger,
		timeout:  cfg.Timeout,
	}

	if cfg.RateLimitMax > 0 {
		s.app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: time.Minute,
		}))
	}

	s.routes()
	return s
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
