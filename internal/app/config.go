package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// WorkflowPath is an HCL definition file for run-once mode.
	WorkflowPath string
	// Serve switches to HTTP server mode.
	Serve bool
	Port  int

	LogFormat string
	LogLevel  string

	// TimeoutMS is the per-node execution budget in milliseconds.
	// Zero means the engine default.
	TimeoutMS int
	// Concurrency is reserved configuration: accepted and carried through,
	// never consulted by the sequential execution loop.
	Concurrency int

	// DatabaseURL selects the Postgres store; empty falls back to memory.
	DatabaseURL string
	// RateLimitMax is requests per client per minute; zero disables limiting.
	RateLimitMax int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkflowPath == "" && !cfg.Serve {
		return nil, errors.New("either a workflow path or serve mode is required")
	}
	if cfg.TimeoutMS < 0 {
		return nil, errors.New("timeout must not be negative")
	}
	return &cfg, nil
}
