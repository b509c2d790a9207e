package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/flowhcl"
	"github.com/vk/flowgrid/internal/server"
	"github.com/vk/flowgrid/internal/workflow"
)

// Run executes the configured mode: serve the HTTP API, or load one
// definition file, run it, and print the execution report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Serve {
		return a.serve()
	}
	return a.runOnce(ctx)
}

func (a *App) serve() error {
	srv := server.New(server.Config{
		Store:        a.store,
		Registry:     a.registry,
		Logger:       a.logger,
		Timeout:      time.Duration(a.config.TimeoutMS) * time.Millisecond,
		RateLimitMax: a.config.RateLimitMax,
	})
	return srv.Listen(fmt.Sprintf(":%d", a.config.Port))
}

func (a *App) runOnce(ctx context.Context) error {
	wf, err := flowhcl.Load(a.config.WorkflowPath)
	if err != nil {
		return fmt.Errorf("failed to load workflow definition: %w", err)
	}
	if errs := workflow.Check(wf); len(errs) > 0 {
		return fmt.Errorf("workflow failed structural validation: %v", errs)
	}
	workflow.Normalize(wf)

	// Lifecycle events become log lines in CLI mode.
	sink := engine.SinkFunc(func(e engine.Event) {
		a.logger.Info("node lifecycle", "node", e.NodeID, "status", string(e.Status))
	})

	runner := engine.NewRunner(a.registry, engine.Options{
		Timeout:     time.Duration(a.config.TimeoutMS) * time.Millisecond,
		Concurrency: a.config.Concurrency,
		Sink:        sink,
		Logger:      a.logger,
	})

	a.logger.Info("Starting workflow execution.", "workflow", wf.Metadata.ID, "execution", runner.ExecutionID())
	exec := runner.Run(ctx, wf)

	if err := a.store.SaveExecution(ctx, exec); err != nil {
		a.logger.Warn("Failed to persist execution report.", "error", err)
	}

	report, err := json.MarshalIndent(exec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode execution report: %w", err)
	}
	fmt.Fprintln(a.outW, string(report))

	if exec.Status == engine.StatusError {
		return fmt.Errorf("workflow %s finished with status error", wf.Metadata.ID)
	}
	a.logger.Info("Execution finished.", "workflow", wf.Metadata.ID, "status", string(exec.Status))
	return nil
}
