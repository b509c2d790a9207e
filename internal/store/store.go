package store

import (
	"context"
	"errors"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/workflow"
)

var (
	// ErrNotFound is returned when a workflow or execution id is unknown.
	ErrNotFound = errors.New("store: not found")
)

// Store persists workflow definitions and execution reports. The Postgres
// implementation lives in the postgres subpackage; the in-memory one here is
// the fallback when no database is configured.
type Store interface {
	SaveWorkflow(ctx context.Context, wf *workflow.Workflow) error
	GetWorkflow(ctx context.Context, id string) (*workflow.Workflow, error)
	ListWorkflows(ctx context.Context) ([]workflow.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error

	SaveExecution(ctx context.Context, exec *engine.Execution) error
	GetExecution(ctx context.Context, id string) (*engine.Execution, error)
}
