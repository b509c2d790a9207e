package engine

import (
	"context"
	"sync"

	"github.com/vk/flowgrid/internal/workflow"
)

// NodeConfig is what an executor knows about the node it is running: its id,
// its type tag, and the node's attribute record.
type NodeConfig struct {
	NodeID string
	Type   workflow.NodeType
	Attrs  map[string]any
}

// Executor performs one node's work given its resolved inputs and returns
// the node's output record.
type Executor interface {
	Execute(ctx context.Context, cfg NodeConfig, inputs map[string]any) (map[string]any, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, cfg NodeConfig, inputs map[string]any) (map[string]any, error)

func (f ExecutorFunc) Execute(ctx context.Context, cfg NodeConfig, inputs map[string]any) (map[string]any, error) {
	return f(ctx, cfg, inputs)
}

// Registry maps node type tags to executors. It is an explicit value owned
// by whoever constructs the runner, not process-global state, so runs stay
// isolated and tests can swap in doubles freely.
type Registry struct {
	mu        sync.RWMutex
	executors map[workflow.NodeType]Executor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[workflow.NodeType]Executor)}
}

// Register binds an executor to a type tag. Registering the same tag again
// overwrites the previous executor: last write wins.
func (r *Registry) Register(t workflow.NodeType, ex Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[t] = ex
}

// Lookup returns the executor for a type tag, or false when none is
// registered. Absence is a node-level execution error, never a crash.
func (r *Registry) Lookup(t workflow.NodeType) (Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.executors[t]
	return ex, ok
}
