package store

import (
	"context"
	"sort"
	"sync"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/workflow"
)

// Memory is an ephemeral Store backed by maps behind a RWMutex. Records are
// deep-copied on the way in and out so callers can't mutate what the store
// holds through shared maps or slices.
type Memory struct {
	mu         sync.RWMutex
	workflows  map[string]workflow.Workflow
	executions map[string]engine.Execution
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		workflows:  make(map[string]workflow.Workflow),
		executions: make(map[string]engine.Execution),
	}
}

func (m *Memory) SaveWorkflow(_ context.Context, wf *workflow.Workflow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflows[wf.Metadata.ID] = cloneWorkflow(*wf)
	return nil
}

func (m *Memory) GetWorkflow(_ context.Context, id string) (*workflow.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wf, ok := m.workflows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneWorkflow(wf)
	return &out, nil
}

// ListWorkflows returns all stored workflows sorted by id, so listings are
// stable across calls.
func (m *Memory) ListWorkflows(_ context.Context) ([]workflow.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]workflow.Workflow, 0, len(m.workflows))
	for _, wf := range m.workflows {
		out = append(out, cloneWorkflow(wf))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metadata.ID < out[j].Metadata.ID })
	return out, nil
}

func (m *Memory) DeleteWorkflow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workflows[id]; !ok {
		return ErrNotFound
	}
	delete(m.workflows, id)
	return nil
}

func (m *Memory) SaveExecution(_ context.Context, exec *engine.Execution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executions[exec.ExecutionID] = cloneExecution(*exec)
	return nil
}

func (m *Memory) GetExecution(_ context.Context, id string) (*engine.Execution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exec, ok := m.executions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneExecution(exec)
	return &out, nil
}

func cloneWorkflow(wf workflow.Workflow) workflow.Workflow {
	out := wf
	if wf.Nodes != nil {
		out.Nodes = make([]workflow.Node, len(wf.Nodes))
		for i, n := range wf.Nodes {
			n.Attrs = cloneMap(n.Attrs)
			out.Nodes[i] = n
		}
	}
	if wf.Edges != nil {
		out.Edges = append([]workflow.Edge{}, wf.Edges...)
	}
	if wf.Ports != nil {
		out.Ports = append([]workflow.Port{}, wf.Ports...)
	}
	return out
}

func cloneExecution(exec engine.Execution) engine.Execution {
	out := exec
	if exec.Results != nil {
		out.Results = make([]engine.Result, len(exec.Results))
		for i, res := range exec.Results {
			res.Output = cloneMap(res.Output)
			if res.Error != nil {
				errCopy := *res.Error
				errCopy.Details = cloneMap(errCopy.Details)
				res.Error = &errCopy
			}
			if res.Logs != nil {
				res.Logs = append([]string{}, res.Logs...)
			}
			out.Results[i] = res
		}
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		return v
	}
}
