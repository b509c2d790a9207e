package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/graph"
	"github.com/vk/flowgrid/internal/plan"
	"github.com/vk/flowgrid/internal/workflow"
)

// DefaultTimeout bounds a single node's dispatch unless Options overrides it.
const DefaultTimeout = 30 * time.Second

// Options configures one Runner.
type Options struct {
	// Timeout is the per-node dispatch budget. Zero means DefaultTimeout.
	Timeout time.Duration
	// Concurrency is accepted for forward compatibility but is never
	// consulted: execution is strictly sequential. Reserved configuration,
	// not an implemented fan-out.
	Concurrency int
	// Sink receives lifecycle events synchronously. Optional.
	Sink Sink
	// Logger defaults to the logger carried by the run context, falling back
	// to slog.Default.
	Logger *slog.Logger
	// Scheduler defaults to the sequential walk.
	Scheduler Scheduler
}

// Runner executes workflows against an injected executor registry. Each
// constructed Runner owns a unique execution id, independent of the
// workflow it runs.
type Runner struct {
	registry    *Registry
	timeout     time.Duration
	concurrency int
	sink        Sink
	logger      *slog.Logger
	scheduler   Scheduler
	executionID string
}

// NewRunner builds a Runner for one run.
func NewRunner(registry *Registry, opts Options) *Runner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = sequential{}
	}
	return &Runner{
		registry:    registry,
		timeout:     timeout,
		concurrency: opts.Concurrency,
		sink:        opts.Sink,
		logger:      opts.Logger,
		scheduler:   scheduler,
		executionID: uuid.NewString(),
	}
}

// ExecutionID returns the id this runner stamps on its execution report.
func (r *Runner) ExecutionID() string { return r.executionID }

// Run executes the workflow and returns the complete execution report. It
// never panics outward and never returns an error: planning failures become
// synthetic results, node failures are recorded per node, and a fault in the
// orchestration loop itself is recovered into a single runner-tagged result.
func (r *Runner) Run(ctx context.Context, wf *workflow.Workflow) (exec *Execution) {
	if r.logger == nil {
		r.logger = ctxlog.FromContext(ctx)
	}

	exec = &Execution{
		WorkflowID:  wf.Metadata.ID,
		ExecutionID: r.executionID,
		Status:      StatusRunning,
		Results:     []Result{},
		StartedAt:   time.Now().UTC(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("workflow run aborted by runner fault", "workflow", wf.Metadata.ID, "panic", rec)
			exec.Results = append(exec.Results, Result{
				NodeID: "runner",
				Status: StatusError,
				Error:  &ErrorInfo{Message: fmt.Sprintf("workflow runner failure: %v", rec), Code: CodeRunner},
			})
		}
		exec.Status = StatusSuccess
		for _, res := range exec.Results {
			if res.Status == StatusError {
				exec.Status = StatusError
				break
			}
		}
		exec.CompletedAt = time.Now().UTC()
	}()

	p := r.buildPlan(wf)
	if !p.Valid {
		r.logger.Warn("workflow rejected at plan stage", "workflow", wf.Metadata.ID, "errors", p.Errors)
		for _, msg := range p.Errors {
			exec.Results = append(exec.Results, Result{
				NodeID: "plan",
				Status: StatusError,
				Error:  &ErrorInfo{Message: msg, Code: CodePlan},
			})
		}
		return exec
	}

	nodesByID := make(map[string]workflow.Node, len(wf.Nodes))
	for _, n := range wf.Nodes {
		nodesByID[n.ID] = n
	}

	// Results are created pending, in plan order, before anything runs.
	exec.Results = make([]Result, len(p.Contexts))
	resultFor := make(map[string]*Result, len(p.Contexts))
	for i, c := range p.Contexts {
		exec.Results[i] = Result{NodeID: c.NodeID, Status: StatusPending}
		resultFor[c.NodeID] = &exec.Results[i]
	}

	completed := make(map[string]map[string]any, len(p.Contexts))
	r.scheduler.Schedule(ctx, p.Contexts, func(ctx context.Context, c plan.Context) {
		r.runNode(ctx, wf, nodesByID[c.NodeID], resultFor[c.NodeID], completed)
	})

	return exec
}

// buildPlan validates the graph and, when it is sound, computes the
// execution order. Validator errors short-circuit planning.
func (r *Runner) buildPlan(wf *workflow.Workflow) plan.Plan {
	validation := graph.Validate(wf.Nodes, wf.Edges)
	for _, w := range validation.Warnings {
		r.logger.Warn("graph warning", "workflow", wf.Metadata.ID, "warning", w)
	}
	if !validation.Valid {
		return plan.Plan{Valid: false, Errors: validation.Errors}
	}
	return plan.Build(wf.Nodes, wf.Edges)
}

// runNode drives one node through queued -> running -> success|error and
// records the outcome. Failures are recorded, logged and published, never
// propagated: the walk continues with the next planned node.
func (r *Runner) runNode(ctx context.Context, wf *workflow.Workflow, node workflow.Node, res *Result, completed map[string]map[string]any) {
	r.publish(Event{NodeID: node.ID, Status: StatusQueued, Timestamp: time.Now().UTC()})

	res.Status = StatusRunning
	res.StartedAt = time.Now().UTC()
	r.publish(Event{NodeID: node.ID, Status: StatusRunning, Timestamp: res.StartedAt})

	inputs := ResolveInputs(node.ID, completed, wf.Edges, wf.Ports)

	var output map[string]any
	var err error
	if executor, ok := r.registry.Lookup(node.Type); ok {
		output, err = r.dispatch(ctx, executor, NodeConfig{NodeID: node.ID, Type: node.Type, Attrs: node.Attrs}, inputs)
	} else {
		err = Errorf("no executor registered for node type %q", node.Type)
	}

	res.CompletedAt = time.Now().UTC()
	res.Duration = res.CompletedAt.Sub(res.StartedAt)

	if err != nil {
		res.Status = StatusError
		res.Error = errorInfoFrom(err)
		res.Logs = append(res.Logs, fmt.Sprintf("node %s failed: %s", node.ID, err))
		r.logger.Error("node execution failed", "workflow", wf.Metadata.ID, "node", node.ID, "error", err)
		r.publish(Event{
			NodeID:    node.ID,
			Status:    StatusError,
			Timestamp: res.CompletedAt,
			Error:     res.Error,
			Duration:  res.Duration,
			Logs:      res.Logs,
		})
		return
	}

	res.Status = StatusSuccess
	res.Output = output
	completed[node.ID] = output
	r.logger.Debug("node execution succeeded", "workflow", wf.Metadata.ID, "node", node.ID, "duration", res.Duration)
	r.publish(Event{
		NodeID:    node.ID,
		Status:    StatusSuccess,
		Timestamp: res.CompletedAt,
		Output:    output,
		Duration:  res.Duration,
	})
}

type dispatchOutcome struct {
	output map[string]any
	err    error
}

// dispatch races the executor against the per-run timeout. On timeout the
// in-flight work is abandoned, not interrupted: the goroutine may still
// finish, and its late result lands in the buffered channel and is
// discarded.
func (r *Runner) dispatch(ctx context.Context, executor Executor, cfg NodeConfig, inputs map[string]any) (map[string]any, error) {
	done := make(chan dispatchOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- dispatchOutcome{err: Errorf("executor panic: %v", rec)}
			}
		}()
		output, err := executor.Execute(ctx, cfg, inputs)
		done <- dispatchOutcome{output: output, err: err}
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case outcome := <-done:
		return outcome.output, outcome.err
	case <-timer.C:
		return nil, Errorf("node execution timeout after %dms", r.timeout.Milliseconds())
	}
}

func (r *Runner) publish(e Event) {
	if r.sink != nil {
		r.sink.Publish(e)
	}
}
