package engine

import "time"

// Status of a node result or a whole execution.
type Status string

const (
	StatusPending Status = "pending"
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	// StatusCancelled is reserved for a future cancellation signal; the
	// runner never produces it today.
	StatusCancelled Status = "cancelled"
)

// ErrorInfo is the serializable form of a node failure.
type ErrorInfo struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Result records one node's outcome. Exactly one of Output or Error is set
// once the result reaches a terminal status.
type Result struct {
	NodeID      string         `json:"nodeId"`
	Status      Status         `json:"status"`
	Output      map[string]any `json:"output,omitempty"`
	Error       *ErrorInfo     `json:"error,omitempty"`
	StartedAt   time.Time      `json:"startedAt,omitzero"`
	CompletedAt time.Time      `json:"completedAt,omitzero"`
	Duration    time.Duration  `json:"duration,omitempty"`
	Logs        []string       `json:"logs,omitempty"`
}

// Execution is the aggregate report of one full run. Status is success iff
// no result is an error.
type Execution struct {
	WorkflowID  string    `json:"workflowId"`
	ExecutionID string    `json:"executionId"`
	Status      Status    `json:"status"`
	Results     []Result  `json:"results"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}

// errorInfoFrom normalizes any executor error into an ErrorInfo, keeping the
// error's own code when it carries one and falling back to CodeExecution.
func errorInfoFrom(err error) *ErrorInfo {
	if execErr, ok := err.(*Error); ok {
		code := execErr.Code
		if code == "" {
			code = CodeExecution
		}
		return &ErrorInfo{Message: execErr.Message, Code: code, Details: execErr.Details}
	}
	return &ErrorInfo{Message: err.Error(), Code: CodeExecution}
}
