package engine

import "fmt"

// Stable error codes carried by execution results.
const (
	// CodeExecution is the default code for any node-level failure.
	CodeExecution = "EXECUTION_ERROR"
	// CodePlan marks synthetic results produced when planning itself failed.
	CodePlan = "PLAN_ERROR"
	// CodeRunner marks the synthetic result produced when the orchestration
	// loop itself broke, as opposed to a single node failing.
	CodeRunner = "RUNNER_ERROR"
)

// Error is a node execution failure carrying a stable code and optional
// structured details. Executors may return any error; returning *Error lets
// them control the code surfaced in the run report.
type Error struct {
	Message string
	Code    string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an *Error with the default execution code.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Code: CodeExecution}
}
