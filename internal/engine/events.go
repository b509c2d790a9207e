package engine

import "time"

// Event is one step of a node's lifecycle: queued, running, then exactly one
// of succeeded (StatusSuccess) or failed (StatusError).
type Event struct {
	NodeID    string         `json:"nodeId"`
	Status    Status         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Output    map[string]any `json:"output,omitempty"`
	Error     *ErrorInfo     `json:"error,omitempty"`
	Duration  time.Duration  `json:"duration,omitempty"`
	Logs      []string       `json:"logs,omitempty"`
}

// Sink receives lifecycle events synchronously with the execution loop.
// Delivery is unbuffered and strictly ordered per node, so an implementation
// must not block materially.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }
