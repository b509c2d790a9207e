// Package engine executes validated workflow graphs.
//
// A Runner drives one run: it validates the graph, builds the execution
// plan, then walks the planned nodes strictly in order. For each node it
// resolves inputs from upstream outputs, looks the node's type up in the
// injected Registry, dispatches the executor against a per-run timeout, and
// records the outcome. A node failure never halts the walk; downstream nodes
// simply see whatever inputs their surviving upstreams produced. The caller
// always gets back a complete Execution report — failures live in the data,
// never in a panic or an error escaping Run.
//
// Lifecycle events (queued, running, then exactly one of succeeded/failed
// per node) are delivered synchronously to an optional Sink in strict causal
// order, with no buffering.
package engine
