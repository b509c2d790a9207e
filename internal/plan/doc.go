// Package plan turns a validated workflow graph into an execution plan: a
// total order over the nodes consistent with every edge, plus a per-node
// dependency set. Plans are ephemeral and rebuilt on every run.
package plan
