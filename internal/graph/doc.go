// Package graph validates the structure of a workflow graph before planning.
//
// Validation has two independent halves. Structural checks walk the edge list
// and flag endpoints that reference missing nodes (hard errors), plus isolated
// nodes and duplicate parallel edges (warnings). Cycle detection runs a
// depth-first traversal with an on-stack set; the first cycle found is
// reported with the full node path that closes it.
//
// Validate is a pure function of its inputs: no side effects, and error and
// warning ordering follows the order of the input slices, so validating the
// same graph twice yields identical results.
package graph
