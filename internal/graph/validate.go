package graph

import (
	"fmt"
	"strings"

	"github.com/vk/flowgrid/internal/workflow"
)

// Result is the outcome of validating a workflow graph. Valid is true when
// no hard errors were found; warnings never invalidate a graph.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks a node/edge list for structural soundness and cycles.
// Dangling edge endpoints and cycles (self-loops included) are hard errors;
// isolated nodes and duplicate parallel edges are warnings.
func Validate(nodes []workflow.Node, edges []workflow.Edge) Result {
	res := Result{Errors: []string{}, Warnings: []string{}}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	// Structural checks run in edge order so the output is deterministic.
	connected := make(map[string]bool, len(nodes))
	seenPair := make(map[string]bool, len(edges))
	for _, e := range edges {
		if !known[e.Source] {
			res.Errors = append(res.Errors, fmt.Sprintf("edge %q references missing source node %q", e.ID, e.Source))
		}
		if !known[e.Target] {
			res.Errors = append(res.Errors, fmt.Sprintf("edge %q references missing target node %q", e.ID, e.Target))
		}
		connected[e.Source] = true
		connected[e.Target] = true

		pair := e.Source + "\x00" + e.Target
		if seenPair[pair] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate edge from %q to %q", e.Source, e.Target))
		}
		seenPair[pair] = true
	}

	if len(nodes) > 1 {
		for _, n := range nodes {
			if !connected[n.ID] {
				res.Warnings = append(res.Warnings, fmt.Sprintf("node %q is isolated", n.ID))
			}
		}
	}

	if cycle := findCycle(nodes, edges); len(cycle) > 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("cycle detected: %s", strings.Join(cycle, " -> ")))
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// findCycle runs a depth-first traversal over the graph and returns the node
// path of the first cycle it encounters, from the repeated node's first
// occurrence back to its recurrence. An empty slice means the graph is acyclic.
func findCycle(nodes []workflow.Node, edges []workflow.Edge) []string {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	// Successors in edge order; edges with a missing endpoint are already
	// hard errors and take no part in traversal.
	succ := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if known[e.Source] && known[e.Target] {
			succ[e.Source] = append(succ[e.Source], e.Target)
		}
	}

	done := make(map[string]bool, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var path []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		if onStack[id] {
			// The path from this node's first occurrence to here closes the cycle.
			for i, p := range path {
				if p == id {
					cycle = append(append(cycle, path[i:]...), id)
					return true
				}
			}
			return true
		}
		if done[id] {
			return false
		}

		onStack[id] = true
		path = append(path, id)
		for _, next := range succ[id] {
			if visit(next) {
				return true
			}
		}
		path = path[:len(path)-1]
		delete(onStack, id)
		done[id] = true
		return false
	}

	for _, n := range nodes {
		if !done[n.ID] && visit(n.ID) {
			return cycle
		}
	}
	return nil
}
