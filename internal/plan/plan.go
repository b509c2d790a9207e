package plan

import (
	"github.com/vk/flowgrid/internal/workflow"
)

// Context carries everything the runner needs to execute one node: its id
// and the upstream node ids it depends on, in discovery order.
type Context struct {
	NodeID    string   `json:"nodeId"`
	DependsOn []string `json:"dependsOn"`
}

// Plan is the validated, topologically ordered sequence of nodes for one
// run. When Valid is false, Errors explains why and Contexts is empty.
type Plan struct {
	Valid    bool      `json:"valid"`
	Errors   []string  `json:"errors"`
	Contexts []Context `json:"contexts"`
}

// Build computes a total execution order consistent with every edge using
// Kahn's algorithm. The zero-in-degree queue is seeded in node-slice order
// and consumed FIFO, which is the tie-break rule for independent roots and
// branches. An incomplete sort means the graph has a cycle and the plan is
// invalid; the validator should have rejected the graph already, so this is
// a defensive check.
func Build(nodes []workflow.Node, edges []workflow.Edge) Plan {
	indeg := make(map[string]int, len(nodes))
	succ := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		indeg[n.ID] = 0
	}
	for _, e := range edges {
		if _, ok := indeg[e.Source]; !ok {
			continue
		}
		if _, ok := indeg[e.Target]; !ok {
			continue
		}
		succ[e.Source] = append(succ[e.Source], e.Target)
		indeg[e.Target]++
	}

	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if indeg[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, next := range succ[id] {
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) < len(nodes) {
		return Plan{
			Valid:  false,
			Errors: []string{"workflow contains a cycle; no execution order exists"},
		}
	}

	contexts := make([]Context, 0, len(order))
	for _, id := range order {
		contexts = append(contexts, Context{NodeID: id, DependsOn: dependenciesOf(id, edges)})
	}
	return Plan{Valid: true, Errors: []string{}, Contexts: contexts}
}

// dependenciesOf collects the distinct source ids of every edge targeting
// the node, in the order the edges discover them.
func dependenciesOf(nodeID string, edges []workflow.Edge) []string {
	deps := []string{}
	seen := map[string]bool{}
	for _, e := range edges {
		if e.Target != nodeID || seen[e.Source] {
			continue
		}
		seen[e.Source] = true
		deps = append(deps, e.Source)
	}
	return deps
}
