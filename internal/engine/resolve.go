package engine

import (
	"github.com/vk/flowgrid/internal/workflow"
)

// ResolveInputs computes a node's input mapping from the outputs its
// upstream nodes have produced so far.
//
// Every edge targeting the node contributes in edge order. An unscoped edge
// merges the whole source output into the mapping, so a later edge wins key
// collisions. An edge with a target port copies the single field named by
// the port's label; when the source output lacks that field the label is
// still set, to an explicit nil. Sources with no recorded output (never
// completed, or failed) contribute nothing.
//
// Pure function of its arguments; it never fails and may return an empty map.
func ResolveInputs(nodeID string, completed map[string]map[string]any, edges []workflow.Edge, ports []workflow.Port) map[string]any {
	inputs := make(map[string]any)

	var portsByID map[string]workflow.Port
	portFor := func(id string) (workflow.Port, bool) {
		if portsByID == nil {
			portsByID = make(map[string]workflow.Port, len(ports))
			for _, p := range ports {
				portsByID[p.ID] = p
			}
		}
		p, ok := portsByID[id]
		return p, ok
	}

	for _, e := range edges {
		if e.Target != nodeID {
			continue
		}
		out, ok := completed[e.Source]
		if !ok {
			continue
		}

		if e.TargetPort != "" {
			port, ok := portFor(e.TargetPort)
			if !ok {
				continue
			}
			if v, present := out[port.Label]; present {
				inputs[port.Label] = v
			} else {
				inputs[port.Label] = nil
			}
			continue
		}

		for k, v := range out {
			inputs[k] = v
		}
	}
	return inputs
}
