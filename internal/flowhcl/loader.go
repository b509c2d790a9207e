package flowhcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/flowgrid/internal/workflow"
)

type fileHCL struct {
	Workflows []workflowHCL `hcl:"workflow,block"`
}

type workflowHCL struct {
	ID      string    `hcl:"id,label"`
	Name    string    `hcl:"name,optional"`
	Version string    `hcl:"version,optional"`
	Nodes   []nodeHCL `hcl:"node,block"`
	Edges   []edgeHCL `hcl:"edge,block"`
	Ports   []portHCL `hcl:"port,block"`
}

type nodeHCL struct {
	ID    string         `hcl:"id,label"`
	Type  string         `hcl:"type"`
	Attrs hcl.Expression `hcl:"attrs,optional"`
}

type edgeHCL struct {
	ID         string `hcl:"id,label"`
	From       string `hcl:"from"`
	To         string `hcl:"to"`
	SourcePort string `hcl:"source_port,optional"`
	TargetPort string `hcl:"target_port,optional"`
	Label      string `hcl:"label,optional"`
}

type portHCL struct {
	ID        string `hcl:"id,label"`
	Node      string `hcl:"node"`
	Direction string `hcl:"direction"`
	Label     string `hcl:"label"`
	DataType  string `hcl:"data_type,optional"`
	Required  bool   `hcl:"required,optional"`
}

// Load parses a single workflow definition from an HCL file.
func Load(path string) (*workflow.Workflow, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", path, diags)
	}

	var parsed fileHCL
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", path, diags)
	}
	if len(parsed.Workflows) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one workflow block, found %d", path, len(parsed.Workflows))
	}

	return buildWorkflow(parsed.Workflows[0])
}

func buildWorkflow(def workflowHCL) (*workflow.Workflow, error) {
	wf := &workflow.Workflow{
		Metadata: workflow.Metadata{ID: def.ID, Name: def.Name, Version: def.Version},
		Nodes:    make([]workflow.Node, 0, len(def.Nodes)),
		Edges:    make([]workflow.Edge, 0, len(def.Edges)),
		Ports:    make([]workflow.Port, 0, len(def.Ports)),
	}
	if wf.Metadata.Name == "" {
		wf.Metadata.Name = def.ID
	}

	for _, n := range def.Nodes {
		attrs, err := decodeAttrs(n.Attrs)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		wf.Nodes = append(wf.Nodes, workflow.Node{
			ID:    n.ID,
			Type:  workflow.NodeType(n.Type),
			Attrs: attrs,
		})
	}

	for _, e := range def.Edges {
		wf.Edges = append(wf.Edges, workflow.Edge{
			ID:         e.ID,
			Source:     e.From,
			Target:     e.To,
			SourcePort: e.SourcePort,
			TargetPort: e.TargetPort,
			Label:      e.Label,
		})
	}

	for _, p := range def.Ports {
		switch p.Direction {
		case string(workflow.DirectionInput), string(workflow.DirectionOutput):
		default:
			return nil, fmt.Errorf("port %q: direction must be %q or %q, got %q",
				p.ID, workflow.DirectionInput, workflow.DirectionOutput, p.Direction)
		}
		wf.Ports = append(wf.Ports, workflow.Port{
			ID:        p.ID,
			NodeID:    p.Node,
			Direction: workflow.Direction(p.Direction),
			Label:     p.Label,
			DataType:  p.DataType,
			Required:  p.Required,
		})
	}

	return wf, nil
}

// decodeAttrs evaluates the attrs expression and converts the resulting cty
// object into a native Go map.
func decodeAttrs(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return map[string]any{}, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate attrs: %w", diags)
	}
	if val.IsNull() {
		return map[string]any{}, nil
	}

	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("convert attrs: %w", err)
	}
	attrs, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("attrs must be an object, got %T", native)
	}
	return attrs, nil
}
