package engine

import (
	"context"

	"github.com/vk/flowgrid/internal/workflow"
)

// passthrough is the built-in executor family for text/image/video nodes:
// it returns the node's own typed attribute fields merged with, and
// overridden by, the resolved inputs.
type passthrough struct {
	fields []string
}

func (p passthrough) Execute(_ context.Context, cfg NodeConfig, inputs map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(p.fields)+len(inputs))
	for _, f := range p.fields {
		if v, ok := cfg.Attrs[f]; ok {
			out[f] = v
		}
	}
	for k, v := range inputs {
		out[k] = v
	}
	return out, nil
}

// Builtins returns a registry pre-populated with the built-in node types.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register(workflow.NodeText, passthrough{fields: []string{"label", "text"}})
	r.Register(workflow.NodeImage, passthrough{fields: []string{"label", "imageUrl"}})
	r.Register(workflow.NodeVideo, passthrough{fields: []string{"label", "videoUrl"}})
	return r
}
