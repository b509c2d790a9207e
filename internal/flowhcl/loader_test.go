package flowhcl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func writeDefinition(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflow.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDefinition(t, `
workflow "demo" {
  name    = "Demo flow"
  version = "1"

  node "a" {
    type  = "text"
    attrs = { label = "A", text = "hello", retries = 3, tags = ["x", "y"] }
  }

  node "b" {
    type = "image"
  }

  port "p1" {
    node      = "b"
    direction = "input"
    label     = "text"
  }

  edge "e1" {
    from        = "a"
    to          = "b"
    target_port = "p1"
  }
}
`)

	wf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", wf.Metadata.ID)
	assert.Equal(t, "Demo flow", wf.Metadata.Name)
	assert.Equal(t, "1", wf.Metadata.Version)

	require.Len(t, wf.Nodes, 2)
	a := wf.Nodes[0]
	assert.Equal(t, workflow.NodeText, a.Type)
	assert.Equal(t, "hello", a.Attrs["text"])
	assert.Equal(t, float64(3), a.Attrs["retries"])
	assert.Equal(t, []any{"x", "y"}, a.Attrs["tags"])

	// A node without attrs gets an empty, non-nil map.
	assert.NotNil(t, wf.Nodes[1].Attrs)
	assert.Empty(t, wf.Nodes[1].Attrs)

	require.Len(t, wf.Edges, 1)
	assert.Equal(t, "a", wf.Edges[0].Source)
	assert.Equal(t, "b", wf.Edges[0].Target)
	assert.Equal(t, "p1", wf.Edges[0].TargetPort)

	require.Len(t, wf.Ports, 1)
	assert.Equal(t, workflow.DirectionInput, wf.Ports[0].Direction)
	assert.Equal(t, "text", wf.Ports[0].Label)
}

func TestLoadRejectsBadDirection(t *testing.T) {
	path := writeDefinition(t, `
workflow "demo" {
  node "a" { type = "text" }
  port "p1" {
    node      = "a"
    direction = "sideways"
    label     = "text"
  }
}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "direction")
}

func TestLoadRejectsMultipleWorkflows(t *testing.T) {
	path := writeDefinition(t, `
workflow "one" {}
workflow "two" {}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one workflow block")
}

func TestLoadRejectsInvalidHCL(t *testing.T) {
	path := writeDefinition(t, `workflow "broken" {`)

	_, err := Load(path)
	assert.Error(t, err)
}
