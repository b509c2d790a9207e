package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func echoExecutor(tag string) Executor {
	return ExecutorFunc(func(_ context.Context, _ NodeConfig, _ map[string]any) (map[string]any, error) {
		return map[string]any{"from": tag}, nil
	})
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("custom")
	assert.False(t, ok)

	r.Register("custom", echoExecutor("one"))
	ex, ok := r.Lookup("custom")
	require.True(t, ok)

	out, err := ex.Execute(context.Background(), NodeConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "one", out["from"])
}

func TestRegistryLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", echoExecutor("one"))
	r.Register("custom", echoExecutor("two"))

	ex, ok := r.Lookup("custom")
	require.True(t, ok)

	out, err := ex.Execute(context.Background(), NodeConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "two", out["from"])
}

func TestBuiltins(t *testing.T) {
	r := Builtins()

	for _, tag := range []workflow.NodeType{workflow.NodeText, workflow.NodeImage, workflow.NodeVideo} {
		_, ok := r.Lookup(tag)
		assert.True(t, ok, "missing builtin for %q", tag)
	}
}

func TestPassthroughExecutor(t *testing.T) {
	r := Builtins()
	ex, ok := r.Lookup(workflow.NodeText)
	require.True(t, ok)

	cfg := NodeConfig{
		NodeID: "n1",
		Type:   workflow.NodeText,
		Attrs:  map[string]any{"label": "Greeting", "text": "hello", "color": "ignored"},
	}

	t.Run("returns typed fields", func(t *testing.T) {
		out, err := ex.Execute(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"label": "Greeting", "text": "hello"}, out)
	})

	t.Run("inputs override typed fields", func(t *testing.T) {
		out, err := ex.Execute(context.Background(), cfg, map[string]any{"text": "upstream", "extra": 1})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"label": "Greeting", "text": "upstream", "extra": 1}, out)
	})
}
