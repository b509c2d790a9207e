package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func nodes(ids ...string) []workflow.Node {
	out := make([]workflow.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, workflow.Node{ID: id, Type: workflow.NodeText})
	}
	return out
}

func edge(id, source, target string) workflow.Edge {
	return workflow.Edge{ID: id, Source: source, Target: target}
}

func TestValidateAcyclic(t *testing.T) {
	res := Validate(
		nodes("a", "b", "c"),
		[]workflow.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")},
	)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateCycle(t *testing.T) {
	t.Run("two node cycle", func(t *testing.T) {
		res := Validate(
			nodes("a", "b"),
			[]workflow.Edge{edge("e1", "a", "b"), edge("e2", "b", "a")},
		)

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "cycle detected: a -> b -> a", res.Errors[0])
	})

	t.Run("self loop", func(t *testing.T) {
		res := Validate(nodes("a"), []workflow.Edge{edge("e1", "a", "a")})

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "cycle detected: a -> a", res.Errors[0])
	})

	t.Run("cycle behind a valid prefix", func(t *testing.T) {
		res := Validate(
			nodes("a", "b", "c"),
			[]workflow.Edge{edge("e1", "a", "b"), edge("e2", "b", "c"), edge("e3", "c", "b")},
		)

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "cycle detected: b -> c -> b", res.Errors[0])
	})
}

func TestValidateDanglingEndpoints(t *testing.T) {
	res := Validate(
		nodes("a"),
		[]workflow.Edge{edge("e1", "a", "ghost"), edge("e2", "phantom", "a")},
	)

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, `edge "e1" references missing target node "ghost"`, res.Errors[0])
	assert.Equal(t, `edge "e2" references missing source node "phantom"`, res.Errors[1])
}

func TestValidateWarnings(t *testing.T) {
	t.Run("isolated node", func(t *testing.T) {
		res := Validate(
			nodes("a", "b", "lonely"),
			[]workflow.Edge{edge("e1", "a", "b")},
		)

		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, `node "lonely" is isolated`, res.Warnings[0])
	})

	t.Run("single node is not isolated", func(t *testing.T) {
		res := Validate(nodes("a"), nil)

		assert.True(t, res.Valid)
		assert.Empty(t, res.Warnings)
	})

	t.Run("duplicate parallel edges", func(t *testing.T) {
		res := Validate(
			nodes("a", "b"),
			[]workflow.Edge{edge("e1", "a", "b"), edge("e2", "a", "b")},
		)

		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, `duplicate edge from "a" to "b"`, res.Warnings[0])
	})

	t.Run("opposite direction is not a duplicate but a cycle", func(t *testing.T) {
		res := Validate(
			nodes("a", "b"),
			[]workflow.Edge{edge("e1", "a", "b"), edge("e2", "b", "a")},
		)

		assert.Empty(t, res.Warnings)
		assert.False(t, res.Valid)
	})
}

func TestValidateDeterministic(t *testing.T) {
	ns := nodes("a", "b", "c", "d")
	es := []workflow.Edge{
		edge("e1", "a", "b"),
		edge("e2", "b", "ghost"),
		edge("e3", "a", "b"),
		edge("e4", "c", "c"),
	}

	first := Validate(ns, es)
	second := Validate(ns, es)

	assert.Equal(t, first, second)
}
