package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkflowPath(t *testing.T) {
	t.Run("positional argument", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"flow.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "flow.hcl", cfg.WorkflowPath)
		assert.False(t, cfg.Serve)
	})

	t.Run("flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-workflow", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.WorkflowPath)
	})
}

func TestParseNoArgsShowsUsage(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseServeMode(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg, exit, err := Parse([]string{"-serve"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.True(t, cfg.Serve)
	assert.Equal(t, 8080, cfg.Port)
}

func TestParseEnvValidation(t *testing.T) {
	t.Run("invalid PORT", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		_, _, err := Parse([]string{"-serve"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("valid PORT", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("RATE_LIMIT_MAX", "")
		cfg, _, err := Parse([]string{"-serve"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
	})

	t.Run("invalid RATE_LIMIT_MAX", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("RATE_LIMIT_MAX", "-3")
		_, _, err := Parse([]string{"-serve"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RATE_LIMIT_MAX")
	})
}

func TestParseRejectsBadLogOptions(t *testing.T) {
	_, _, err := Parse([]string{"-log-format", "yaml", "flow.hcl"}, &bytes.Buffer{})
	require.Error(t, err)

	_, _, err = Parse([]string{"-log-level", "loud", "flow.hcl"}, &bytes.Buffer{})
	require.Error(t, err)
}
