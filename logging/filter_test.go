package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldFilterAllowlist(t *testing.T) {
	p, err := NewFieldFilterProcessor(WithAllowedFields("user_id"))
	require.NoError(t, err)

	out, err := p.Process("test", "info", EventDict{
		"event":     "login",
		"level":     "info",
		"timestamp": "2026-08-25T00:00:00Z",
		"user_id":   "u-1",
		"debug_key": "noise",
	})
	require.NoError(t, err)

	assert.Equal(t, "login", out["event"])
	assert.Equal(t, "info", out["level"])
	assert.Equal(t, "2026-08-25T00:00:00Z", out["timestamp"])
	assert.Equal(t, "u-1", out["user_id"])
	assert.NotContains(t, out, "debug_key")
}

func TestFieldFilterAllowlistNoEssentials(t *testing.T) {
	p, err := NewFieldFilterProcessor(
		WithAllowedFields("user_id"),
		WithPreserveEssential(false),
	)
	require.NoError(t, err)

	out, err := p.Process("test", "info", EventDict{
		"event":   "login",
		"level":   "info",
		"user_id": "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, EventDict{"user_id": "u-1"}, out)
}

func TestFieldFilterBlocklist(t *testing.T) {
	p, err := NewFieldFilterProcessor(WithBlockedFields("internal_state", "trace_dump"))
	require.NoError(t, err)

	out, err := p.Process("test", "info", EventDict{
		"event":          "login",
		"internal_state": "secret",
		"user_id":        "u-1",
	})
	require.NoError(t, err)

	assert.NotContains(t, out, "internal_state")
	assert.Equal(t, "login", out["event"])
	assert.Equal(t, "u-1", out["user_id"])
}

func TestFieldFilterConfigErrors(t *testing.T) {
	_, err := NewFieldFilterProcessor(
		WithAllowedFields("a"),
		WithBlockedFields("b"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot specify both")

	_, err = NewFieldFilterProcessor()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
