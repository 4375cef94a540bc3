package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestSessionIDRoundTrip(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-1")
	assert.Equal(t, "sess-1", SessionIDFromContext(ctx))
	assert.Empty(t, SessionIDFromContext(context.Background()))
}

func TestMergeContextValues(t *testing.T) {
	ctx := WithSessionID(WithRequestID(context.Background(), "req-1"), "sess-1")

	event := EventDict{"event": "msg"}
	WithEventContext(ctx, event)

	out, err := mergeContextValues.Process("test", "info", event)
	require.NoError(t, err)
	assert.Equal(t, "req-1", out["request_id"])
	assert.Equal(t, "sess-1", out["session_id"])
}

func TestMergeContextValuesCallerWins(t *testing.T) {
	ctx := WithRequestID(context.Background(), "from-context")

	event := EventDict{"event": "msg", "request_id": "from-caller"}
	WithEventContext(ctx, event)

	out, err := mergeContextValues.Process("test", "info", event)
	require.NoError(t, err)
	assert.Equal(t, "from-caller", out["request_id"])
}

func TestMergeContextValuesNoIDs(t *testing.T) {
	event := EventDict{"event": "msg"}
	WithEventContext(context.Background(), event)

	out, err := mergeContextValues.Process("test", "info", event)
	require.NoError(t, err)
	assert.NotContains(t, out, "request_id")
	assert.NotContains(t, out, "session_id")
}
