package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalProcessor(t *testing.T) {
	isError := func(event EventDict) bool {
		return event["level"] == "error"
	}
	mark := func(key string) Processor {
		return ProcessorFunc(func(_, _ string, event EventDict) (EventDict, error) {
			event[key] = true
			return event, nil
		})
	}

	t.Run("then branch", func(t *testing.T) {
		p := NewConditionalProcessor(isError, mark("then"), mark("else"))
		out, err := p.Process("test", "error", EventDict{"level": "error"})
		require.NoError(t, err)
		assert.Equal(t, true, out["then"])
		assert.NotContains(t, out, "else")
	})

	t.Run("else branch", func(t *testing.T) {
		p := NewConditionalProcessor(isError, mark("then"), mark("else"))
		out, err := p.Process("test", "info", EventDict{"level": "info"})
		require.NoError(t, err)
		assert.Equal(t, true, out["else"])
		assert.NotContains(t, out, "then")
	})

	t.Run("nil else passes through", func(t *testing.T) {
		p := NewConditionalProcessor(isError, mark("then"), nil)
		out, err := p.Process("test", "info", EventDict{"level": "info"})
		require.NoError(t, err)
		assert.Equal(t, EventDict{"level": "info"}, out)
	})
}
