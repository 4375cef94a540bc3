package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	trueValues := []string{"true", "TRUE", "t", "1", "yes", "Y", "on", " On "}
	for _, v := range trueValues {
		got, err := ParseBool("TEST_VAR", v)
		require.NoError(t, err, "value %q", v)
		assert.True(t, got, "value %q", v)
	}

	falseValues := []string{"false", "F", "0", "no", "n", "OFF"}
	for _, v := range falseValues {
		got, err := ParseBool("TEST_VAR", v)
		require.NoError(t, err, "value %q", v)
		assert.False(t, got, "value %q", v)
	}
}

func TestParseBoolInvalid(t *testing.T) {
	for _, v := range []string{"", "maybe", "2", "truee"} {
		_, err := ParseBool("TEST_VAR", v)
		require.Error(t, err, "value %q", v)
		assert.Contains(t, err.Error(), "TEST_VAR")
	}
}

func TestParseInt(t *testing.T) {
	got, err := ParseInt("TEST_VAR", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = ParseInt("TEST_VAR", "-7")
	require.NoError(t, err)
	assert.Equal(t, -7, got)
}

func TestParseIntInvalid(t *testing.T) {
	for _, v := range []string{"", "4.5", "many", "0x10"} {
		_, err := ParseInt("TEST_VAR", v)
		require.Error(t, err, "value %q", v)
		assert.Contains(t, err.Error(), "TEST_VAR")
	}
}
