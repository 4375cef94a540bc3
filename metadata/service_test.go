package metadata

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"SERVICE_NAME", "SERVICE_VERSION", "INSTANCE_ID", "COMMIT_SHA", "BUILD_TIME"} {
		t.Setenv(key, "")
	}

	info := FromEnv()
	assert.Equal(t, UnknownDev, info.Name)
	assert.Equal(t, UnknownDev, info.Version)
	assert.Equal(t, UnknownDev, info.InstanceID)
	assert.Equal(t, UnknownDev, info.CommitSHA)
	assert.Equal(t, UnknownDev, info.BuildTime)
}

func TestFromEnvValues(t *testing.T) {
	t.Setenv("SERVICE_NAME", "billing")
	t.Setenv("SERVICE_VERSION", "1.4.2")
	t.Setenv("INSTANCE_ID", "pod-7")
	t.Setenv("COMMIT_SHA", "abc123")
	t.Setenv("BUILD_TIME", "2026-08-25T00:00:00Z")

	info := FromEnv()
	assert.Equal(t, "billing", info.Name)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, "pod-7", info.InstanceID)
	assert.Equal(t, "abc123", info.CommitSHA)
	assert.Equal(t, "2026-08-25T00:00:00Z", info.BuildTime)
}

func TestFromEnvPartial(t *testing.T) {
	t.Setenv("SERVICE_NAME", "billing")
	t.Setenv("SERVICE_VERSION", "")
	t.Setenv("INSTANCE_ID", "")
	t.Setenv("COMMIT_SHA", "")
	t.Setenv("BUILD_TIME", "")

	info := FromEnv()
	assert.Equal(t, "billing", info.Name)
	assert.Equal(t, UnknownDev, info.Version)
}

func TestMapProjection(t *testing.T) {
	info := ServiceInfo{
		Name:       "billing",
		Version:    "1.4.2",
		InstanceID: "pod-7",
		CommitSHA:  UnknownDev,
		BuildTime:  UnknownDev,
	}

	m := info.Map()
	require.Equal(t, map[string]string{
		"service_name": "billing",
		"version":      "1.4.2",
		"instance_id":  "pod-7",
		"commit_sha":   UnknownDev,
		"build_time":   UnknownDev,
	}, m)

	// The projection is a copy.
	m["service_name"] = "tampered"
	assert.Equal(t, "billing", info.Name)
}

func TestGenerateInstanceID(t *testing.T) {
	a := GenerateInstanceID()
	b := GenerateInstanceID()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
