// Package metadata describes the running service: name, version, instance
// and build provenance. The descriptor feeds the service_info metric and the
// operational /info endpoint.
package metadata

import (
	"strings"

	"github.com/google/uuid"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// UnknownDev is the sentinel for descriptor fields not provided by the
// environment, typical for local development builds.
const UnknownDev = "unknown-dev"

// ServiceInfo is an immutable descriptor of the running service.
type ServiceInfo struct {
	Name       string
	Version    string
	InstanceID string
	CommitSHA  string
	BuildTime  string
}

// FromEnv creates a descriptor from environment variables, defaulting every
// unset field to UnknownDev.
//
// Variables: SERVICE_NAME, SERVICE_VERSION, INSTANCE_ID, COMMIT_SHA,
// BUILD_TIME.
func FromEnv() ServiceInfo {
	k := koanf.New(".")
	// Load error is impossible for the env provider with a nil parser.
	_ = k.Load(env.Provider("", ".", strings.ToLower), nil)

	get := func(key string) string {
		if v := k.String(key); v != "" {
			return v
		}
		return UnknownDev
	}

	return ServiceInfo{
		Name:       get("service_name"),
		Version:    get("service_version"),
		InstanceID: get("instance_id"),
		CommitSHA:  get("commit_sha"),
		BuildTime:  get("build_time"),
	}
}

// GenerateInstanceID returns a random per-process instance id for hosts that
// do not inject INSTANCE_ID.
func GenerateInstanceID() string {
	return uuid.NewString()
}

// Map returns the descriptor's dict-form projection. Sentinel values are
// included as literal strings; no key is ever omitted.
func (s ServiceInfo) Map() map[string]string {
	return map[string]string{
		"service_name": s.Name,
		"version":      s.Version,
		"instance_id":  s.InstanceID,
		"commit_sha":   s.CommitSHA,
		"build_time":   s.BuildTime,
	}
}
