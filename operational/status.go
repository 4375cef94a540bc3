package operational

import (
	"sync/atomic"
)

// Status tracks liveness and readiness, flipped by the host process as it
// moves through its lifecycle. Safe for concurrent use.
type Status struct {
	alive atomic.Bool
	ready atomic.Bool
}

// NewStatus returns a status that is alive and not ready, the usual state
// during startup.
func NewStatus() *Status {
	s := &Status{}
	s.alive.Store(true)
	return s
}

// SetAlive flips liveness.
func (s *Status) SetAlive(v bool) { s.alive.Store(v) }

// SetReady flips readiness.
func (s *Status) SetReady(v bool) { s.ready.Store(v) }

// IsAlive reports liveness.
func (s *Status) IsAlive() bool { return s.alive.Load() }

// IsReady reports readiness.
func (s *Status) IsReady() bool { return s.ready.Load() }
