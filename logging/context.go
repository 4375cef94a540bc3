package logging

import (
	"context"
)

// Context key types
type requestCtxKey struct{}
type sessionCtxKey struct{}

// WithRequestID adds a request correlation id to the context. Events logged
// with that context carry it as the "request_id" field.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestCtxKey{}, requestID)
}

// RequestIDFromContext extracts the request id from context.
func RequestIDFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return r
	}
	return ""
}

// WithSessionID adds a session correlation id to the context. Events logged
// with that context carry it as the "session_id" field.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionIDFromContext extracts the session id from context.
func SessionIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// mergeContextValues copies correlation ids from the event's context into the
// record. Fields already set by the caller win.
var mergeContextValues = ProcessorFunc(func(_, _ string, event EventDict) (EventDict, error) {
	ctx := eventContext(event)
	if id := RequestIDFromContext(ctx); id != "" {
		if _, ok := event["request_id"]; !ok {
			event["request_id"] = id
		}
	}
	if id := SessionIDFromContext(ctx); id != "" {
		if _, ok := event["session_id"]; !ok {
			event["session_id"] = id
		}
	}
	return event, nil
})
