package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// contextKey is the reserved field carrying the log call's context.Context
// through the pipeline. It is stripped before rendering.
const contextKey = "_ctx"

// WithEventContext attaches ctx to the event. The logger front-end does this
// for every call; it is exported for tests and custom emitters.
func WithEventContext(ctx context.Context, event EventDict) EventDict {
	if ctx != nil {
		event[contextKey] = ctx
	}
	return event
}

func eventContext(event EventDict) context.Context {
	if ctx, ok := event[contextKey].(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// AddOpenTelemetrySpans adds active-span identifiers to the event.
//
// When no span is active, or the active span is not recording, the record is
// returned unchanged and the span's context is never queried. A recording
// span with an invalid context likewise contributes nothing. Otherwise a
// "span" field is added with fixed-width lower-case hex encodings:
//
//	span:
//	  span_id:        16 hex chars (64-bit)
//	  trace_id:       32 hex chars (128-bit)
//	  parent_span_id: 16 hex chars, or nil when the span has no parent
var AddOpenTelemetrySpans = ProcessorFunc(func(_, _ string, event EventDict) (EventDict, error) {
	span := trace.SpanFromContext(eventContext(event))
	if !span.IsRecording() {
		return event, nil
	}

	sc := span.SpanContext()
	if !sc.IsValid() {
		return event, nil
	}

	var parent any
	// SDK spans expose their parent context; API-only spans do not.
	if ps, ok := span.(interface{ Parent() trace.SpanContext }); ok {
		if pc := ps.Parent(); pc.IsValid() {
			parent = pc.SpanID().String()
		}
	}

	event["span"] = EventDict{
		"span_id":        sc.SpanID().String(),
		"trace_id":       sc.TraceID().String(),
		"parent_span_id": parent,
	}
	return event, nil
})
