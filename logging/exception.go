package logging

import (
	"fmt"
	"runtime"
	"strings"
)

// ExcInfoKey is the reserved field carrying an attached exception context,
// either an *ExceptionInfo (from CaptureException) or a bare error.
const ExcInfoKey = "exc_info"

// Frame describes one captured stack frame.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// ExceptionInfo pairs an error with the call stack captured where the error
// was observed.
type ExceptionInfo struct {
	Err    error
	Frames []Frame
}

// CaptureException records the current call stack alongside err, for
// attachment to an event under ExcInfoKey:
//
//	logger.Error(ctx, "payment failed", logging.ExcInfoKey, logging.CaptureException(err))
func CaptureException(err error) *ExceptionInfo {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	info := &ExceptionInfo{Err: err}
	for {
		fr, more := frames.Next()
		info.Frames = append(info.Frames, Frame{
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}
	return info
}

// EnhancedExceptionProcessor renders an attached exception context into
// structured fields: exception_type, exception_message and a bounded
// structured_traceback. Records without an attached exception pass through
// unchanged.
type EnhancedExceptionProcessor struct {
	maxFrames         int
	preserveOriginal  bool
	extractLocation   bool
	skipLibraryFrames bool
}

// NewEnhancedExceptionProcessor builds the processor from logging config
// (exception_* settings).
func NewEnhancedExceptionProcessor(cfg Config) *EnhancedExceptionProcessor {
	maxFrames := cfg.ExceptionMaxFrames
	if maxFrames < 1 {
		maxFrames = NewDefaultConfig().ExceptionMaxFrames
	}
	return &EnhancedExceptionProcessor{
		maxFrames:         maxFrames,
		preserveOriginal:  cfg.ExceptionPreserveTraceback,
		extractLocation:   cfg.ExceptionExtractLocation,
		skipLibraryFrames: cfg.ExceptionSkipLibraryFrames,
	}
}

// Process implements Processor.
func (p *EnhancedExceptionProcessor) Process(_, _ string, event EventDict) (EventDict, error) {
	raw, ok := event[ExcInfoKey]
	if !ok {
		return event, nil
	}

	var info *ExceptionInfo
	switch v := raw.(type) {
	case *ExceptionInfo:
		info = v
	case error:
		info = &ExceptionInfo{Err: v}
	default:
		// Unrecognized payload; leave the record alone.
		return event, nil
	}
	if info == nil || info.Err == nil {
		return event, nil
	}

	delete(event, ExcInfoKey)
	event["exception_type"] = fmt.Sprintf("%T", info.Err)
	event["exception_message"] = info.Err.Error()

	frames := info.Frames
	if p.skipLibraryFrames {
		frames = dropLibraryFrames(frames)
	}
	event["structured_traceback"] = boundFrames(frames, p.maxFrames)

	if p.extractLocation && len(frames) > 0 {
		event["error_location"] = EventDict{
			"function": frames[0].Function,
			"file":     frames[0].File,
			"line":     frames[0].Line,
		}
	}
	if p.preserveOriginal {
		event["original_traceback"] = formatTraceback(info.Frames)
	}
	return event, nil
}

// boundFrames caps the rendered sequence at maxFrames real frames. When the
// true count exceeds the cap, the first maxFrames-1 frames and the last frame
// are retained with a single omission marker between them, so the result is
// at most maxFrames+1 elements.
func boundFrames(frames []Frame, maxFrames int) []any {
	out := make([]any, 0, maxFrames+1)
	if len(frames) <= maxFrames {
		for _, fr := range frames {
			out = append(out, frameDict(fr))
		}
		return out
	}

	head := maxFrames - 1
	for _, fr := range frames[:head] {
		out = append(out, frameDict(fr))
	}
	omitted := len(frames) - head - 1
	out = append(out, fmt.Sprintf("... %d frames omitted ...", omitted))
	out = append(out, frameDict(frames[len(frames)-1]))
	return out
}

func frameDict(fr Frame) EventDict {
	return EventDict{
		"function": fr.Function,
		"file":     fr.File,
		"line":     fr.Line,
	}
}

// dropLibraryFrames filters frames originating in the Go runtime and test
// machinery; frames from application packages always survive.
func dropLibraryFrames(frames []Frame) []Frame {
	out := frames[:0:0]
	for _, fr := range frames {
		if isLibraryFrame(fr.Function) {
			continue
		}
		out = append(out, fr)
	}
	if len(out) == 0 {
		// A traceback of nothing but library frames is still a traceback.
		return frames
	}
	return out
}

func isLibraryFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") ||
		strings.HasPrefix(fn, "testing.") ||
		strings.HasPrefix(fn, "reflect.")
}

// formatTraceback renders frames as a human-readable multi-line string.
func formatTraceback(frames []Frame) string {
	var b strings.Builder
	for _, fr := range frames {
		fmt.Fprintf(&b, "at %s (%s:%d)\n", fr.Function, fr.File, fr.Line)
	}
	return b.String()
}
