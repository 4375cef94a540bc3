package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Logger is the front-end for emitting events through the installed pipeline.
// Loggers are cheap; create one per component.
//
// Calls made before Configure installs a pipeline are dropped.
type Logger struct {
	name string
}

// GetLogger returns a logger with the given name. The name appears as the
// "logger" field on every event.
func GetLogger(name string) *Logger {
	return &Logger{name: name}
}

// Debug emits a debug-level event.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, zapcore.DebugLevel, "debug", msg, kv)
}

// Info emits an info-level event.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, zapcore.InfoLevel, "info", msg, kv)
}

// Warning emits a warning-level event.
func (l *Logger) Warning(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, zapcore.WarnLevel, "warning", msg, kv)
}

// Error emits an error-level event.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, zapcore.ErrorLevel, "error", msg, kv)
}

// Critical emits a critical-level event. Unlike zap's Fatal, it does not
// terminate the process.
func (l *Logger) Critical(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, zapcore.FatalLevel, "critical", msg, kv)
}

// log runs one event through the installed pipeline synchronously. A log
// call never fails: processor errors leave the record as it was before the
// failing stage, and render errors drop the single event.
func (l *Logger) log(ctx context.Context, level zapcore.Level, method, msg string, kv []any) {
	p := installedPipeline()
	if p == nil || level < p.level {
		return
	}

	event := EventDict{"event": msg}
	WithEventContext(ctx, event)
	appendPairs(event, kv)

	event = runPipeline(p, l.name, method, event)

	line, err := p.renderer.Render(l.name, method, event)
	if err != nil {
		return
	}
	line = append(line, '\n')
	_, _ = p.out.Write(line)
}

func runPipeline(p *pipeline, logger, method string, event EventDict) EventDict {
	for _, proc := range p.procs {
		next, err := proc.Process(logger, method, event)
		if err != nil || next == nil {
			continue
		}
		event = next
	}
	return event
}

// appendPairs folds variadic key-value arguments into the event. Non-string
// keys are stringified; a dangling value is surfaced under "!BADKEY" rather
// than silently lost.
func appendPairs(event EventDict, kv []any) {
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			event["!BADKEY"] = kv[i]
			return
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		event[key] = kv[i+1]
	}
}
