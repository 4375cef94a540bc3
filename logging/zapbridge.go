package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a *zap.Logger whose entries flow through the installed
// processor pipeline. Useful when integrating libraries that require a
// *zap.Logger: their log records get the same enrichment, redaction and
// rendering as events emitted through Logger.
func NewZapLogger() *zap.Logger {
	return zap.New(&pipelineCore{})
}

// pipelineCore adapts the installed pipeline to zapcore.Core.
type pipelineCore struct {
	fields []zapcore.Field
}

func (c *pipelineCore) Enabled(level zapcore.Level) bool {
	p := installedPipeline()
	return p != nil && level >= p.level
}

func (c *pipelineCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &pipelineCore{fields: make([]zapcore.Field, 0, len(c.fields)+len(fields))}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *pipelineCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *pipelineCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	p := installedPipeline()
	if p == nil {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	event := EventDict{"event": ent.Message}
	for k, v := range enc.Fields {
		event[k] = v
	}
	if !ent.Time.IsZero() {
		// Keep zap's entry time so bridged and native events agree.
		event["timestamp"] = ent.Time.UTC().Format(time.RFC3339Nano)
	}

	method := methodForZapLevel(ent.Level)
	event = runPipeline(p, ent.LoggerName, method, event)

	line, err := p.renderer.Render(ent.LoggerName, method, event)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = p.out.Write(line)
	return err
}

func (c *pipelineCore) Sync() error {
	if p := installedPipeline(); p != nil {
		return p.out.Sync()
	}
	return nil
}

func methodForZapLevel(level zapcore.Level) string {
	switch {
	case level <= zapcore.DebugLevel:
		return "debug"
	case level == zapcore.InfoLevel:
		return "info"
	case level == zapcore.WarnLevel:
		return "warning"
	case level == zapcore.ErrorLevel:
		return "error"
	default:
		return "critical"
	}
}
