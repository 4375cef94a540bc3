package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Built-in processors assembled into the collector chains.

// addTimestamp stamps the event with an ISO-8601 UTC timestamp unless the
// caller already provided one.
var addTimestamp = ProcessorFunc(func(_, _ string, event EventDict) (EventDict, error) {
	if _, ok := event["timestamp"]; !ok {
		event["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return event, nil
})

// addLogLevel records the invoking method name as the event level.
var addLogLevel = ProcessorFunc(func(_, method string, event EventDict) (EventDict, error) {
	if _, ok := event["level"]; !ok {
		event["level"] = method
	}
	return event, nil
})

// addLoggerName records the logger identity.
var addLoggerName = ProcessorFunc(func(logger, _ string, event EventDict) (EventDict, error) {
	if logger != "" {
		event["logger"] = logger
	}
	return event, nil
})

// pipeline is the installed process-wide logging configuration: the final
// ordered processor list, the terminal renderer and the sink.
type pipeline struct {
	level    zapcore.Level
	procs    []Processor
	renderer Renderer
	out      zapcore.WriteSyncer
}

var (
	globalMu       sync.RWMutex
	globalPipeline *pipeline
)

func installPipeline(p *pipeline) {
	globalMu.Lock()
	globalPipeline = p
	globalMu.Unlock()
}

func installedPipeline() *pipeline {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPipeline
}

// LoggingCollector orchestrates the four processor chains into the final
// ordered processor list and performs the global logging setup.
//
// Chain roles:
//
//	EarlyProcessing  built-in enrichment; exposed for inspection
//	PreProcessing    user-extensible, runs before the core processors
//	Processing       core: level/name/context enrichment plus config-driven
//	                 tracing and exception processors
//	PostProcessing   user-extensible, runs after the core processors
type LoggingCollector struct {
	config         Config
	safeProcessors bool
	out            zapcore.WriteSyncer

	early *ProcessorChain
	pre   *ProcessorChain
	core  *ProcessorChain
	post  *ProcessorChain
}

// CollectorOption configures NewLoggingCollector.
type CollectorOption func(*LoggingCollector)

// WithSafeProcessors controls failure isolation of the early and user chains.
// Default true.
func WithSafeProcessors(v bool) CollectorOption {
	return func(c *LoggingCollector) { c.safeProcessors = v }
}

// WithOutput redirects the rendered log stream. Default os.Stdout.
func WithOutput(w io.Writer) CollectorOption {
	return func(c *LoggingCollector) { c.out = zapcore.Lock(zapcore.AddSync(w)) }
}

// NewLoggingCollector builds a collector for the given config. Build one per
// process.
func NewLoggingCollector(cfg Config, opts ...CollectorOption) *LoggingCollector {
	c := &LoggingCollector{
		config:         cfg,
		safeProcessors: true,
		out:            zapcore.Lock(zapcore.AddSync(os.Stdout)),
		early:          NewProcessorChain(addTimestamp),
		pre:            NewProcessorChain(),
		post:           NewProcessorChain(),
	}
	for _, opt := range opts {
		opt(c)
	}

	core := []Processor{addLogLevel, addLoggerName, mergeContextValues}
	if cfg.IntegrateTracing {
		core = append(core, AddOpenTelemetrySpans)
	}
	if cfg.AsJSON {
		core = append(core, NewEnhancedExceptionProcessor(cfg))
	}
	c.core = NewProcessorChain(core...)

	return c
}

// EarlyProcessing returns the built-in enrichment chain.
func (c *LoggingCollector) EarlyProcessing() *ProcessorChain { return c.early }

// PreProcessing returns the user chain that runs before the core processors.
func (c *LoggingCollector) PreProcessing() *ProcessorChain { return c.pre }

// Processing returns the core chain.
func (c *LoggingCollector) Processing() *ProcessorChain { return c.core }

// PostProcessing returns the user chain that runs after the core processors.
func (c *LoggingCollector) PostProcessing() *ProcessorChain { return c.post }

// BuildProcessorList concatenates the chains into the final application
// order. When safe processors are enabled the early and user chains are
// failure-isolated per processor; the core chain runs unwrapped.
func (c *LoggingCollector) BuildProcessorList() []Processor {
	maybeSafe := func(procs []Processor) []Processor {
		if c.safeProcessors {
			return SafeChain(procs)
		}
		return procs
	}

	var out []Processor
	out = append(out, maybeSafe(c.early.Processors())...)
	out = append(out, maybeSafe(c.pre.Processors())...)
	out = append(out, c.core.Processors()...)
	out = append(out, maybeSafe(c.post.Processors())...)
	return out
}

// Renderer returns the terminal renderer chosen by the config.
func (c *LoggingCollector) Renderer() Renderer {
	if c.config.AsJSON {
		return NewJSONRenderer()
	}
	return NewConsoleRenderer(c.config.Colors)
}

// Configure installs the assembled pipeline as the process-wide logging
// configuration. Calling it again fully replaces the prior state (last
// writer wins, not additive); doing so is only safe before steady-state
// traffic begins.
func (c *LoggingCollector) Configure() error {
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	installPipeline(&pipeline{
		level:    c.config.Level,
		procs:    c.BuildProcessorList(),
		renderer: c.Renderer(),
		out:      c.out,
	})
	return nil
}

// ConfigureLogging is the one-call setup path: build a collector from config
// and install it.
func ConfigureLogging(cfg Config, opts ...CollectorOption) error {
	return NewLoggingCollector(cfg, opts...).Configure()
}
