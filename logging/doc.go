// Package logging implements structured logging with a composable processor
// pipeline.
//
// # Overview
//
// Every log call produces an event record (EventDict): an open mapping of
// field names to values plus a message and a level. The record flows through
// an ordered list of processors before a terminal renderer serializes it to
// JSON or a colorized console line.
//
// The pipeline is assembled by LoggingCollector from four chains, applied in
// this order:
//
//	early processing  -> built-in enrichment (timestamp)
//	preprocessing     -> user-extensible, runs before core processors
//	processing        -> core: level/name/context enrichment, tracing, exceptions
//	postprocessing    -> user-extensible, runs after core processors
//	renderer          -> JSON or console, chosen by Config.AsJSON
//
// # Usage
//
//	cfg, err := logging.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	collector := logging.NewLoggingCollector(cfg)
//	collector.PreProcessing().Append(myProcessor)
//	if err := collector.Configure(); err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := logging.GetLogger("billing")
//	logger.Info(ctx, "invoice created", "invoice_id", id)
//
// # Concurrency
//
// Chains are configure-then-freeze: mutate them during startup, before
// steady-state logging begins. Log calls from concurrent goroutines are safe;
// each event's processing is a bounded, synchronous, in-memory transformation
// and events from one goroutine are never reordered.
//
// # Failure isolation
//
// User-supplied processors are wrapped by Safe, which converts a returned
// error or panic into a `_processor_errors` annotation on the event instead
// of propagating. A log call never fails because a processor misbehaved.
package logging
