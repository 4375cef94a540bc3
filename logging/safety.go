package logging

import (
	"fmt"
)

// ProcessorErrorsKey is the reserved field receiving failure annotations from
// Safe-wrapped processors. Its value is a []map[string]string, one entry per
// failed processor, each with "error" and "error_type" keys.
const ProcessorErrorsKey = "_processor_errors"

// safeProcessor decorates a processor so it never fails past the pipeline
// boundary.
type safeProcessor struct {
	inner Processor
}

// Safe wraps a processor so that a returned error or panic is captured and
// annotated on the event rather than aborting the pipeline.
//
// The inner processor runs against a deep copy of the record: on success the
// processor's result is returned unchanged, on failure the original record is
// returned with one entry appended to ProcessorErrorsKey, discarding any
// partial mutation the failing processor made. One misbehaving processor
// (for example a malformed redaction pattern) must not take down logging for
// the whole process.
func Safe(p Processor) Processor {
	if _, ok := p.(*safeProcessor); ok {
		return p
	}
	return &safeProcessor{inner: p}
}

// SafeChain applies Safe to every processor in order, producing a new slice
// where each element is independently failure-isolated.
func SafeChain(procs []Processor) []Processor {
	out := make([]Processor, len(procs))
	for i, p := range procs {
		out[i] = Safe(p)
	}
	return out
}

// Process implements Processor.
func (s *safeProcessor) Process(logger, method string, event EventDict) (EventDict, error) {
	result, err := s.run(logger, method, event.Clone())
	if err != nil {
		return annotateError(event, err), nil
	}
	return result, nil
}

// run invokes the inner processor, converting a panic into an error.
func (s *safeProcessor) run(logger, method string, event EventDict) (result EventDict, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = perr
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return s.inner.Process(logger, method, event)
}

// annotateError appends a failure entry to the record's reserved error list,
// creating the list if absent.
func annotateError(event EventDict, err error) EventDict {
	entry := map[string]string{
		"error":      err.Error(),
		"error_type": fmt.Sprintf("%T", err),
	}
	if existing, ok := event[ProcessorErrorsKey].([]map[string]string); ok {
		event[ProcessorErrorsKey] = append(existing, entry)
	} else {
		event[ProcessorErrorsKey] = []map[string]string{entry}
	}
	return event
}
