package logging

// Predicate decides whether the "then" branch of a ConditionalProcessor
// applies to an event.
type Predicate func(event EventDict) bool

// ConditionalProcessor applies one of two processors depending on a predicate
// over the current record. It enables level-dependent or content-dependent
// branching without restructuring the chain.
type ConditionalProcessor struct {
	cond     Predicate
	thenProc Processor
	elseProc Processor
}

// NewConditionalProcessor wraps a predicate with a "then" processor and an
// optional "else" processor. elseProc may be nil, in which case events that
// fail the predicate pass through unchanged.
func NewConditionalProcessor(cond Predicate, thenProc, elseProc Processor) *ConditionalProcessor {
	return &ConditionalProcessor{cond: cond, thenProc: thenProc, elseProc: elseProc}
}

// Process implements Processor.
func (p *ConditionalProcessor) Process(logger, method string, event EventDict) (EventDict, error) {
	if p.cond(event) {
		return p.thenProc.Process(logger, method, event)
	}
	if p.elseProc != nil {
		return p.elseProc.Process(logger, method, event)
	}
	return event, nil
}
