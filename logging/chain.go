package logging

// EventDict is the open key-value structure representing one log occurrence
// as it flows through the pipeline. Processors add, rename, and remove keys
// freely; message ("event"), "level" and "timestamp" are conventionally
// essential and some processors promise to preserve them.
type EventDict map[string]any

// Clone returns a deep copy of the event. Nested EventDict/map[string]any
// values and []any sequences are copied recursively; scalar values are
// copied by value.
func (e EventDict) Clone() EventDict {
	if e == nil {
		return nil
	}
	out := make(EventDict, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case EventDict:
		return val.Clone()
	case map[string]any:
		return EventDict(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]string:
		out := make([]map[string]string, len(val))
		for i, m := range val {
			mc := make(map[string]string, len(m))
			for k, s := range m {
				mc[k] = s
			}
			out[i] = mc
		}
		return out
	default:
		return v
	}
}

// Processor is a single transformation stage over an event record.
//
// Process receives the logger name and the invoking method name ("info",
// "error", ...) alongside the record and returns the (possibly mutated)
// record. Identity is irrelevant; processors compose purely by position.
type Processor interface {
	Process(logger, method string, event EventDict) (EventDict, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(logger, method string, event EventDict) (EventDict, error)

// Process implements Processor.
func (f ProcessorFunc) Process(logger, method string, event EventDict) (EventDict, error) {
	return f(logger, method, event)
}

// ProcessorChain is an ordered, mutable sequence of processors. Insertion
// order is the application order; no deduplication is performed.
//
// Chains are configure-then-freeze: mutate during startup, before steady-state
// logging begins. Mutation under concurrent log traffic is not supported and
// the chain performs no internal locking.
type ProcessorChain struct {
	procs []Processor
}

// NewProcessorChain creates a chain with the given processors.
func NewProcessorChain(procs ...Processor) *ProcessorChain {
	c := &ProcessorChain{}
	if len(procs) > 0 {
		c.procs = append(c.procs, procs...)
	}
	return c
}

// Append adds a processor to the end of the chain.
func (c *ProcessorChain) Append(p Processor) {
	c.procs = append(c.procs, p)
}

// Replace atomically swaps the full contents of the chain.
func (c *ProcessorChain) Replace(procs []Processor) {
	c.procs = append([]Processor(nil), procs...)
}

// Clear empties the chain.
func (c *ProcessorChain) Clear() {
	c.procs = nil
}

// Len returns the current number of processors.
func (c *ProcessorChain) Len() int {
	return len(c.procs)
}

// Processors returns the chain contents in application order as a defensive
// copy; mutating the returned slice does not affect the chain.
func (c *ProcessorChain) Processors() []Processor {
	return append([]Processor(nil), c.procs...)
}
