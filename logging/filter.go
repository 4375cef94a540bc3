package logging

import (
	"errors"
)

// essentialFields survive allowlist filtering when preservation is enabled.
// The set is fixed: message ("event"), level, and timestamp are what every
// downstream renderer needs to produce a usable line.
var essentialFields = map[string]struct{}{
	"event":     {},
	"message":   {},
	"level":     {},
	"timestamp": {},
}

// FieldFilterOption configures NewFieldFilterProcessor.
type FieldFilterOption func(*fieldFilterOptions)

type fieldFilterOptions struct {
	allowed           []string
	blocked           []string
	preserveEssential bool
}

// WithAllowedFields keeps only the listed fields (allowlist mode).
func WithAllowedFields(fields ...string) FieldFilterOption {
	return func(o *fieldFilterOptions) { o.allowed = fields }
}

// WithBlockedFields drops the listed fields and keeps everything else
// (blocklist mode).
func WithBlockedFields(fields ...string) FieldFilterOption {
	return func(o *fieldFilterOptions) { o.blocked = fields }
}

// WithPreserveEssential controls whether event/message, level and timestamp
// survive allowlist filtering even when absent from the allowlist.
// Default true. Has no effect in blocklist mode.
func WithPreserveEssential(v bool) FieldFilterOption {
	return func(o *fieldFilterOptions) { o.preserveEssential = v }
}

// FieldFilterProcessor keeps or drops event fields by name. It operates in
// exactly one of two modes: allowlist (WithAllowedFields) or blocklist
// (WithBlockedFields).
type FieldFilterProcessor struct {
	allowed           map[string]struct{}
	blocked           map[string]struct{}
	preserveEssential bool
}

// NewFieldFilterProcessor constructs a filter. Configuring both an allowlist
// and a blocklist, or neither, is a configuration error reported here, before
// any event is processed.
func NewFieldFilterProcessor(opts ...FieldFilterOption) (*FieldFilterProcessor, error) {
	o := fieldFilterOptions{preserveEssential: true}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.allowed) > 0 && len(o.blocked) > 0 {
		return nil, errors.New("cannot specify both allowed_fields and blocked_fields")
	}
	if len(o.allowed) == 0 && len(o.blocked) == 0 {
		return nil, errors.New("either allowed_fields or blocked_fields is required")
	}

	p := &FieldFilterProcessor{preserveEssential: o.preserveEssential}
	if len(o.allowed) > 0 {
		p.allowed = make(map[string]struct{}, len(o.allowed))
		for _, f := range o.allowed {
			p.allowed[f] = struct{}{}
		}
	} else {
		p.blocked = make(map[string]struct{}, len(o.blocked))
		for _, f := range o.blocked {
			p.blocked[f] = struct{}{}
		}
	}
	return p, nil
}

// Process implements Processor.
func (p *FieldFilterProcessor) Process(_, _ string, event EventDict) (EventDict, error) {
	if p.allowed != nil {
		for k := range event {
			if _, ok := p.allowed[k]; ok {
				continue
			}
			if p.preserveEssential {
				if _, essential := essentialFields[k]; essential {
					continue
				}
			}
			delete(event, k)
		}
		return event, nil
	}

	for k := range p.blocked {
		delete(event, k)
	}
	return event, nil
}
