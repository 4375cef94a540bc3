package logging

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// redactedPlaceholder replaces the full value of fields listed in RedactKeys.
const redactedPlaceholder = "<REDACTED>"

type redactPattern struct {
	label string
	re    *regexp.Regexp
}

// defaultPIIPatterns cover the common PII shapes. Order matters: earlier
// patterns claim their matches before later, broader ones see the string.
var defaultPIIPatterns = []struct{ label, pattern string }{
	{"email", `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`},
	{"phone", `\b\d{3}[-.]\d{3}[-.]\d{4}\b`},
	{"ssn", `\b\d{3}-\d{2}-\d{4}\b`},
	{"credit_card", `\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`},
}

// PIIRedactionOptions configures NewPIIRedactionProcessor.
type PIIRedactionOptions struct {
	// Patterns maps a label to a regular expression. Matches are replaced by
	// "<LABEL>". When nil, the default email/phone/ssn/credit_card patterns
	// apply; an empty non-nil map disables pattern scanning.
	Patterns map[string]string
	// RedactKeys lists field names whose whole value is replaced with
	// "<REDACTED>" regardless of content.
	RedactKeys []string
}

// PIIRedactionProcessor replaces PII substrings in string-valued fields with
// labeled placeholders and fully redacts configured field names. The walk
// recurses into nested mappings and sequences; non-string scalar values pass
// through unchanged. Absent keys are never an error.
type PIIRedactionProcessor struct {
	patterns   []redactPattern
	redactKeys map[string]struct{}
}

// NewPIIRedactionProcessor compiles the configured patterns, failing fast on
// an invalid expression.
func NewPIIRedactionProcessor(opts PIIRedactionOptions) (*PIIRedactionProcessor, error) {
	p := &PIIRedactionProcessor{
		redactKeys: make(map[string]struct{}, len(opts.RedactKeys)),
	}
	for _, k := range opts.RedactKeys {
		p.redactKeys[k] = struct{}{}
	}

	if opts.Patterns == nil {
		for _, d := range defaultPIIPatterns {
			// Defaults are compile-checked by tests; MustCompile keeps the
			// constructor error path for user patterns only.
			p.patterns = append(p.patterns, redactPattern{d.label, regexp.MustCompile(d.pattern)})
		}
		return p, nil
	}

	labels := make([]string, 0, len(opts.Patterns))
	for label := range opts.Patterns {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		re, err := regexp.Compile(opts.Patterns[label])
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", label, err)
		}
		p.patterns = append(p.patterns, redactPattern{label, re})
	}
	return p, nil
}

// Process implements Processor.
func (p *PIIRedactionProcessor) Process(_, _ string, event EventDict) (EventDict, error) {
	return p.redactMap(event), nil
}

func (p *PIIRedactionProcessor) redactMap(m EventDict) EventDict {
	for k, v := range m {
		if _, blocked := p.redactKeys[k]; blocked {
			m[k] = redactedPlaceholder
			continue
		}
		m[k] = p.redactValue(v)
	}
	return m
}

func (p *PIIRedactionProcessor) redactValue(v any) any {
	switch val := v.(type) {
	case string:
		return p.redactString(val)
	case EventDict:
		return p.redactMap(val)
	case map[string]any:
		return map[string]any(p.redactMap(EventDict(val)))
	case []any:
		for i, item := range val {
			val[i] = p.redactValue(item)
		}
		return val
	default:
		return v
	}
}

func (p *PIIRedactionProcessor) redactString(s string) string {
	for _, pat := range p.patterns {
		s = pat.re.ReplaceAllString(s, "<"+strings.ToUpper(pat.label)+">")
	}
	return s
}
