package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Renderer is the terminal pipeline stage: it serializes the fully processed
// event into the bytes written to the sink.
type Renderer interface {
	Render(logger, method string, event EventDict) ([]byte, error)
}

// JSONRenderer serializes events as single-line JSON objects. Values the
// encoder cannot represent natively are stringified: uuid.UUID, error and
// time.Time have dedicated handling, anything else unmarshalable falls back
// to fmt.Stringer or %v.
type JSONRenderer struct{}

// NewJSONRenderer returns the machine-readable renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_, _ string, event EventDict) ([]byte, error) {
	return json.Marshal(normalizeMap(event))
}

func normalizeMap(m EventDict) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == contextKey {
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return val
	case uuid.UUID:
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case error:
		return val.Error()
	case EventDict:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(EventDict(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case []map[string]string:
		return val
	default:
		if _, err := json.Marshal(val); err == nil {
			return val
		}
		if s, ok := val.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", val)
	}
}

// ConsoleRenderer produces human-readable lines:
//
//	2026-08-25T09:30:00Z [INFO    ] billing: invoice created invoice_id=42
//
// with level colors when enabled.
type ConsoleRenderer struct {
	colors bool
	styles map[string]lipgloss.Style
}

// NewConsoleRenderer returns the human-readable renderer.
func NewConsoleRenderer(colors bool) *ConsoleRenderer {
	return &ConsoleRenderer{
		colors: colors,
		styles: map[string]lipgloss.Style{
			"debug":    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			"info":     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			"warning":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			"error":    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			"critical": lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		},
	}
}

// handled specially by the console layout, not repeated in the k=v tail.
var consoleLayoutKeys = map[string]struct{}{
	"event":     {},
	"level":     {},
	"timestamp": {},
	"logger":    {},
	contextKey:  {},
}

// Render implements Renderer.
func (r *ConsoleRenderer) Render(logger, method string, event EventDict) ([]byte, error) {
	var b strings.Builder

	if ts, ok := event["timestamp"].(string); ok {
		b.WriteString(ts)
		b.WriteByte(' ')
	}

	level := method
	if l, ok := event["level"].(string); ok {
		level = l
	}
	b.WriteString(r.levelTag(level))
	b.WriteByte(' ')

	if name, ok := event["logger"].(string); ok && name != "" {
		b.WriteString(name)
		b.WriteString(": ")
	}
	if msg, ok := event["event"].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(event))
	for k := range event {
		if _, skip := consoleLayoutKeys[k]; skip {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(consoleValue(event[k]))
	}

	return []byte(b.String()), nil
}

func (r *ConsoleRenderer) levelTag(level string) string {
	tag := fmt.Sprintf("[%-8s]", strings.ToUpper(level))
	if !r.colors {
		return tag
	}
	style, ok := r.styles[strings.ToLower(level)]
	if !ok {
		return tag
	}
	return style.Render(tag)
}

func consoleValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprintf("%v", normalizeValue(v))
	}
}
