// internal/service/assistant/action_item.go

package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredAction is an action the model described field by field
type StructuredAction struct {
	What      string
	Where     string
	Deadline  string
	Indicator string
}

// ActionItem is either a StructuredAction or plain text
type ActionItem struct {
	Structured *StructuredAction
	Plain      string
}

// UnmarshalJSON accepts an object with what/where/deadline/indicator
// (or their long names) or any other JSON value rendered as text
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		a.Structured = &StructuredAction{
			What:      firstField(fields, "what_to_do", "what"),
			Where:     firstField(fields, "where"),
			Deadline:  firstField(fields, "suggested_deadline", "deadline"),
			Indicator: firstField(fields, "success_indicator", "indicator"),
		}
		return nil
	}
	a.Plain = rawText(trimmed)
	return nil
}

// Render turns the item into one sentence
func (a ActionItem) Render() string {
	if a.Structured == nil {
		return strings.TrimSpace(a.Plain)
	}
	return a.Structured.Render()
}

// Render formats "<what> (onde: ...; prazo: ...; indicador: ...)",
// omitting absent fields
func (s StructuredAction) Render() string {
	var parts []string
	if s.What != "" {
		parts = append(parts, s.What)
	}

	var meta []string
	if s.Where != "" {
		meta = append(meta, "onde: "+s.Where)
	}
	if s.Deadline != "" {
		meta = append(meta, "prazo: "+s.Deadline)
	}
	if s.Indicator != "" {
		meta = append(meta, "indicador: "+s.Indicator)
	}
	if len(meta) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(meta, "; ")))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func firstField(fields map[string]json.RawMessage, names ...string) string {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if v := strings.TrimSpace(rawText(raw)); v != "" {
			return v
		}
	}
	return ""
}

// rawText returns a JSON string's value, or the compact JSON of anything else
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
