// internal/service/assistant/parse.go

package assistant

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparseable is returned when no strategy yields a JSON object
var ErrUnparseable = errors.New("no JSON object found in model output")

// parseStrategy tries to read a JSON object out of model text
type parseStrategy func(text string) (map[string]json.RawMessage, bool)

var (
	objectSpan = regexp.MustCompile(`(?s)\{.*\}`)

	// tried in order until one succeeds
	parseChain = []parseStrategy{
		parseDirect,
		parseFenced,
		parseBraceSpan,
		parseRegexSpan,
	}
)

// ParseTolerant extracts the JSON object a model returned, tolerating a
// fenced code block or surrounding prose
func ParseTolerant(text string) (map[string]json.RawMessage, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, ErrUnparseable
	}
	for _, strategy := range parseChain {
		if obj, ok := strategy(cleaned); ok {
			return obj, nil
		}
	}
	return nil, ErrUnparseable
}

func parseDirect(text string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// parseFenced reads the body of a ``` or ```json block
func parseFenced(text string) (map[string]json.RawMessage, bool) {
	body, ok := stripFence(text)
	if !ok {
		return nil, false
	}
	return parseDirect(body)
}

// parseBraceSpan parses from the first "{" to the last "}"
func parseBraceSpan(text string) (map[string]json.RawMessage, bool) {
	if body, ok := stripFence(text); ok {
		text = body
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	return parseDirect(text[start : end+1])
}

func parseRegexSpan(text string) (map[string]json.RawMessage, bool) {
	match := objectSpan.FindString(text)
	if match == "" {
		return nil, false
	}
	return parseDirect(match)
}

func stripFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return "", false
	}
	body := strings.TrimSpace(parts[1])
	// drop a language tag such as "json" on the opening line
	if nl := strings.IndexByte(body, '\n'); nl != -1 && !strings.ContainsAny(body[:nl], "{[") {
		body = strings.TrimSpace(body[nl+1:])
	}
	return body, true
}
