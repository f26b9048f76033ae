package geode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize coerces an arbitrary decoded JSON value into a Response.
//
// Field defaults:
//   - a falsy input (nil, false, 0, "") yields nil;
//   - analysis.primary_topic and analysis.target_audience default to "Unknown"
//     when absent, null, an object or an array; numbers and booleans keep
//     their JSON text;
//   - analysis.ambiguities and diffs default to an empty slice unless they
//     are arrays; non-string elements keep their JSON text.
func Normalize(raw any) *Response {
	if IsFalsy(raw) {
		return nil
	}

	root, _ := raw.(map[string]any)
	analysis, _ := root["analysis"].(map[string]any)

	return &Response{
		Analysis: Analysis{
			PrimaryTopic:   scalarOrUnknown(analysis["primary_topic"]),
			TargetAudience: scalarOrUnknown(analysis["target_audience"]),
			Ambiguities:    stringList(analysis["ambiguities"]),
		},
		Diffs: stringList(root["diffs"]),
	}
}

// DecodeResponse decodes JSON bytes and normalizes the result. It fails only
// when data is not JSON.
func DecodeResponse(data []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode geode response: %w", err)
	}
	return Normalize(raw), nil
}

// ParseCompletion turns a raw model completion into the endpoint reply body.
// An empty completion reads as {}. Valid JSON, optionally inside a markdown
// code fence, passes through untouched; anything else, whitespace-only
// included, becomes FallbackPayload and ok is false.
func ParseCompletion(raw string) (body json.RawMessage, ok bool) {
	if raw == "" {
		return json.RawMessage("{}"), true
	}
	cleaned := cleanJSON(raw)
	if cleaned != "" && json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), true
	}
	fallback, _ := json.Marshal(FallbackPayload())
	return fallback, false
}

// cleanJSON removes markdown code fences if present
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// IsFalsy reports whether v is null, false, 0 or "".
func IsFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}

func scalarOrUnknown(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64, bool:
		b, _ := json.Marshal(t)
		return string(b)
	}
	return Unknown
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
