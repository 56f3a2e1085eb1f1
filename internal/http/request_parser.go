// Package http provides the webhook HTTP server and handlers.
//
// This file implements parsing of the tool-call envelope sent by the
// voice-assistant orchestrator. Only the last tool call of a request is
// processed; its id correlates the response.
package http

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedEnvelope is returned for bodies that are not valid JSON
// or do not carry at least one tool call. Surfaced as an explicit 400
// instead of an unhandled server fault.
var ErrMalformedEnvelope = errors.New("malformed tool call envelope")

// ToolCall is the unwrapped last tool call of a request envelope.
type ToolCall struct {
	ID   string
	args map[string]any
}

type envelope struct {
	Message struct {
		ToolCalls []struct {
			ID       string `json:"id"`
			Function struct {
				Arguments map[string]any `json:"arguments"`
			} `json:"function"`
		} `json:"toolCalls"`
	} `json:"message"`
}

// ParseToolCall unwraps the envelope and returns the last tool call.
func ParseToolCall(body []byte) (*ToolCall, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ErrMalformedEnvelope
	}
	calls := env.Message.ToolCalls
	if len(calls) == 0 {
		return nil, ErrMalformedEnvelope
	}
	last := calls[len(calls)-1]
	args := last.Function.Arguments
	if args == nil {
		args = map[string]any{}
	}
	return &ToolCall{ID: last.ID, args: args}, nil
}

// Has reports whether the argument key is present, regardless of value.
// Required-field checks test presence only; an empty string counts.
func (t *ToolCall) Has(key string) bool {
	_, ok := t.args[key]
	return ok
}

// HasAll reports whether all keys are present.
func (t *ToolCall) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !t.Has(k) {
			return false
		}
	}
	return true
}

// Get returns the argument as a trimmed, sanitized string. Numeric and
// boolean JSON values are rendered, so an orchestrator sending
// amount as a number or a string behaves the same.
func (t *ToolCall) Get(key string) string {
	v, ok := t.args[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(sanitizeInput(stringValue(v)))
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
