// Package http provides the webhook HTTP server and handlers.
//
// This file builds the uniform results envelope every handler replies
// with: {"results":[{"toolCallId":..., "result":{...}}]}. Success and
// error payloads share the shape; only the result body and status vary.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type toolResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     any    `json:"result"`
}

type resultsEnvelope struct {
	Results []toolResult `json:"results"`
}

// ToolResponseBuilder provides a fluent API for building tool-call
// responses correlated by toolCallId.
type ToolResponseBuilder struct {
	toolCallID string
	statusCode int
	result     any
}

// NewToolResponse creates a response builder with default 200 status.
func NewToolResponse(toolCallID string) *ToolResponseBuilder {
	return &ToolResponseBuilder{
		toolCallID: toolCallID,
		statusCode: http.StatusOK,
		result:     map[string]any{},
	}
}

// Status sets the HTTP status code for the response.
func (b *ToolResponseBuilder) Status(code int) *ToolResponseBuilder {
	b.statusCode = code
	return b
}

// Result sets the result payload.
func (b *ToolResponseBuilder) Result(payload any) *ToolResponseBuilder {
	b.result = payload
	return b
}

// Message is shorthand for a {"message": ...} result.
func (b *ToolResponseBuilder) Message(msg string) *ToolResponseBuilder {
	return b.Result(map[string]any{"message": msg})
}

// Error is shorthand for an {"error": ...} result. Some endpoints
// report errors under the message key instead; clients match on the
// key, so each handler keeps the one it has always used.
func (b *ToolResponseBuilder) Error(msg string) *ToolResponseBuilder {
	return b.Result(map[string]any{"error": msg})
}

// Write sends the built response as JSON.
func (b *ToolResponseBuilder) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.statusCode)
	env := resultsEnvelope{Results: []toolResult{{ToolCallID: b.toolCallID, Result: b.result}}}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err, "tool_call_id", b.toolCallID)
	}
}

// writeEnvelopeError reports a request whose envelope could not be
// parsed. There is no tool call id to correlate, so the body is a bare
// typed error.
func writeEnvelopeError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": ErrMalformedEnvelope.Error()})
}
