package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, body []byte) resultsEnvelope {
	t.Helper()
	var env resultsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, body)
	}
	return env
}

func TestToolResponseDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	NewToolResponse("call-1").Message("done").Write(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	if len(env.Results) != 1 {
		t.Fatalf("results len = %d, want 1", len(env.Results))
	}
	if env.Results[0].ToolCallID != "call-1" {
		t.Errorf("toolCallId = %q", env.Results[0].ToolCallID)
	}
	result, ok := env.Results[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("result type = %T", env.Results[0].Result)
	}
	if result["message"] != "done" {
		t.Errorf("message = %v", result["message"])
	}
}

func TestToolResponseErrorKey(t *testing.T) {
	rec := httptest.NewRecorder()
	NewToolResponse("c").Status(http.StatusNotFound).Error("Expense not found").Write(rec)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	result := env.Results[0].Result.(map[string]any)
	if result["error"] != "Expense not found" {
		t.Errorf("error = %v", result["error"])
	}
	if _, ok := result["message"]; ok {
		t.Error("error responses must not carry a message key")
	}
}

func TestWriteEnvelopeError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeEnvelopeError(rec)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != ErrMalformedEnvelope.Error() {
		t.Errorf("error = %q", body["error"])
	}
}
