package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"vocespese/internal/amqp"
	"vocespese/internal/core"
)

// parseRequest reads the body and unwraps the last tool call. A nil
// return means the error response has already been written.
func parseRequest(w http.ResponseWriter, r *http.Request) *ToolCall {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.ErrorContext(r.Context(), "Read body error", "error", err, "url", r.URL.Path)
		writeEnvelopeError(w)
		return nil
	}
	tc, err := ParseToolCall(body)
	if err != nil {
		slog.WarnContext(r.Context(), "Malformed tool call envelope", "error", err, "url", r.URL.Path)
		writeEnvelopeError(w)
		return nil
	}
	return tc
}

// resolveUserTable lazily creates the user's table with the fixed
// expense header.
func (s *Server) resolveUserTable(ctx context.Context, username string) error {
	if err := s.store.EnsureTable(ctx, username, core.ExpenseHeader); err != nil {
		return fmt.Errorf("resolve table %s: %w", username, err)
	}
	return nil
}

// lockUser serializes writes for the user when enabled; the returned
// func must be deferred.
func (s *Server) lockUser(username string) func() {
	if s.locks == nil {
		return func() {}
	}
	return s.locks.acquire(username)
}

// storeError reports an upstream store failure as a 500 inside the
// results envelope so the orchestrator can still correlate it.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, tc *ToolCall, err error, operation string) {
	slog.ErrorContext(r.Context(), "Store operation failed",
		"error", err,
		"operation", operation,
		"url", r.URL.Path)
	NewToolResponse(tc.ID).Status(http.StatusInternalServerError).Error("Internal server error").Write(w)
}

// publishAudit emits a write-audit event, best effort: audit loss never
// fails the request.
func (s *Server) publishAudit(ctx context.Context, username, action string, expenseID int64, category string) {
	if s.audit == nil {
		return
	}
	msg := amqp.NewAuditEventMessage(username, action, expenseID, category)
	if err := s.audit.PublishAuditEvent(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Audit publish failed",
			"error", err,
			"username", username,
			"action", action)
	}
}

// padRow grows a row to the full header width so positional access is
// safe; the sheet trims trailing blank cells on read.
func padRow(row []string) []string {
	if len(row) >= len(core.ExpenseHeader) {
		return row
	}
	padded := make([]string, len(core.ExpenseHeader))
	copy(padded, row)
	return padded
}

// parseID parses an expense id argument for audit metadata; ids that
// are not numeric audit as zero.
func parseID(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
