package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vocespese/internal/amqp"
	"vocespese/internal/core"
)

func (s *Server) handleLogExpense(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.HasAll("username", "amount", "category", "description") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Error("Missing required fields").Write(w)
		return
	}

	username := tc.Get("username")
	unlock := s.lockUser(username)
	defer unlock()

	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}
	rows, err := s.store.Rows(r.Context(), username)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return
	}

	exp := core.Expense{
		ID:          core.NextID(len(rows)),
		Timestamp:   time.Now(),
		Amount:      tc.Get("amount"),
		Category:    tc.Get("category"),
		Description: tc.Get("description"),
		Notes:       tc.Get("notes"),
	}
	if err := s.store.AppendRow(r.Context(), username, exp.Row()); err != nil {
		s.storeError(w, r, tc, err, "append")
		return
	}

	slog.InfoContext(r.Context(), "Expense logged",
		"username", username,
		"expense_id", exp.ID,
		"category", exp.Category,
		"amount", exp.Amount)
	s.publishAudit(r.Context(), username, amqp.ActionLog, exp.ID, exp.Category)

	NewToolResponse(tc.ID).Result(map[string]any{
		"message": "Expense logged",
		"id":      exp.ID,
	}).Write(w)
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.HasAll("username", "id") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Message("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	id := tc.Get("id")
	unlock := s.lockUser(username)
	defer unlock()

	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}
	rows, err := s.store.Rows(r.Context(), username)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return
	}

	// Linear scan over data rows; only the first match is updated even
	// when duplicate IDs exist.
	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i])
		if strings.TrimSpace(row[0]) != id {
			continue
		}
		updated := []string{
			id,
			row[1], // keep original timestamp
			tc.argOr("new_amount", row[2]),
			tc.argOr("new_category", row[3]),
			tc.argOr("new_description", row[4]),
			tc.argOr("new_notes", row[5]),
		}
		if err := s.store.UpdateRow(r.Context(), username, i+1, updated); err != nil {
			s.storeError(w, r, tc, err, "update")
			return
		}

		slog.InfoContext(r.Context(), "Expense updated",
			"username", username,
			"expense_id", id,
			"row", i+1)
		s.publishAudit(r.Context(), username, amqp.ActionEdit, parseID(id), updated[3])

		NewToolResponse(tc.ID).Message("Expense updated").Write(w)
		return
	}

	NewToolResponse(tc.ID).Status(http.StatusNotFound).Error("Expense not found").Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.HasAll("username", "id") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Error("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	id := tc.Get("id")
	unlock := s.lockUser(username)
	defer unlock()

	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}
	rows, err := s.store.Rows(r.Context(), username)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return
	}

	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i])
		if strings.TrimSpace(row[0]) != id {
			continue
		}
		if err := s.store.DeleteRow(r.Context(), username, i+1); err != nil {
			s.storeError(w, r, tc, err, "delete")
			return
		}

		slog.InfoContext(r.Context(), "Expense deleted",
			"username", username,
			"expense_id", id,
			"row", i+1)
		s.publishAudit(r.Context(), username, amqp.ActionDelete, parseID(id), row[3])

		NewToolResponse(tc.ID).Message("Expense deleted").Write(w)
		return
	}

	NewToolResponse(tc.ID).Status(http.StatusNotFound).Error("Expense not found").Write(w)
}

func (s *Server) handleGetExpenses(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.Has("username") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Message("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}
	rows, err := s.store.Rows(r.Context(), username)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return
	}

	// Last 5 data rows in physical order, keyed by header names.
	records := make([]map[string]string, 0, 5)
	start := 1
	if len(rows)-1 > 5 {
		start = len(rows) - 5
	}
	for i := start; i < len(rows); i++ {
		row := padRow(rows[i])
		rec := make(map[string]string, len(core.ExpenseHeader))
		for j, h := range core.ExpenseHeader {
			rec[h] = row[j]
		}
		records = append(records, rec)
	}

	NewToolResponse(tc.ID).Result(map[string]any{"expenses": records}).Write(w)
}

// argOr returns the argument value when present, else the fallback.
// Presence wins even for empty strings, so a field can be cleared.
func (t *ToolCall) argOr(key, fallback string) string {
	if t.Has(key) {
		return t.Get(key)
	}
	return fallback
}
