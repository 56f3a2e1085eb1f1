package http

import (
	"log/slog"
	"net/http"
	"strings"

	"vocespese/internal/amqp"
	"vocespese/internal/core"
)

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.HasAll("username", "category", "amount") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Message("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	category := tc.Get("category")
	amount := tc.Get("amount")
	unlock := s.lockUser(username)
	defer unlock()

	// The primary user table is resolved too, even though this handler
	// never touches it; first-time users get both tables in one call.
	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}
	budgetTable := username + core.BudgetSuffix
	if err := s.store.EnsureTable(r.Context(), budgetTable, core.ExpenseHeader); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return
	}

	rows, err := s.store.Rows(r.Context(), budgetTable)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return
	}

	// Upsert by exact category match on the first column.
	found := false
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) != category {
			continue
		}
		if err := s.store.UpdateCell(r.Context(), budgetTable, i+1, 2, amount); err != nil {
			s.storeError(w, r, tc, err, "update")
			return
		}
		found = true
		break
	}
	if !found {
		if err := s.store.AppendRow(r.Context(), budgetTable, []string{category, amount}); err != nil {
			s.storeError(w, r, tc, err, "append")
			return
		}
	}

	slog.InfoContext(r.Context(), "Budget updated",
		"username", username,
		"category", category,
		"amount", amount,
		"existing", found)
	s.publishAudit(r.Context(), username, amqp.ActionSetBudget, 0, category)

	NewToolResponse(tc.ID).Message("Budget updated").Write(w)
}
