package http

import (
	"net/http"
	"time"

	"vocespese/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.Has("username") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Message("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	period := tc.Get("period")
	if period == "" {
		period = string(core.PeriodMonth)
	}
	category := tc.Get("category")

	items, errResp := s.loadExpenses(w, r, tc, username)
	if errResp {
		return
	}

	sum := core.Summarize(items, core.Period(period), category, time.Now())

	NewToolResponse(tc.ID).Result(map[string]any{
		"total": sum.Total,
		"count": sum.Count,
	}).Write(w)
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	tc := parseRequest(w, r)
	if tc == nil {
		return
	}
	if !tc.Has("username") {
		NewToolResponse(tc.ID).Status(http.StatusBadRequest).Message("Missing fields").Write(w)
		return
	}

	username := tc.Get("username")
	items, errResp := s.loadExpenses(w, r, tc, username)
	if errResp {
		return
	}

	type categoryRecord struct {
		Category string  `json:"Category"`
		Amount   float64 `json:"Amount"`
	}
	top := core.TopCategories(items, 3)
	records := make([]categoryRecord, 0, len(top))
	for _, ct := range top {
		records = append(records, categoryRecord{Category: ct.Category, Amount: ct.Amount})
	}

	NewToolResponse(tc.ID).Result(map[string]any{"top_categories": records}).Write(w)
}

// loadExpenses resolves the user table and parses its data rows. Rows
// that do not parse (stray cells, hand-edited sheets) are skipped. The
// bool return reports that an error response was already written.
func (s *Server) loadExpenses(w http.ResponseWriter, r *http.Request, tc *ToolCall, username string) ([]core.Expense, bool) {
	if err := s.resolveUserTable(r.Context(), username); err != nil {
		s.storeError(w, r, tc, err, "resolve")
		return nil, true
	}
	rows, err := s.store.Rows(r.Context(), username)
	if err != nil {
		s.storeError(w, r, tc, err, "read")
		return nil, true
	}
	items := make([]core.Expense, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		e, err := core.ExpenseFromRow(rows[i])
		if err != nil {
			continue
		}
		items = append(items, e)
	}
	return items, false
}
