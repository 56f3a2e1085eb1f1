package core

import (
	"testing"
	"time"
)

func expAt(ts time.Time, amount, category string) Expense {
	return Expense{ID: 1, Timestamp: ts, Amount: amount, Category: category, Description: "x"}
}

func TestPeriodContains(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		period Period
		ts     time.Time
		want   bool
	}{
		{"today matches same date", PeriodToday, time.Date(2025, 8, 15, 23, 59, 0, 0, time.Local), true},
		{"today excludes yesterday", PeriodToday, now.AddDate(0, 0, -1), false},
		{"today excludes tomorrow", PeriodToday, now.AddDate(0, 0, 1), false},
		{"week includes exactly 7 days old", PeriodWeek, now.AddDate(0, 0, -7), true},
		{"week excludes 8 days old", PeriodWeek, now.AddDate(0, 0, -8), false},
		{"week includes now", PeriodWeek, now, true},
		{"month matches same month", PeriodMonth, time.Date(2025, 8, 1, 0, 0, 0, 0, time.Local), true},
		{"month excludes other month", PeriodMonth, time.Date(2025, 7, 31, 0, 0, 0, 0, time.Local), false},
		// Month comparison ignores the year; rows from last August match.
		{"month matches same month of previous year", PeriodMonth, time.Date(2024, 8, 20, 0, 0, 0, 0, time.Local), true},
		{"unknown period matches everything", Period("quarter"), now.AddDate(-3, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.Contains(tt.ts, now); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.Local)
	items := []Expense{
		expAt(now, "10", "food"),
		expAt(now, "5.5", "food"),
		expAt(now, "20", "travel"),
		expAt(now.AddDate(0, -1, 0), "100", "food"), // July, out of month window
	}

	s := Summarize(items, PeriodMonth, "", now)
	if s.Count != 3 || s.Total != 35.5 {
		t.Errorf("month summary = %+v, want total 35.5 count 3", s)
	}

	s = Summarize(items, PeriodMonth, "food", now)
	if s.Count != 2 || s.Total != 15.5 {
		t.Errorf("category summary = %+v, want total 15.5 count 2", s)
	}

	s = Summarize(nil, PeriodMonth, "", now)
	if s.Count != 0 || s.Total != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestTopCategories(t *testing.T) {
	now := time.Now()
	items := []Expense{
		expAt(now, "30", "A"),
		expAt(now, "50", "B"),
		expAt(now, "20", "C"),
		expAt(now, "10", "D"),
	}

	top := TopCategories(items, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	want := []string{"B", "A", "C"}
	for i, name := range want {
		if top[i].Category != name {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Category, name)
		}
	}
}

func TestTopCategoriesTieKeepsFirstAppearance(t *testing.T) {
	now := time.Now()
	items := []Expense{
		expAt(now, "10", "X"),
		expAt(now, "10", "Y"),
		expAt(now, "10", "Z"),
	}

	top := TopCategories(items, 3)
	want := []string{"X", "Y", "Z"}
	for i, name := range want {
		if top[i].Category != name {
			t.Errorf("tie order: top[%d] = %s, want %s", i, top[i].Category, name)
		}
	}
}

func TestTopCategoriesSumsAndSkipsBadAmounts(t *testing.T) {
	now := time.Now()
	items := []Expense{
		expAt(now, "10", "A"),
		expAt(now, "15", "A"),
		expAt(now, "oops", "B"),
	}

	top := TopCategories(items, 3)
	if len(top) != 1 || top[0].Category != "A" || top[0].Amount != 25 {
		t.Errorf("unexpected top: %+v", top)
	}
}
