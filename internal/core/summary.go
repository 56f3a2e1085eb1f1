package core

import (
	"sort"
	"strings"
	"time"
)

// Period selects the time window for summaries.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Contains reports whether a timestamp falls inside the period relative
// to now. "week" is a rolling window with an inclusive 7-day lower
// bound. "month" compares the month number only, so rows from the same
// month of a different year match. Unknown periods match everything.
func (p Period) Contains(ts, now time.Time) bool {
	switch p {
	case PeriodToday:
		ty, tm, td := ts.Date()
		ny, nm, nd := now.Date()
		return ty == ny && tm == nm && td == nd
	case PeriodWeek:
		return !ts.Before(now.AddDate(0, 0, -7))
	case PeriodMonth:
		return ts.Month() == now.Month()
	default:
		return true
	}
}

// Summary is the aggregate for a filtered set of expenses.
type Summary struct {
	Total float64
	Count int
}

// Summarize filters expenses by period and optional exact category and
// sums their amounts. Rows whose amount does not parse contribute zero
// but still count, the way a NaN-free sheet sum behaves.
func Summarize(items []Expense, p Period, category string, now time.Time) Summary {
	var s Summary
	for _, e := range items {
		if !p.Contains(e.Timestamp, now) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if v, err := e.AmountValue(); err == nil {
			s.Total += v
		}
		s.Count++
	}
	return s
}

// CategoryTotal is a category with its summed amount.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// TopCategories groups expenses by category, sums amounts, and returns
// the n largest. Ties keep first-appearance order: the sort is stable
// over the order categories were first seen, which makes the result
// deterministic.
func TopCategories(items []Expense, n int) []CategoryTotal {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, e := range items {
		v, err := e.AmountValue()
		if err != nil {
			continue
		}
		name := strings.TrimSpace(e.Category)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += v
	}
	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, CategoryTotal{Category: name, Amount: sums[name]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
