package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wire format for the Timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// ExpenseHeader is the fixed header row written to every user table on
// creation. Column order is part of the contract: edits address columns
// by position.
var ExpenseHeader = []string{"ID", "Timestamp", "Amount", "Category", "Description", "Notes"}

// BudgetSuffix is appended to a username to form the companion budget
// table name.
const BudgetSuffix = "_budget"

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidID        = errors.New("invalid id")
)

type (
	// Expense is one data row of a user table. Amount keeps the raw
	// string as submitted so reads round-trip exactly; use AmountValue
	// for arithmetic.
	Expense struct {
		ID          int64
		Timestamp   time.Time
		Amount      string
		Category    string
		Description string
		Notes       string
	}

	// Budget is one row of a budget table, unique by Category.
	Budget struct {
		Category string
		Amount   string
	}
)

// AmountValue parses the stored amount as a float.
func (e Expense) AmountValue() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(e.Amount), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// Row renders the expense in header column order.
func (e Expense) Row() []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Timestamp.Format(TimestampLayout),
		e.Amount,
		e.Category,
		e.Description,
		e.Notes,
	}
}

// Record returns the expense keyed by header names, the shape the list
// endpoint hands back to the caller.
func (e Expense) Record() map[string]string {
	row := e.Row()
	rec := make(map[string]string, len(ExpenseHeader))
	for i, h := range ExpenseHeader {
		rec[h] = row[i]
	}
	return rec
}

// ExpenseFromRow parses a raw table row. Short rows are padded with
// empty cells first; the sheet trims trailing blanks on read.
func ExpenseFromRow(row []string) (Expense, error) {
	if len(row) < len(ExpenseHeader) {
		padded := make([]string, len(ExpenseHeader))
		copy(padded, row)
		row = padded
	}
	id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return Expense{}, ErrInvalidID
	}
	ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(row[1]), time.Local)
	if err != nil {
		return Expense{}, ErrInvalidTimestamp
	}
	return Expense{
		ID:          id,
		Timestamp:   ts,
		Amount:      strings.TrimSpace(row[2]),
		Category:    row[3],
		Description: row[4],
		Notes:       row[5],
	}, nil
}

// NextID computes the ID for a new expense from the current physical
// row count, header included: the row count itself when data rows
// exist, 1 when the table holds only the header.
func NextID(rowCount int) int64 {
	if rowCount > 1 {
		return int64(rowCount)
	}
	return 1
}
