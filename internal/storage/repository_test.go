package storage

import (
	"context"
	"path/filepath"
	"testing"
)

var header = []string{"ID", "Timestamp", "Amount", "Category", "Description", "Notes"}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnsureTableIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, "mario", header); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := store.AppendRow(ctx, "mario", []string{"1", "ts", "5", "bar", "d", ""}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.EnsureTable(ctx, "mario", header); err != nil {
		t.Fatalf("ensure again: %v", err)
	}

	rows, err := store.Rows(ctx, "mario")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len = %d, want 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "Notes" {
		t.Errorf("header = %v", rows[0])
	}
}

func TestRowsUnknownTable(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Rows(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestAppendAssignsSequentialPositions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureTable(ctx, "t", header); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, id := range []string{"1", "2", "3"} {
		if err := store.AppendRow(ctx, "t", []string{id, "ts", "1", "c", "d", ""}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	rows, _ := store.Rows(ctx, "t")
	if len(rows) != 4 {
		t.Fatalf("rows len = %d, want 4", len(rows))
	}
	for i, want := range []string{"ID", "1", "2", "3"} {
		if rows[i][0] != want {
			t.Errorf("row %d first cell = %q, want %q", i, rows[i][0], want)
		}
	}
}

func TestUpdateRowAndCell(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_ = store.EnsureTable(ctx, "t", header)
	_ = store.AppendRow(ctx, "t", []string{"1", "ts", "10", "bar", "d", "n"})

	if err := store.UpdateRow(ctx, "t", 2, []string{"1", "ts", "20", "bar", "d", "n"}); err != nil {
		t.Fatalf("update row: %v", err)
	}
	if err := store.UpdateCell(ctx, "t", 2, 4, "fuel"); err != nil {
		t.Fatalf("update cell: %v", err)
	}

	rows, _ := store.Rows(ctx, "t")
	if rows[1][2] != "20" || rows[1][3] != "fuel" {
		t.Errorf("row after updates = %v", rows[1])
	}

	if err := store.UpdateRow(ctx, "t", 9, header); err == nil {
		t.Error("expected out-of-range error")
	}
	if err := store.UpdateCell(ctx, "t", 2, 7, "x"); err == nil {
		t.Error("expected invalid column error")
	}
}

func TestDeleteRowCompacts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_ = store.EnsureTable(ctx, "t", header)
	for _, id := range []string{"1", "2", "3", "4"} {
		_ = store.AppendRow(ctx, "t", []string{id, "ts", "1", "c", "d", ""})
	}

	if err := store.DeleteRow(ctx, "t", 3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rows, _ := store.Rows(ctx, "t")
	if len(rows) != 4 {
		t.Fatalf("rows len = %d, want 4", len(rows))
	}
	for i, want := range []string{"ID", "1", "3", "4"} {
		if rows[i][0] != want {
			t.Errorf("row %d = %v, want first cell %q", i, rows[i], want)
		}
	}

	// Positions stay dense, so a fresh append lands right after.
	if err := store.AppendRow(ctx, "t", []string{"5", "ts", "1", "c", "d", ""}); err != nil {
		t.Fatalf("append after delete: %v", err)
	}
	rows, _ = store.Rows(ctx, "t")
	if rows[4][0] != "5" {
		t.Errorf("appended row = %v", rows[4])
	}

	if err := store.DeleteRow(ctx, "t", 99); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestRowsTrimTrailingBlanks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_ = store.EnsureTable(ctx, "budget", header)
	_ = store.AppendRow(ctx, "budget", []string{"groceries", "300"})

	rows, _ := store.Rows(ctx, "budget")
	if len(rows[1]) != 2 {
		t.Errorf("trailing blanks kept: %v", rows[1])
	}
	if rows[1][0] != "groceries" || rows[1][1] != "300" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestTablesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_ = store.EnsureTable(ctx, "a", header)
	_ = store.EnsureTable(ctx, "b", header)
	_ = store.AppendRow(ctx, "a", []string{"1", "ts", "1", "c", "d", ""})

	rowsA, _ := store.Rows(ctx, "a")
	rowsB, _ := store.Rows(ctx, "b")
	if len(rowsA) != 2 || len(rowsB) != 1 {
		t.Errorf("a = %d rows, b = %d rows", len(rowsA), len(rowsB))
	}
}
