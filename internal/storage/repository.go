package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	ports "vocespese/internal/sheets"

	_ "modernc.org/sqlite"
)

const tableCols = 6

// SQLiteStore persists the same row-oriented tables the spreadsheet
// adapter serves, keyed by table name and 1-based physical position.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) EnsureTable(ctx context.Context, name string, header []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM table_rows WHERE table_name = ? AND pos = 1`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check table %s: %w", name, err)
	}
	if exists > 0 {
		return nil
	}

	cells := padCells(header)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO table_rows (table_name, pos, c0, c1, c2, c3, c4, c5) VALUES (?, 1, ?, ?, ?, ?, ?, ?)`,
		name, cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
	if err != nil {
		return fmt.Errorf("write header for %s: %w", name, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Rows(ctx context.Context, table string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c0, c1, c2, c3, c4, c5 FROM table_rows WHERE table_name = ? ORDER BY pos`, table)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, tableCols)
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("scan row from %s: %w", table, err)
		}
		out = append(out, trimTrailing(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table %s: %w", table, err)
	}
	if out == nil {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return out, nil
}

func (s *SQLiteStore) AppendRow(ctx context.Context, table string, row []string) error {
	cells := padCells(row)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO table_rows (table_name, pos, c0, c1, c2, c3, c4, c5)
		 SELECT ?, COALESCE(MAX(pos), 0) + 1, ?, ?, ?, ?, ?, ?
		 FROM table_rows WHERE table_name = ?`,
		table, cells[0], cells[1], cells[2], cells[3], cells[4], cells[5], table)
	if err != nil {
		return fmt.Errorf("append to %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) UpdateRow(ctx context.Context, table string, index int, row []string) error {
	cells := padCells(row)
	res, err := s.db.ExecContext(ctx,
		`UPDATE table_rows SET c0 = ?, c1 = ?, c2 = ?, c3 = ?, c4 = ?, c5 = ?
		 WHERE table_name = ? AND pos = ?`,
		cells[0], cells[1], cells[2], cells[3], cells[4], cells[5], table, index)
	if err != nil {
		return fmt.Errorf("update row %d in %s: %w", index, table, err)
	}
	return requireRow(res, table, index)
}

func (s *SQLiteStore) UpdateCell(ctx context.Context, table string, index, col int, value string) error {
	if col < 1 || col > tableCols {
		return fmt.Errorf("invalid column: %d", col)
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE table_rows SET c%d = ? WHERE table_name = ? AND pos = ?`, col-1),
		value, table, index)
	if err != nil {
		return fmt.Errorf("update cell (%d,%d) in %s: %w", index, col, table, err)
	}
	return requireRow(res, table, index)
}

func (s *SQLiteStore) DeleteRow(ctx context.Context, table string, index int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM table_rows WHERE table_name = ? AND pos = ?`, table, index)
	if err != nil {
		return fmt.Errorf("delete row %d from %s: %w", index, table, err)
	}
	if err := requireRow(res, table, index); err != nil {
		return err
	}
	// Shift later rows up so positions stay dense, matching sheet
	// row-deletion semantics. Two steps via negative positions to avoid
	// transient primary-key collisions while rows move.
	_, err = tx.ExecContext(ctx,
		`UPDATE table_rows SET pos = -(pos - 1) WHERE table_name = ? AND pos > ?`, table, index)
	if err != nil {
		return fmt.Errorf("compact rows in %s: %w", table, err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE table_rows SET pos = -pos WHERE table_name = ? AND pos < 0`, table)
	if err != nil {
		return fmt.Errorf("compact rows in %s: %w", table, err)
	}
	return tx.Commit()
}

func requireRow(res sql.Result, table string, index int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("row %d out of range for table %q", index, table)
	}
	return nil
}

func padCells(row []string) []string {
	cells := make([]string, tableCols)
	copy(cells, row)
	return cells
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 2 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
