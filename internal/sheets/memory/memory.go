package memory

import (
	"context"
	"fmt"
	"sync"
)

// Store keeps tables in memory. It backs tests and the default dev
// backend; semantics match the spreadsheet adapter (1-based physical
// row indexes, header at row 1).
type Store struct {
	mu     sync.Mutex
	tables map[string][][]string
}

func New() *Store {
	return &Store{tables: make(map[string][][]string)}
}

func (s *Store) EnsureTable(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[name]; ok {
		return nil
	}
	s.tables[name] = [][]string{append([]string(nil), header...)}
	return nil
}

func (s *Store) Rows(_ context.Context, table string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %q not found", table)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, table string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("table %q not found", table)
	}
	s.tables[table] = append(rows, append([]string(nil), row...))
	return nil
}

func (s *Store) UpdateRow(_ context.Context, table string, index int, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("table %q not found", table)
	}
	if index < 1 || index > len(rows) {
		return fmt.Errorf("row %d out of range for table %q", index, table)
	}
	rows[index-1] = append([]string(nil), row...)
	return nil
}

func (s *Store) UpdateCell(_ context.Context, table string, index, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("table %q not found", table)
	}
	if index < 1 || index > len(rows) {
		return fmt.Errorf("row %d out of range for table %q", index, table)
	}
	row := rows[index-1]
	for len(row) < col {
		row = append(row, "")
	}
	row[col-1] = value
	rows[index-1] = row
	return nil
}

func (s *Store) DeleteRow(_ context.Context, table string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("table %q not found", table)
	}
	if index < 1 || index > len(rows) {
		return fmt.Errorf("row %d out of range for table %q", index, table)
	}
	s.tables[table] = append(rows[:index-1], rows[index:]...)
	return nil
}
