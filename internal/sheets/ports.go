package sheets

import "context"

// Ports for outbound table-store adapters. Tables are row-oriented:
// row 1 is the header, data starts at row 2, and all row indexes in
// this package are 1-based physical positions.
type (
	TableEnsurer interface {
		// EnsureTable resolves a table by name, creating it with the
		// given header row when absent. Repeated calls are idempotent
		// and never duplicate the header.
		EnsureTable(ctx context.Context, name string, header []string) error
	}

	RowReader interface {
		// Rows returns every row of the table, header included, in
		// physical order.
		Rows(ctx context.Context, table string) ([][]string, error)
	}

	RowAppender interface {
		AppendRow(ctx context.Context, table string, row []string) error
	}

	RowUpdater interface {
		// UpdateRow overwrites the row at the given 1-based index.
		UpdateRow(ctx context.Context, table string, index int, row []string) error
		// UpdateCell overwrites a single cell; col is 1-based.
		UpdateCell(ctx context.Context, table string, index, col int, value string) error
	}

	RowDeleter interface {
		// DeleteRow removes the row at the given 1-based index,
		// shifting later rows up.
		DeleteRow(ctx context.Context, table string, index int) error
	}
)

// Store is the full surface the operation handlers need.
type Store interface {
	TableEnsurer
	RowReader
	RowAppender
	RowUpdater
	RowDeleter
}
