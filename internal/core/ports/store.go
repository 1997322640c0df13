package ports

import "context"

// Row is one stored row; the first cell is the row key.
type Row []string

// RowStore is the weak range interface the external spreadsheet-style
// store exposes. There are no transactions, no row locks and no indexes:
// callers read whole tables and filter in memory, and address single
// rows by key only, never by position.
type RowStore interface {
	ReadRange(ctx context.Context, table string) ([]Row, error)
	AppendRow(ctx context.Context, table string, row Row) error
	UpdateRange(ctx context.Context, table string, key string, row Row) error

	// ClearRange blanks the row with the given key. Clearing an absent
	// row is a no-op so racing cancellations stay idempotent.
	ClearRange(ctx context.Context, table string, key string) error
}
