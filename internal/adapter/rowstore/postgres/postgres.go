package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Store keeps every table's rows in a single relational table while
// exposing only the four weak range primitives. Deployments without a
// Google account get the same semantics the sheet store has: whole-range
// reads and key-addressed writes, nothing transactional crossing rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS sheet_rows (
	seq BIGSERIAL PRIMARY KEY,
	tbl TEXT NOT NULL,
	row_key TEXT NOT NULL,
	cells TEXT[] NOT NULL
)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) ReadRange(ctx context.Context, table string) ([]ports.Row, error) {
	query := `SELECT cells FROM sheet_rows WHERE tbl = $1 ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	var out []ports.Row
	for rows.Next() {
		var cells []string
		if err := rows.Scan(pq.Array(&cells)); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		out = append(out, ports.Row(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, table string, row ports.Row) error {
	key := ""
	if len(row) > 0 {
		key = row[0]
	}

	query := `INSERT INTO sheet_rows (tbl, row_key, cells) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, table, key, pq.Array([]string(row))); err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) UpdateRange(ctx context.Context, table string, key string, row ports.Row) error {
	query := `UPDATE sheet_rows SET cells = $3 WHERE tbl = $1 AND row_key = $2`

	result, err := s.db.ExecContext(ctx, query, table, key, pq.Array([]string(row)))
	if err != nil {
		return domain.StoreUnavailable(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if affected == 0 {
		return domain.Errorf(domain.KindNotFound, "row %q not found in %s", key, table)
	}
	return nil
}

func (s *Store) ClearRange(ctx context.Context, table string, key string) error {
	query := `DELETE FROM sheet_rows WHERE tbl = $1 AND row_key = $2`
	if _, err := s.db.ExecContext(ctx, query, table, key); err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}
