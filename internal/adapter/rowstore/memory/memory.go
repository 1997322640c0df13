package memory

import (
	"context"
	"sync"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Store is an in-process RowStore with the same weak semantics as the
// real backends: whole-range reads, key-addressed writes, cleared rows
// left blank rather than removed. Service tests run against it.
type Store struct {
	mu     sync.Mutex
	tables map[string][]ports.Row
}

func NewStore() *Store {
	return &Store{tables: make(map[string][]ports.Row)}
}

func (s *Store) ReadRange(ctx context.Context, table string) ([]ports.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []ports.Row
	for _, row := range s.tables[table] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rows = append(rows, append(ports.Row(nil), row...))
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, table string, row ports.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = append(s.tables[table], append(ports.Row(nil), row...))
	return nil
}

func (s *Store) UpdateRange(ctx context.Context, table string, key string, row ports.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tables[table] {
		if len(existing) > 0 && existing[0] == key {
			s.tables[table][i] = append(ports.Row(nil), row...)
			return nil
		}
	}
	return domain.Errorf(domain.KindNotFound, "row %q not found in %s", key, table)
}

func (s *Store) ClearRange(ctx context.Context, table string, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tables[table] {
		if len(existing) > 0 && existing[0] == key {
			s.tables[table][i] = ports.Row{}
			return nil
		}
	}
	return nil
}
