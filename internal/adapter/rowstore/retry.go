package rowstore

import (
	"context"
	"time"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

const (
	maxAttempts = 3
	baseBackoff = 200 * time.Millisecond
)

type retryStore struct {
	inner ports.RowStore
}

// WithRetry wraps a RowStore so transient failures are retried with
// backoff before surfacing. Only STORE_UNAVAILABLE is retried;
// business-rule failures pass through untouched.
func WithRetry(inner ports.RowStore) ports.RowStore {
	return &retryStore{inner: inner}
}

func (s *retryStore) ReadRange(ctx context.Context, table string) ([]ports.Row, error) {
	var rows []ports.Row
	err := s.do(ctx, func() error {
		var err error
		rows, err = s.inner.ReadRange(ctx, table)
		return err
	})
	return rows, err
}

func (s *retryStore) AppendRow(ctx context.Context, table string, row ports.Row) error {
	return s.do(ctx, func() error {
		return s.inner.AppendRow(ctx, table, row)
	})
}

func (s *retryStore) UpdateRange(ctx context.Context, table string, key string, row ports.Row) error {
	return s.do(ctx, func() error {
		return s.inner.UpdateRange(ctx, table, key, row)
	})
}

func (s *retryStore) ClearRange(ctx context.Context, table string, key string) error {
	return s.do(ctx, func() error {
		return s.inner.ClearRange(ctx, table, key)
	})
}

func (s *retryStore) do(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil || domain.KindOf(err) != domain.KindStoreUnavailable {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(baseBackoff * time.Duration(attempt)):
		}
	}
	return err
}
