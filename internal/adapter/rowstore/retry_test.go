package rowstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpitch/matchbook/internal/adapter/rowstore"
	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// flakyStore fails the first failures calls with the configured error,
// then succeeds.
type flakyStore struct {
	failures int
	err      error
	calls    int
}

func (s *flakyStore) attempt() error {
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	return nil
}

func (s *flakyStore) ReadRange(ctx context.Context, table string) ([]ports.Row, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return []ports.Row{{"row-1"}}, nil
}

func (s *flakyStore) AppendRow(ctx context.Context, table string, row ports.Row) error {
	return s.attempt()
}

func (s *flakyStore) UpdateRange(ctx context.Context, table string, key string, row ports.Row) error {
	return s.attempt()
}

func (s *flakyStore) ClearRange(ctx context.Context, table string, key string) error {
	return s.attempt()
}

func TestWithRetry_RecoversFromTransientFailures(t *testing.T) {
	inner := &flakyStore{failures: 2, err: domain.StoreUnavailable(errors.New("quota exceeded"))}
	store := rowstore.WithRetry(inner)

	rows, err := store.ReadRange(context.Background(), "Matches")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyStore{failures: 10, err: domain.StoreUnavailable(errors.New("quota exceeded"))}
	store := rowstore.WithRetry(inner)

	err := store.AppendRow(context.Background(), "Bookings", ports.Row{"id"})
	assert.True(t, domain.IsKind(err, domain.KindStoreUnavailable), "got %v", err)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_BusinessErrorsPassThrough(t *testing.T) {
	inner := &flakyStore{failures: 10, err: domain.Errorf(domain.KindNotFound, "no such row")}
	store := rowstore.WithRetry(inner)

	err := store.UpdateRange(context.Background(), "Matches", "key", ports.Row{"key"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
	assert.Equal(t, 1, inner.calls, "terminal errors must not be retried")
}

func TestWithRetry_StopsWhenContextCancelled(t *testing.T) {
	inner := &flakyStore{failures: 10, err: domain.StoreUnavailable(errors.New("quota exceeded"))}
	store := rowstore.WithRetry(inner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.ClearRange(ctx, "Matches", "key")
	assert.True(t, domain.IsKind(err, domain.KindStoreUnavailable), "got %v", err)
	assert.Equal(t, 1, inner.calls)
}
