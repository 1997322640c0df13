package rowstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rowrepo "github.com/openpitch/matchbook/internal/adapter/repository/rowstore"
	"github.com/openpitch/matchbook/internal/adapter/rowstore/memory"
	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

func sampleMatch() *domain.Match {
	return &domain.Match{
		ID:          uuid.New(),
		OrganizerID: "org-1",
		Location: domain.Location{
			City:    "Milano",
			Region:  "MI",
			Venue:   "Campo Nord",
			Address: "Via Roma 1",
			Lat:     45.4642,
			Lng:     9.19,
		},
		Date:       "2026-09-12",
		Time:       "18:30",
		Format:     domain.FormatFive,
		Price:      7.5,
		TotalSeats: 10,
		Occupied:   3,
		Status:     domain.MatchActive,
	}
}

func TestMatchRepository_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	repo := rowrepo.NewMatchRepository(store)
	ctx := context.Background()

	match := sampleMatch()
	require.NoError(t, repo.Create(ctx, match))

	got, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, match, got)
}

func TestMatchRepository_GetByIDMissing(t *testing.T) {
	repo := rowrepo.NewMatchRepository(memory.NewStore())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
}

func TestMatchRepository_ListSkipsMalformedRows(t *testing.T) {
	store := memory.NewStore()
	repo := rowrepo.NewMatchRepository(store)
	ctx := context.Background()

	match := sampleMatch()
	require.NoError(t, repo.Create(ctx, match))
	require.NoError(t, store.AppendRow(ctx, "Matches", ports.Row{"not-a-uuid", "junk"}))

	matches, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID, matches[0].ID)
}

func TestMatchRepository_ShortRowsArePadded(t *testing.T) {
	store := memory.NewStore()
	repo := rowrepo.NewMatchRepository(store)
	ctx := context.Background()

	// Rows written by older revisions may miss trailing cells.
	id := uuid.New()
	require.NoError(t, store.AppendRow(ctx, "Matches", ports.Row{id.String(), "org-1", "Milano"}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Milano", got.Location.City)
	assert.Equal(t, 0, got.TotalSeats)
	assert.Equal(t, 0, got.Occupied)
}

func TestMatchRepository_UpdateOccupied(t *testing.T) {
	store := memory.NewStore()
	repo := rowrepo.NewMatchRepository(store)
	ctx := context.Background()

	match := sampleMatch()
	require.NoError(t, repo.Create(ctx, match))
	require.NoError(t, repo.UpdateOccupied(ctx, match.ID, 7))

	got, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Occupied)
	assert.Equal(t, match.TotalSeats, got.TotalSeats, "other cells must be preserved")
}

func TestMatchRepository_UpdateStatus(t *testing.T) {
	store := memory.NewStore()
	repo := rowrepo.NewMatchRepository(store)
	ctx := context.Background()

	match := sampleMatch()
	require.NoError(t, repo.Create(ctx, match))
	require.NoError(t, repo.UpdateStatus(ctx, match.ID, domain.MatchCancelled))

	got, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCancelled, got.Status)
	assert.Equal(t, match.Occupied, got.Occupied)
}
