package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/services"
)

func TestCreateMatch_Validation(t *testing.T) {
	e := newEnv(t)
	start := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name   string
		mutate func(*services.MatchSpec)
	}{
		{"one seat", func(s *services.MatchSpec) { s.TotalSeats = 1 }},
		{"unknown format", func(s *services.MatchSpec) { s.Format = "6" }},
		{"negative price", func(s *services.MatchSpec) { s.Price = -1 }},
		{"bad date", func(s *services.MatchSpec) { s.Date = "01/03/2024" }},
		{"bad time", func(s *services.MatchSpec) { s.Time = "quarter past six" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := matchSpec(10, start)
			tc.mutate(&spec)

			_, err := e.matchSvc.CreateMatch(context.Background(), "org-1", spec)
			assert.True(t, domain.IsKind(err, domain.KindInvalidArgument), "got %v", err)
		})
	}
}

func TestCreateMatch_StartsEmptyAndActive(t *testing.T) {
	e := newEnv(t)

	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))

	got, err := e.matchSvc.GetMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Occupied)
	assert.Equal(t, domain.MatchActive, got.Status)
	assert.Equal(t, "org-1", got.OrganizerID)
}

func TestListMatches_UpcomingSoonestFirst(t *testing.T) {
	e := newEnv(t)
	now := time.Now()

	later := e.createMatch(t, "org-1", 10, now.Add(72*time.Hour))
	soon := e.createMatch(t, "org-1", 10, now.Add(24*time.Hour))
	middle := e.createMatch(t, "org-1", 10, now.Add(48*time.Hour))

	matches, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, soon.ID, matches[0].ID)
	assert.Equal(t, middle.ID, matches[1].ID)
	assert.Equal(t, later.ID, matches[2].ID)
}

func TestListMatches_PastMostRecentFirst(t *testing.T) {
	e := newEnv(t)
	now := time.Now()

	oldest := e.createMatch(t, "org-1", 10, now.Add(-72*time.Hour))
	recent := e.createMatch(t, "org-1", 10, now.Add(-24*time.Hour))
	e.createMatch(t, "org-1", 10, now.Add(24*time.Hour)) // upcoming, excluded

	matches, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{IncludePast: true})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, recent.ID, matches[0].ID)
	assert.Equal(t, oldest.ID, matches[1].ID)
}

func TestListMatches_Filters(t *testing.T) {
	e := newEnv(t)
	start := time.Now().Add(24 * time.Hour)

	spec := matchSpec(10, start)
	spec.City = "Torino"
	spec.Region = "TO"
	spec.Format = "7"
	turin, err := e.matchSvc.CreateMatch(context.Background(), "org-1", spec)
	require.NoError(t, err)

	e.createMatch(t, "org-1", 10, start) // Milano, format 5

	byCity, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{City: "tori"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, turin.ID, byCity[0].ID)

	byFormat, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{Format: "7"})
	require.NoError(t, err)
	require.Len(t, byFormat, 1)
	assert.Equal(t, turin.ID, byFormat[0].ID)

	byRegion, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{Region: "to"})
	require.NoError(t, err)
	require.Len(t, byRegion, 1)

	none, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{City: "tori", Format: "5"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListMatches_ExcludesCancelled(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))
	require.NoError(t, e.matchSvc.CancelMatch(context.Background(), match.ID, "org-1"))

	matches, err := e.matchSvc.ListMatches(context.Background(), services.ListMatchesRequest{})
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Still reachable by id for history.
	got, err := e.matchSvc.GetMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCancelled, got.Status)
}

func TestUpdateMatch_OrganizerOnly(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))

	_, err := e.matchSvc.UpdateMatch(context.Background(), match.ID, "someone-else", matchSpec(12, time.Now().Add(48*time.Hour)))
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized), "got %v", err)
}

func TestUpdateMatch_PreservesOccupiedAndStatus(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))
	e.book(t, match.ID, "user-1")

	updated, err := e.matchSvc.UpdateMatch(context.Background(), match.ID, "org-1", matchSpec(12, time.Now().Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 12, updated.TotalSeats)
	assert.Equal(t, 1, updated.Occupied)
	assert.Equal(t, domain.MatchActive, updated.Status)
}

func TestUpdateMatch_CancelledFailsConflict(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))
	require.NoError(t, e.matchSvc.CancelMatch(context.Background(), match.ID, "org-1"))

	_, err := e.matchSvc.UpdateMatch(context.Background(), match.ID, "org-1", matchSpec(12, time.Now().Add(48*time.Hour)))
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)
}

func TestCancelMatch_KeepsBookingsAndNotifiesBookers(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))
	e.book(t, match.ID, "user-1")
	e.book(t, match.ID, "user-2")

	require.NoError(t, e.matchSvc.CancelMatch(context.Background(), match.ID, "org-1"))

	bookings, err := e.bookingSvc.ListBookingsForMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	sent := e.notifier.sent()
	assert.Contains(t, sent, "user-1:match_cancelled")
	assert.Contains(t, sent, "user-2:match_cancelled")
}

func TestCancelMatch_SecondCancelFailsConflict(t *testing.T) {
	e := newEnv(t)
	match := e.createMatch(t, "org-1", 10, time.Now().Add(24*time.Hour))
	require.NoError(t, e.matchSvc.CancelMatch(context.Background(), match.ID, "org-1"))

	err := e.matchSvc.CancelMatch(context.Background(), match.ID, "org-1")
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)
}
