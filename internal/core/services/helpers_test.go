package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	rowrepo "github.com/openpitch/matchbook/internal/adapter/repository/rowstore"
	"github.com/openpitch/matchbook/internal/adapter/rowstore/memory"
	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
	"github.com/openpitch/matchbook/internal/core/services"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(ctx context.Context, userID string, matchID uuid.UUID, kind ports.NotificationKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, userID+":"+string(kind))
	return nil
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type env struct {
	store      *memory.Store
	matches    *rowrepo.MatchRepository
	bookings   *rowrepo.BookingRepository
	ratings    *rowrepo.RatingRepository
	users      *rowrepo.UserRepository
	notifier   *recordingNotifier
	reconciler *services.Reconciler
	matchSvc   *services.MatchService
	bookingSvc *services.BookingService
	ratingSvc  *services.RatingService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	matches := rowrepo.NewMatchRepository(store)
	bookings := rowrepo.NewBookingRepository(store)
	ratings := rowrepo.NewRatingRepository(store)
	users := rowrepo.NewUserRepository(store)

	notify := &recordingNotifier{}
	capacity := services.NewCapacityCounter(matches)
	reconciler := services.NewReconciler(matches, bookings, notify)

	return &env{
		store:      store,
		matches:    matches,
		bookings:   bookings,
		ratings:    ratings,
		users:      users,
		notifier:   notify,
		reconciler: reconciler,
		matchSvc:   services.NewMatchService(matches, bookings, notify),
		bookingSvc: services.NewBookingService(matches, bookings, capacity, reconciler, notify),
		ratingSvc:  services.NewRatingService(matches, bookings, ratings, users),
	}
}

func matchSpec(seats int, start time.Time) services.MatchSpec {
	return services.MatchSpec{
		Venue:      "Campo Nord",
		Address:    "Via Roma 1",
		City:       "Milano",
		Region:     "MI",
		Lat:        45.4642,
		Lng:        9.19,
		Date:       start.Format(domain.DateLayout),
		Time:       start.Format(domain.TimeLayout),
		Format:     "5",
		Price:      7.5,
		TotalSeats: seats,
	}
}

func (e *env) createMatch(t *testing.T, organizer string, seats int, start time.Time) *domain.Match {
	t.Helper()

	match, err := e.matchSvc.CreateMatch(context.Background(), organizer, matchSpec(seats, start))
	require.NoError(t, err)
	return match
}

func (e *env) book(t *testing.T, matchID uuid.UUID, user string) uuid.UUID {
	t.Helper()

	resp, err := e.bookingSvc.CreateBooking(context.Background(), services.CreateBookingRequest{
		MatchID: matchID.String(),
		UserID:  user,
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.BookingID)
}

// seedBooking writes a ledger row directly, bypassing the booking gate.
// Used to build rosters for matches that are already in the past.
func (e *env) seedBooking(t *testing.T, matchID uuid.UUID, user string, at time.Time) uuid.UUID {
	t.Helper()

	booking := &domain.Booking{ID: uuid.New(), MatchID: matchID, UserID: user, CreatedAt: at}
	require.NoError(t, e.bookings.Create(context.Background(), booking))
	return booking.ID
}

func (e *env) seedUser(t *testing.T, id, first, last, role string) {
	t.Helper()

	require.NoError(t, e.users.Create(context.Background(), &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: first,
		LastName:  last,
		Role:      role,
	}))
}
