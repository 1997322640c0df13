package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

type CreateBookingRequest struct {
	MatchID string `json:"match_id"`
	UserID  string `json:"user_id"`
}

type CreateBookingResponse struct {
	BookingID string `json:"booking_id"`
	MatchID   string `json:"match_id"`
	CreatedAt string `json:"created_at"`
}

// BookingService owns the booking ledger. The store gives it no
// compare-and-swap and no multi-row atomicity, so every check-then-write
// below is optimistic: verified as late as possible, raced anyway, and
// backed by the reconciler when a race slips through.
type BookingService struct {
	matches    ports.MatchRepository
	bookings   ports.BookingRepository
	capacity   *CapacityCounter
	reconciler *Reconciler
	notifier   ports.Notifier
	now        func() time.Time
}

func NewBookingService(
	matches ports.MatchRepository,
	bookings ports.BookingRepository,
	capacity *CapacityCounter,
	reconciler *Reconciler,
	notifier ports.Notifier,
) *BookingService {
	return &BookingService{
		matches:    matches,
		bookings:   bookings,
		capacity:   capacity,
		reconciler: reconciler,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInvalidArgument, "invalid match id")
	}
	if req.UserID == "" {
		return nil, domain.Errorf(domain.KindInvalidArgument, "missing user id")
	}

	// Repair any counter drift on this match before trusting occupied.
	if err := s.reconciler.ReconcileMatch(ctx, matchID); err != nil {
		return nil, err
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsActive() {
		return nil, domain.Errorf(domain.KindConflict, "match %s is cancelled", matchID)
	}
	if domain.Classify(match, s.now()) == domain.PartitionPast {
		return nil, domain.Errorf(domain.KindConflict, "match %s has already been played", matchID)
	}

	// Dedup and capacity, verified right before the append.
	active, err := s.bookings.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	for i := range active {
		if active[i].UserID == req.UserID {
			return nil, domain.Errorf(domain.KindAlreadyBooked, "user %s already booked match %s", req.UserID, matchID)
		}
	}
	if len(active) >= match.TotalSeats || match.Occupied >= match.TotalSeats {
		return nil, domain.Errorf(domain.KindMatchFull, "match %s is full", matchID)
	}

	booking := &domain.Booking{
		ID:        uuid.New(),
		MatchID:   matchID,
		UserID:    req.UserID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// The append can race a concurrent identical request. Re-read, and
	// if another booking for this pair landed ahead of ours in the
	// race-winner ordering, withdraw ours and report the duplicate.
	after, err := s.bookings.ListByMatch(ctx, matchID)
	if err == nil {
		if winner := earliestForUser(after, req.UserID); winner != nil && winner.ID != booking.ID {
			if err := s.bookings.Delete(ctx, booking.ID); err != nil {
				log.Printf("Failed to withdraw losing booking %s: %v", booking.ID, err)
			}
			return nil, domain.Errorf(domain.KindAlreadyBooked, "user %s already booked match %s", req.UserID, matchID)
		}
	}

	if err := s.capacity.AdjustOccupancy(ctx, matchID, +1); err != nil {
		log.Printf("Occupancy increment for match %s failed, reconciler will repair: %v", matchID, err)
	}

	s.notify(ctx, req.UserID, matchID, ports.NotifyBookingConfirmed)

	return &CreateBookingResponse{
		BookingID: booking.ID.String(),
		MatchID:   matchID.String(),
		CreatedAt: booking.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CancelBooking removes the booking row and decrements the counter. A
// concurrent second cancel loses the GetByID lookup and gets NotFound;
// the ledger ends in the same state either way.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		return err
	}

	if err := s.capacity.AdjustOccupancy(ctx, booking.MatchID, -1); err != nil {
		log.Printf("Occupancy decrement for match %s failed, reconciler will repair: %v", booking.MatchID, err)
	}

	s.notify(ctx, booking.UserID, booking.MatchID, ports.NotifyBookingCancelled)
	return nil
}

func (s *BookingService) ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListBookingsForMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByMatch(ctx, matchID)
}

func (s *BookingService) notify(ctx context.Context, userID string, matchID uuid.UUID, kind ports.NotificationKind) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, matchID, kind); err != nil {
		log.Printf("Failed to send %s notification to user %s: %v", kind, userID, err)
	}
}

func earliestForUser(bookings []domain.Booking, userID string) *domain.Booking {
	var winner *domain.Booking
	for i := range bookings {
		if bookings[i].UserID != userID {
			continue
		}
		if winner == nil || bookingBefore(&bookings[i], winner) {
			winner = &bookings[i]
		}
	}
	return winner
}
