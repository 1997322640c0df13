package rowstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Bookings row layout: id, match, user, created at.
const bookingRowWidth = 4

type BookingRepository struct {
	store ports.RowStore
}

func NewBookingRepository(store ports.RowStore) *BookingRepository {
	return &BookingRepository{store: store}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.store.AppendRow(ctx, bookingsTable, bookingToRow(booking))
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	rows, err := r.store.ReadRange(ctx, bookingsTable)
	if err != nil {
		return nil, err
	}

	key := id.String()
	for _, row := range rows {
		if row[0] != key {
			continue
		}
		return bookingFromRow(row)
	}
	return nil, domain.Errorf(domain.KindNotFound, "booking %s not found", id)
}

func (r *BookingRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx, func(b *domain.Booking) bool {
		return b.MatchID == matchID
	})
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.list(ctx, func(b *domain.Booking) bool {
		return b.UserID == userID
	})
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.ClearRange(ctx, bookingsTable, id.String())
}

func (r *BookingRepository) list(ctx context.Context, keep func(*domain.Booking) bool) ([]domain.Booking, error) {
	rows, err := r.store.ReadRange(ctx, bookingsTable)
	if err != nil {
		return nil, err
	}

	var bookings []domain.Booking
	for _, row := range rows {
		booking, err := bookingFromRow(row)
		if err != nil {
			continue
		}
		if keep(booking) {
			bookings = append(bookings, *booking)
		}
	}
	return bookings, nil
}

func bookingToRow(b *domain.Booking) ports.Row {
	return ports.Row{
		b.ID.String(),
		b.MatchID.String(),
		b.UserID,
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func bookingFromRow(row ports.Row) (*domain.Booking, error) {
	for len(row) < bookingRowWidth {
		row = append(row, "")
	}

	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad booking id %q: %w", row[0], err)
	}
	matchID, err := uuid.Parse(row[1])
	if err != nil {
		return nil, fmt.Errorf("bad match id %q on booking %s: %w", row[1], id, err)
	}

	createdAt, _ := time.Parse(time.RFC3339, row[3])

	return &domain.Booking{
		ID:        id,
		MatchID:   matchID,
		UserID:    row[2],
		CreatedAt: createdAt,
	}, nil
}
