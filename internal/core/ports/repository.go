package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/openpitch/matchbook/internal/core/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	List(ctx context.Context) ([]domain.Match, error)
	Update(ctx context.Context, match *domain.Match) error
	UpdateOccupied(ctx context.Context, id uuid.UUID, occupied int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MatchStatus) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Rating, error)
	ListByRatee(ctx context.Context, rateeID string) ([]domain.Rating, error)
	UpdateScore(ctx context.Context, id uuid.UUID, stars int, comment string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
