package rowstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Ratings row layout: id, match, rater, ratee, stars, comment, created at.
const ratingRowWidth = 7

type RatingRepository struct {
	store ports.RowStore
}

func NewRatingRepository(store ports.RowStore) *RatingRepository {
	return &RatingRepository{store: store}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	return r.store.AppendRow(ctx, ratingsTable, ratingToRow(rating))
}

func (r *RatingRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Rating, error) {
	return r.list(ctx, func(rt *domain.Rating) bool {
		return rt.MatchID == matchID
	})
}

func (r *RatingRepository) ListByRatee(ctx context.Context, rateeID string) ([]domain.Rating, error) {
	return r.list(ctx, func(rt *domain.Rating) bool {
		return rt.RateeID == rateeID
	})
}

// UpdateScore rewrites stars and comment in place; every other cell of
// the row, the identifier included, is preserved.
func (r *RatingRepository) UpdateScore(ctx context.Context, id uuid.UUID, stars int, comment string) error {
	rows, err := r.store.ReadRange(ctx, ratingsTable)
	if err != nil {
		return err
	}

	key := id.String()
	for _, row := range rows {
		if row[0] != key {
			continue
		}
		rating, err := ratingFromRow(row)
		if err != nil {
			return err
		}
		rating.Stars = stars
		rating.Comment = comment
		return r.store.UpdateRange(ctx, ratingsTable, key, ratingToRow(rating))
	}
	return domain.Errorf(domain.KindNotFound, "rating %s not found", id)
}

func (r *RatingRepository) list(ctx context.Context, keep func(*domain.Rating) bool) ([]domain.Rating, error) {
	rows, err := r.store.ReadRange(ctx, ratingsTable)
	if err != nil {
		return nil, err
	}

	var ratings []domain.Rating
	for _, row := range rows {
		rating, err := ratingFromRow(row)
		if err != nil {
			continue
		}
		if keep(rating) {
			ratings = append(ratings, *rating)
		}
	}
	return ratings, nil
}

func ratingToRow(rt *domain.Rating) ports.Row {
	return ports.Row{
		rt.ID.String(),
		rt.MatchID.String(),
		rt.RaterID,
		rt.RateeID,
		strconv.Itoa(rt.Stars),
		rt.Comment,
		rt.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ratingFromRow(row ports.Row) (*domain.Rating, error) {
	for len(row) < ratingRowWidth {
		row = append(row, "")
	}

	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad rating id %q: %w", row[0], err)
	}
	matchID, err := uuid.Parse(row[1])
	if err != nil {
		return nil, fmt.Errorf("bad match id %q on rating %s: %w", row[1], id, err)
	}

	stars, _ := strconv.Atoi(row[4])
	createdAt, _ := time.Parse(time.RFC3339, row[6])

	return &domain.Rating{
		ID:        id,
		MatchID:   matchID,
		RaterID:   row[2],
		RateeID:   row[3],
		Stars:     stars,
		Comment:   row[5],
		CreatedAt: createdAt,
	}, nil
}
