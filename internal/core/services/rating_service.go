package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

type SubmitRatingRequest struct {
	MatchID string `json:"match_id"`
	RaterID string `json:"rater_id"`
	RateeID string `json:"ratee_id"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// Aggregate is a mean star score rounded to one decimal. Count zero
// means no ratings exist; Average is meaningless then and callers render
// it as "not rated yet".
type Aggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Participant struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type RatingService struct {
	matches  ports.MatchRepository
	bookings ports.BookingRepository
	ratings  ports.RatingRepository
	users    ports.UserRepository
	now      func() time.Time
}

func NewRatingService(
	matches ports.MatchRepository,
	bookings ports.BookingRepository,
	ratings ports.RatingRepository,
	users ports.UserRepository,
) *RatingService {
	return &RatingService{
		matches:  matches,
		bookings: bookings,
		ratings:  ratings,
		users:    users,
		now:      time.Now,
	}
}

// SubmitRating upserts on the (match, rater, ratee) triple: a second
// submission overwrites stars and comment and keeps the identifier.
// Rating opens once the match is past and is restricted to its roster.
func (s *RatingService) SubmitRating(ctx context.Context, req SubmitRatingRequest) (*domain.Rating, error) {
	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInvalidArgument, "invalid match id")
	}
	if req.Stars < 1 || req.Stars > 5 {
		return nil, domain.Errorf(domain.KindInvalidArgument, "stars must be between 1 and 5")
	}
	if req.RaterID == "" || req.RateeID == "" {
		return nil, domain.Errorf(domain.KindInvalidArgument, "missing rater or ratee id")
	}
	if req.RaterID == req.RateeID {
		return nil, domain.Errorf(domain.KindInvalidArgument, "players cannot rate themselves")
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if domain.Classify(match, s.now()) != domain.PartitionPast {
		return nil, domain.Errorf(domain.KindConflict, "match %s has not been played yet", matchID)
	}

	roster, err := s.participantSet(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !roster[req.RaterID] {
		return nil, domain.Errorf(domain.KindUnauthorized, "user %s did not play in match %s", req.RaterID, matchID)
	}
	if !roster[req.RateeID] {
		return nil, domain.Errorf(domain.KindInvalidArgument, "user %s did not play in match %s", req.RateeID, matchID)
	}

	existing, err := s.ratings.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].RaterID != req.RaterID || existing[i].RateeID != req.RateeID {
			continue
		}
		if err := s.ratings.UpdateScore(ctx, existing[i].ID, req.Stars, req.Comment); err != nil {
			return nil, err
		}
		updated := existing[i]
		updated.Stars = req.Stars
		updated.Comment = req.Comment
		return &updated, nil
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		MatchID:   matchID,
		RaterID:   req.RaterID,
		RateeID:   req.RateeID,
		Stars:     req.Stars,
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) AggregateForUser(ctx context.Context, userID string) (*Aggregate, error) {
	ratings, err := s.ratings.ListByRatee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate(ratings), nil
}

func (s *RatingService) AggregateForMatch(ctx context.Context, matchID uuid.UUID) (*Aggregate, error) {
	ratings, err := s.ratings.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return aggregate(ratings), nil
}

// ListParticipants derives the roster from the booking ledger and
// enriches it with profile display fields. The requester is left out:
// the list answers "who can I rate". Bookers without a stored profile
// are skipped.
func (s *RatingService) ListParticipants(ctx context.Context, matchID uuid.UUID, requesterID string) ([]Participant, error) {
	bookings, err := s.bookings.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var participants []Participant
	for _, b := range bookings {
		if b.UserID == requesterID || seen[b.UserID] {
			continue
		}
		seen[b.UserID] = true

		user, err := s.users.GetByID(ctx, b.UserID)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				continue
			}
			return nil, err
		}
		participants = append(participants, Participant{
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
		})
	}
	return participants, nil
}

func (s *RatingService) participantSet(ctx context.Context, matchID uuid.UUID) (map[string]bool, error) {
	bookings, err := s.bookings.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	roster := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		roster[b.UserID] = true
	}
	return roster, nil
}

func aggregate(ratings []domain.Rating) *Aggregate {
	if len(ratings) == 0 {
		return &Aggregate{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	mean := float64(sum) / float64(len(ratings))
	return &Aggregate{
		Average: math.Round(mean*10) / 10,
		Count:   len(ratings),
	}
}
