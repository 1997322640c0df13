package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

type MatchSpec struct {
	Venue      string  `json:"venue"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Format     string  `json:"format"`
	Price      float64 `json:"price"`
	TotalSeats int     `json:"total_seats"`
}

type ListMatchesRequest struct {
	Format      string
	City        string
	Region      string
	IncludePast bool
}

type MatchService struct {
	matches  ports.MatchRepository
	bookings ports.BookingRepository
	notifier ports.Notifier
	now      func() time.Time
}

func NewMatchService(matches ports.MatchRepository, bookings ports.BookingRepository, notifier ports.Notifier) *MatchService {
	return &MatchService{
		matches:  matches,
		bookings: bookings,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, organizerID string, spec MatchSpec) (*domain.Match, error) {
	if organizerID == "" {
		return nil, domain.Errorf(domain.KindInvalidArgument, "missing organizer id")
	}
	if err := validateMatchSpec(spec); err != nil {
		return nil, err
	}

	match := &domain.Match{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Location: domain.Location{
			Venue:   spec.Venue,
			Address: spec.Address,
			City:    spec.City,
			Region:  spec.Region,
			Lat:     spec.Lat,
			Lng:     spec.Lng,
		},
		Date:       spec.Date,
		Time:       spec.Time,
		Format:     domain.MatchFormat(spec.Format),
		Price:      spec.Price,
		TotalSeats: spec.TotalSeats,
		Occupied:   0,
		Status:     domain.MatchActive,
	}

	if err := s.matches.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	return s.matches.GetByID(ctx, id)
}

// ListMatches returns one partition of the active matches: upcoming
// ordered soonest first, past ordered most recent first. The ordering is
// part of the API contract.
func (s *MatchService) ListMatches(ctx context.Context, req ListMatchesRequest) ([]domain.Match, error) {
	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []domain.Match
	for _, m := range all {
		if !m.IsActive() {
			continue
		}
		if past := domain.Classify(&m, now) == domain.PartitionPast; past != req.IncludePast {
			continue
		}
		if req.Format != "" && string(m.Format) != req.Format {
			continue
		}
		if !containsFold(m.Location.City, req.City) || !containsFold(m.Location.Region, req.Region) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		a := startOf(&out[i])
		b := startOf(&out[j])
		if req.IncludePast {
			return a.After(b)
		}
		return a.Before(b)
	})
	return out, nil
}

// UpdateMatch rewrites the mutable fields of a match. Occupied and
// status are owned by the capacity counter and the lifecycle transition
// and are never touched here.
func (s *MatchService) UpdateMatch(ctx context.Context, id uuid.UUID, actorID string, spec MatchSpec) (*domain.Match, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.OrganizerID != actorID {
		return nil, domain.Errorf(domain.KindUnauthorized, "only the organizer may edit match %s", id)
	}
	if !match.IsActive() {
		return nil, domain.Errorf(domain.KindConflict, "match %s is cancelled", id)
	}
	if err := validateMatchSpec(spec); err != nil {
		return nil, err
	}

	match.Location = domain.Location{
		Venue:   spec.Venue,
		Address: spec.Address,
		City:    spec.City,
		Region:  spec.Region,
		Lat:     spec.Lat,
		Lng:     spec.Lng,
	}
	match.Date = spec.Date
	match.Time = spec.Time
	match.Format = domain.MatchFormat(spec.Format)
	match.Price = spec.Price
	match.TotalSeats = spec.TotalSeats

	if err := s.matches.Update(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// CancelMatch moves a match to cancelled, one-way. Existing bookings and
// ratings are kept for history; affected bookers are told through the
// notification collaborator, fire and forget.
func (s *MatchService) CancelMatch(ctx context.Context, id uuid.UUID, actorID string) error {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if match.OrganizerID != actorID {
		return domain.Errorf(domain.KindUnauthorized, "only the organizer may cancel match %s", id)
	}
	if !match.IsActive() {
		return domain.Errorf(domain.KindConflict, "match %s is already cancelled", id)
	}

	if err := s.matches.UpdateStatus(ctx, id, domain.MatchCancelled); err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	bookings, err := s.bookings.ListByMatch(ctx, id)
	if err != nil {
		log.Printf("Could not list bookers of cancelled match %s: %v", id, err)
		return nil
	}
	for _, b := range bookings {
		if err := s.notifier.Notify(ctx, b.UserID, id, ports.NotifyMatchCancelled); err != nil {
			log.Printf("Failed to notify user %s about cancelled match %s: %v", b.UserID, id, err)
		}
	}
	return nil
}

func validateMatchSpec(spec MatchSpec) error {
	if spec.TotalSeats < 2 {
		return domain.Errorf(domain.KindInvalidArgument, "a match needs at least 2 seats")
	}
	if !domain.MatchFormat(spec.Format).Valid() {
		return domain.Errorf(domain.KindInvalidArgument, "unknown match format %q", spec.Format)
	}
	if spec.Price < 0 {
		return domain.Errorf(domain.KindInvalidArgument, "price must not be negative")
	}
	probe := domain.Match{Date: spec.Date, Time: spec.Time}
	if _, err := probe.StartsAt(time.Local); err != nil {
		return domain.Errorf(domain.KindInvalidArgument, "invalid schedule %q %q", spec.Date, spec.Time)
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func startOf(m *domain.Match) time.Time {
	start, _ := m.StartsAt(time.Local)
	return start
}
