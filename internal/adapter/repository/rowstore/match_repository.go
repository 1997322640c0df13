package rowstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Matches row layout: id, organizer, city, region, venue, address, lat,
// lng, date, time, format, price, total seats, occupied seats, status.
const matchRowWidth = 15

type MatchRepository struct {
	store ports.RowStore
}

func NewMatchRepository(store ports.RowStore) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.store.AppendRow(ctx, matchesTable, matchToRow(match))
}

func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	rows, err := r.store.ReadRange(ctx, matchesTable)
	if err != nil {
		return nil, err
	}

	key := id.String()
	for _, row := range rows {
		if row[0] != key {
			continue
		}
		match, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		return match, nil
	}
	return nil, domain.Errorf(domain.KindNotFound, "match %s not found", id)
}

func (r *MatchRepository) List(ctx context.Context) ([]domain.Match, error) {
	rows, err := r.store.ReadRange(ctx, matchesTable)
	if err != nil {
		return nil, err
	}

	var matches []domain.Match
	for _, row := range rows {
		match, err := matchFromRow(row)
		if err != nil {
			continue // malformed rows stay out of listings
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

func (r *MatchRepository) Update(ctx context.Context, match *domain.Match) error {
	return r.store.UpdateRange(ctx, matchesTable, match.ID.String(), matchToRow(match))
}

func (r *MatchRepository) UpdateOccupied(ctx context.Context, id uuid.UUID, occupied int) error {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	match.Occupied = occupied
	return r.Update(ctx, match)
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MatchStatus) error {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	match.Status = status
	return r.Update(ctx, match)
}

func matchToRow(m *domain.Match) ports.Row {
	return ports.Row{
		m.ID.String(),
		m.OrganizerID,
		m.Location.City,
		m.Location.Region,
		m.Location.Venue,
		m.Location.Address,
		strconv.FormatFloat(m.Location.Lat, 'f', -1, 64),
		strconv.FormatFloat(m.Location.Lng, 'f', -1, 64),
		m.Date,
		m.Time,
		string(m.Format),
		strconv.FormatFloat(m.Price, 'f', -1, 64),
		strconv.Itoa(m.TotalSeats),
		strconv.Itoa(m.Occupied),
		string(m.Status),
	}
}

func matchFromRow(row ports.Row) (*domain.Match, error) {
	for len(row) < matchRowWidth {
		row = append(row, "")
	}

	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad match id %q: %w", row[0], err)
	}

	lat, _ := strconv.ParseFloat(row[6], 64)
	lng, _ := strconv.ParseFloat(row[7], 64)
	price, _ := strconv.ParseFloat(row[11], 64)
	total, _ := strconv.Atoi(row[12])
	occupied, _ := strconv.Atoi(row[13])

	return &domain.Match{
		ID:          id,
		OrganizerID: row[1],
		Location: domain.Location{
			City:    row[2],
			Region:  row[3],
			Venue:   row[4],
			Address: row[5],
			Lat:     lat,
			Lng:     lng,
		},
		Date:       row[8],
		Time:       row[9],
		Format:     domain.MatchFormat(row[10]),
		Price:      price,
		TotalSeats: total,
		Occupied:   occupied,
		Status:     domain.MatchStatus(row[14]),
	}, nil
}
