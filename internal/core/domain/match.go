package domain

import (
	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchActive    MatchStatus = "active"
	MatchCancelled MatchStatus = "cancelled"
)

// MatchFormat is the squad size of the game (5-, 7-, 8- or 11-a-side).
type MatchFormat string

const (
	FormatFive   MatchFormat = "5"
	FormatSeven  MatchFormat = "7"
	FormatEight  MatchFormat = "8"
	FormatEleven MatchFormat = "11"
)

func (f MatchFormat) Valid() bool {
	switch f {
	case FormatFive, FormatSeven, FormatEight, FormatEleven:
		return true
	}
	return false
}

type Location struct {
	Venue   string
	Address string
	City    string
	Region  string
	Lat     float64
	Lng     float64
}

// Match is a scheduled, capacity-bounded game. Occupied is written only
// by the capacity counter and must track the number of active bookings;
// Status moves active -> cancelled once and never back.
type Match struct {
	ID          uuid.UUID
	OrganizerID string
	Location    Location
	Date        string // local calendar day, see DateLayout
	Time        string // local time of day, see TimeLayout
	Format      MatchFormat
	Price       float64
	TotalSeats  int
	Occupied    int
	Status      MatchStatus
}

func (m *Match) IsActive() bool {
	return m.Status == MatchActive
}
