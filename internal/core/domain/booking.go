package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one user's claim on one seat in a match. At most one may
// exist per (match, user) pair; cancellation removes the row outright.
type Booking struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	UserID    string
	CreatedAt time.Time
}
