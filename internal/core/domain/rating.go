package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a post-match peer score. The natural key is the
// (match, rater, ratee) triple; a resubmission updates the stored row in
// place and keeps its identifier.
type Rating struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	RaterID   string
	RateeID   string
	Stars     int // 1..5
	Comment   string
	CreatedAt time.Time
}
