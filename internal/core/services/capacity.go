package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/ports"
)

// CapacityCounter is the sole writer of a match's occupied-seats value.
// The store has no atomic increment, so the read-then-write here can
// lose updates under races; the reconciler is the authoritative
// backstop, not this operation.
type CapacityCounter struct {
	matches ports.MatchRepository
}

func NewCapacityCounter(matches ports.MatchRepository) *CapacityCounter {
	return &CapacityCounter{matches: matches}
}

// AdjustOccupancy applies a +1/-1 delta, flooring at zero so a retried
// cancel cannot drive the counter negative.
func (c *CapacityCounter) AdjustOccupancy(ctx context.Context, matchID uuid.UUID, delta int) error {
	match, err := c.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	occupied := match.Occupied + delta
	if occupied < 0 {
		occupied = 0
	}
	return c.matches.UpdateOccupied(ctx, matchID, occupied)
}
