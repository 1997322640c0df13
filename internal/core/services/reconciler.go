package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// Reconciler restores the central invariant: a match's occupied counter
// equals the number of active bookings. Increments and appends are not
// atomic against the store, so drift and duplicate rows are expected;
// they are repaired here, on a timer and before capacity-sensitive
// reads. Repairs are logged, never surfaced to request callers.
type Reconciler struct {
	matches  ports.MatchRepository
	bookings ports.BookingRepository
	notifier ports.Notifier
	interval time.Duration
}

func NewReconciler(matches ports.MatchRepository, bookings ports.BookingRepository, notifier ports.Notifier) *Reconciler {
	return &Reconciler{
		matches:  matches,
		bookings: bookings,
		notifier: notifier,
		interval: 1 * time.Minute,
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Println("Reconciler started: recomputing seat counters every 1 minute...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciler stopped.")
			return
		case <-ticker.C:
			r.reconcileAll(ctx)
		}
	}
}

func (r *Reconciler) reconcileAll(ctx context.Context) {
	matches, err := r.matches.List(ctx)
	if err != nil {
		log.Printf("Error listing matches for reconciliation: %v", err)
		return
	}

	for _, m := range matches {
		if err := r.ReconcileMatch(ctx, m.ID); err != nil {
			log.Printf("Failed to reconcile match %s: %v", m.ID, err)
		}
	}
}

// ReconcileMatch collapses duplicate (match, user) bookings keeping the
// earliest, sheds bookings beyond the seat ceiling, and rewrites the
// occupied counter from the surviving ledger rows.
func (r *Reconciler) ReconcileMatch(ctx context.Context, matchID uuid.UUID) error {
	match, err := r.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	bookings, err := r.bookings.ListByMatch(ctx, matchID)
	if err != nil {
		return err
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookingBefore(&bookings[i], &bookings[j])
	})

	seen := make(map[string]bool)
	var keep, duplicates, surplus []domain.Booking
	for _, b := range bookings {
		if seen[b.UserID] {
			duplicates = append(duplicates, b)
			continue
		}
		seen[b.UserID] = true
		keep = append(keep, b)
	}
	for match.TotalSeats > 0 && len(keep) > match.TotalSeats {
		surplus = append(surplus, keep[len(keep)-1])
		keep = keep[:len(keep)-1]
	}

	for _, b := range duplicates {
		if err := r.bookings.Delete(ctx, b.ID); err != nil {
			return err
		}
		log.Printf("Reconciler removed duplicate booking %s (match %s, user %s)", b.ID, matchID, b.UserID)
	}
	for _, b := range surplus {
		if err := r.bookings.Delete(ctx, b.ID); err != nil {
			return err
		}
		log.Printf("Reconciler shed over-capacity booking %s (match %s, user %s)", b.ID, matchID, b.UserID)
		if r.notifier != nil {
			if err := r.notifier.Notify(ctx, b.UserID, matchID, ports.NotifyBookingCancelled); err != nil {
				log.Printf("Failed to notify user %s about shed booking: %v", b.UserID, err)
			}
		}
	}

	if match.Occupied != len(keep) {
		log.Printf("Reconciler corrected match %s occupancy %d -> %d", matchID, match.Occupied, len(keep))
		return r.matches.UpdateOccupied(ctx, matchID, len(keep))
	}
	return nil
}

// bookingBefore is the deterministic race-winner ordering: creation
// time, then identifier, so every instance collapses duplicates to the
// same survivor.
func bookingBefore(a, b *domain.Booking) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
