package ports

import (
	"context"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotifyBookingConfirmed NotificationKind = "booking_confirmed"
	NotifyBookingCancelled NotificationKind = "booking_cancelled"
	NotifyMatchCancelled   NotificationKind = "match_cancelled"
)

// Notifier hands an event to the external delivery collaborator. Calls
// are fire and forget: a failed notification never rolls back the
// booking outcome it describes.
type Notifier interface {
	Notify(ctx context.Context, userID string, matchID uuid.UUID, kind NotificationKind) error
}
