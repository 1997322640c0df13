package notifier

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/openpitch/matchbook/internal/core/ports"
)

const queueKey = "notifications"

// RedisNotifier pushes notification events onto a redis list consumed by
// the external mailer. Delivery is fire and forget: callers log a failed
// push and keep going.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

type event struct {
	UserID  string `json:"user_id"`
	MatchID string `json:"match_id"`
	Kind    string `json:"kind"`
}

func (n *RedisNotifier) Notify(ctx context.Context, userID string, matchID uuid.UUID, kind ports.NotificationKind) error {
	payload, err := json.Marshal(event{
		UserID:  userID,
		MatchID: matchID.String(),
		Kind:    string(kind),
	})
	if err != nil {
		return err
	}
	return n.client.LPush(ctx, queueKey, payload).Err()
}
