package redis

import (
	"CivicQuiz/services/quiz/session"
	redis_utils "CivicQuiz/services/redis/utils"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// NotifyRoomEvent publishes an NPC activation event on "room:{id}:events"
func (rc *RedisClient) NotifyRoomEvent(ctx context.Context, ev session.RoomEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("error marshaling room event: %w", err)
	}
	if err := rc.client.Publish(ctx, redis_utils.FormatRoomEventsChannel(ev.RoomID), data).Err(); err != nil {
		return fmt.Errorf("error publishing room event: %w", err)
	}
	return nil
}

// SubscribeRoomEvents listens on a room's event channel. The caller closes
// the returned subscription.
func (rc *RedisClient) SubscribeRoomEvents(ctx context.Context, roomID string) *redis.PubSub {
	return rc.client.Subscribe(ctx, redis_utils.FormatRoomEventsChannel(roomID))
}

// DecodeRoomEvent parses a message received from SubscribeRoomEvents
func DecodeRoomEvent(msg *redis.Message) (session.RoomEvent, error) {
	var ev session.RoomEvent
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		return session.RoomEvent{}, fmt.Errorf("error unmarshaling room event: %w", err)
	}
	return ev, nil
}
