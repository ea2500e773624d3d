package redis

import (
	redis_models "CivicQuiz/models/redis"
	redis_utils "CivicQuiz/services/redis/utils"
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// chatHistory is how many messages a room keeps
const chatHistory = 100

// AddChatMessage appends to "room:{id}:chat", trimming old messages
func (rc *RedisClient) AddChatMessage(ctx context.Context, roomID string, msg redis_models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling chat message: %w", err)
	}
	key := redis_utils.FormatRoomChatKey(roomID)

	pipe := rc.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -chatHistory, -1)
	pipe.Expire(ctx, key, roomTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error saving chat message: %w", err)
	}
	return nil
}

// GetChatMessages returns the chat history, oldest first
func (rc *RedisClient) GetChatMessages(ctx context.Context, roomID string) ([]redis_models.ChatMessage, error) {
	raw, err := rc.client.LRange(ctx, redis_utils.FormatRoomChatKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting chat messages: %w", err)
	}
	msgs := make([]redis_models.ChatMessage, 0, len(raw))
	for _, data := range raw {
		var m redis_models.ChatMessage
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("error unmarshaling chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
