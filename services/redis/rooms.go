package redis

import (
	quiz_models "CivicQuiz/models/quiz"
	redis_models "CivicQuiz/models/redis"
	redis_utils "CivicQuiz/services/redis/utils"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomClosed   = errors.New("room is closed")
	ErrRoomStarted  = errors.New("game already started")
)

const joinRetries = 10

// SaveGameRoom stores a room record in Redis
// Key format: "room:{id}"
// TTL: 24 hours
func (rc *RedisClient) SaveGameRoom(ctx context.Context, room *redis_models.GameRoom) error {
	key := redis_utils.FormatRoomKey(room.ID)
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %w", err)
	}
	return rc.client.Set(ctx, key, data, roomTTL).Err()
}

// GetGameRoom retrieves a room record, ErrRoomNotFound if it does not exist
func (rc *RedisClient) GetGameRoom(ctx context.Context, roomID string) (*redis_models.GameRoom, error) {
	key := redis_utils.FormatRoomKey(roomID)
	data, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting room data: %w", err)
	}

	var room redis_models.GameRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %w", err)
	}
	return &room, nil
}

// DeleteGameRoom removes every key of a room in one pipeline
func (rc *RedisClient) DeleteGameRoom(ctx context.Context, roomID string) error {
	players, err := rc.GetRoomPlayers(ctx, roomID)
	if err != nil {
		return err
	}

	pipe := rc.client.Pipeline()
	pipe.Del(ctx,
		redis_utils.FormatRoomKey(roomID),
		redis_utils.FormatRoomPlayersKey(roomID),
		redis_utils.FormatRoomProgressKey(roomID),
		redis_utils.FormatRoomChatKey(roomID),
	)
	for _, p := range players {
		pipe.Del(ctx, redis_utils.FormatPlayerRoomKey(p.PlayerID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error deleting room data: %w", err)
	}
	return nil
}

// SaveRoomPlayer adds or replaces a player in "room:{id}:players" and
// remembers the player's current room
func (rc *RedisClient) SaveRoomPlayer(ctx context.Context, roomID string, player *redis_models.RoomPlayer) error {
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("error marshaling player data: %w", err)
	}
	playersKey := redis_utils.FormatRoomPlayersKey(roomID)

	pipe := rc.client.TxPipeline()
	pipe.HSet(ctx, playersKey, player.PlayerID, data)
	pipe.Expire(ctx, playersKey, roomTTL)
	if player.Role != quiz_models.RoleNPC {
		pipe.Set(ctx, redis_utils.FormatPlayerRoomKey(player.PlayerID), roomID, roomTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error saving player data: %w", err)
	}
	return nil
}

// JoinRoomPlayer adds a player to a room, watching the room record and its
// players hash so status and capacity are checked against what gets written.
// A player already in the room is replaced and keeps host, ready and join
// time. New players need a waiting room with a free seat.
func (rc *RedisClient) JoinRoomPlayer(ctx context.Context, roomID string, player *redis_models.RoomPlayer) (bool, error) {
	roomKey := redis_utils.FormatRoomKey(roomID)
	playersKey := redis_utils.FormatRoomPlayersKey(roomID)
	rejoin := false

	txf := func(tx *redis.Tx) error {
		rejoin = false
		data, err := tx.Get(ctx, roomKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		var room redis_models.GameRoom
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %w", err)
		}
		if room.Status == quiz_models.RoomClosed {
			return ErrRoomClosed
		}

		prevData, err := tx.HGet(ctx, playersKey, player.PlayerID).Bytes()
		switch {
		case err == nil:
			var prev redis_models.RoomPlayer
			if err := json.Unmarshal(prevData, &prev); err != nil {
				return fmt.Errorf("error unmarshaling player %s: %w", player.PlayerID, err)
			}
			player.IsHost, player.IsReady, player.JoinedAt = prev.IsHost, prev.IsReady, prev.JoinedAt
			rejoin = true
		case errors.Is(err, redis.Nil):
			if room.Status != quiz_models.RoomWaiting {
				return ErrRoomStarted
			}
			n, err := tx.HLen(ctx, playersKey).Result()
			if err != nil {
				return err
			}
			if int(n) >= room.MaxPlayers {
				return quiz_models.ErrRoomFull
			}
		default:
			return err
		}

		payload, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("error marshaling player data: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, playersKey, player.PlayerID, payload)
			pipe.Expire(ctx, playersKey, roomTTL)
			if player.Role != quiz_models.RoleNPC {
				pipe.Set(ctx, redis_utils.FormatPlayerRoomKey(player.PlayerID), roomID, roomTTL)
			}
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < joinRetries; i++ {
		err = rc.client.Watch(ctx, txf, roomKey, playersKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return rejoin, err
		}
	}
	return false, fmt.Errorf("error joining room %s: %w", roomID, err)
}

// GetRoomPlayers returns the players of a room in join order
func (rc *RedisClient) GetRoomPlayers(ctx context.Context, roomID string) ([]redis_models.RoomPlayer, error) {
	raw, err := rc.client.HGetAll(ctx, redis_utils.FormatRoomPlayersKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting room players: %w", err)
	}

	players := make([]redis_models.RoomPlayer, 0, len(raw))
	for id, data := range raw {
		var p redis_models.RoomPlayer
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("error unmarshaling player %s: %w", id, err)
		}
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].PlayerID < players[j].PlayerID
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players, nil
}

// Players is GetRoomPlayers converted to engine players
func (rc *RedisClient) Players(ctx context.Context, roomID string) ([]quiz_models.Player, error) {
	stored, err := rc.GetRoomPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players := make([]quiz_models.Player, len(stored))
	for i, p := range stored {
		players[i] = p.ToPlayer()
	}
	return players, nil
}

func (rc *RedisClient) RemoveRoomPlayer(ctx context.Context, roomID, playerID string) error {
	pipe := rc.client.TxPipeline()
	pipe.HDel(ctx, redis_utils.FormatRoomPlayersKey(roomID), playerID)
	pipe.Del(ctx, redis_utils.FormatPlayerRoomKey(playerID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error removing player %s: %w", playerID, err)
	}
	return nil
}

// GetPlayerCurrentRoom returns "" when the player is in no room
func (rc *RedisClient) GetPlayerCurrentRoom(ctx context.Context, playerID string) (string, error) {
	roomID, err := rc.client.Get(ctx, redis_utils.FormatPlayerRoomKey(playerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error getting player's current room: %w", err)
	}
	return roomID, nil
}
