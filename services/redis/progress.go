package redis

import (
	quiz_models "CivicQuiz/models/quiz"
	redis_models "CivicQuiz/models/redis"
	"CivicQuiz/services/quiz/session"
	redis_utils "CivicQuiz/services/redis/utils"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// closedRoomTTL keeps a closed room readable for late result queries
const closedRoomTTL = time.Hour

// advanceScript swaps the progress hash only when the stored version is
// ARGV[1]. Reply: {applied, version, phase, ordinal}.
var advanceScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if current ~= tonumber(ARGV[1]) then
	return {0, current, redis.call('HGET', KEYS[1], 'phase') or '', tonumber(redis.call('HGET', KEYS[1], 'ordinal') or '0')}
end
redis.call('HSET', KEYS[1], 'phase', ARGV[2], 'ordinal', ARGV[3], 'version', current + 1)
redis.call('EXPIRE', KEYS[1], ARGV[4])
return {1, current + 1, ARGV[2], tonumber(ARGV[3])}
`)

// GetProgress reads "room:{id}:progress", a missing hash is version 0
func (rc *RedisClient) GetProgress(ctx context.Context, roomID string) (session.Progress, error) {
	vals, err := rc.client.HGetAll(ctx, redis_utils.FormatRoomProgressKey(roomID)).Result()
	if err != nil {
		return session.Progress{}, fmt.Errorf("error getting room progress: %w", err)
	}
	p := session.Progress{Phase: quiz_models.Phase(vals["phase"])}
	if v, ok := vals["ordinal"]; ok {
		p.Ordinal, _ = strconv.Atoi(v)
	}
	if v, ok := vals["version"]; ok {
		p.Version, _ = strconv.ParseInt(v, 10, 64)
	}
	return p, nil
}

// AdvanceProgress is the compare-and-set on the shared room progress. When
// expectedVersion is stale it returns the stored progress and an
// *AdvanceRaceError.
func (rc *RedisClient) AdvanceProgress(ctx context.Context, roomID string, expectedVersion int64, next session.Progress) (session.Progress, error) {
	key := redis_utils.FormatRoomProgressKey(roomID)
	res, err := advanceScript.Run(ctx, rc.client, []string{key},
		expectedVersion, string(next.Phase), next.Ordinal, int(roomTTL/time.Second)).Slice()
	if err != nil {
		return session.Progress{}, fmt.Errorf("error advancing room progress: %w", err)
	}
	if len(res) != 4 {
		return session.Progress{}, fmt.Errorf("unexpected advance reply %v", res)
	}

	applied, _ := res[0].(int64)
	version, _ := res[1].(int64)
	phase, _ := res[2].(string)
	ordinal, _ := res[3].(int64)
	stored := session.Progress{Phase: quiz_models.Phase(phase), Ordinal: int(ordinal), Version: version}

	if applied != 1 {
		return stored, &quiz_models.AdvanceRaceError{RoomID: roomID, ExpectedVersion: expectedVersion, ActualVersion: version}
	}

	// the room record mirrors progress for readers, losing this write is harmless
	if err := rc.mirrorProgress(ctx, roomID, stored); err != nil {
		slog.Warn("[REDIS] could not mirror room progress", "room_id", roomID, "err", err)
	}
	return stored, nil
}

func (rc *RedisClient) mirrorProgress(ctx context.Context, roomID string, p session.Progress) error {
	room, err := rc.GetGameRoom(ctx, roomID)
	if err != nil {
		return err
	}
	room.Phase = p.Phase
	room.CurrentOrdinal = p.Ordinal
	return rc.SaveGameRoom(ctx, room)
}

// StartGameWithCountdown flips a waiting room to active and resets its
// progress. It reports false when the room is not waiting or another writer
// changed it concurrently.
func (rc *RedisClient) StartGameWithCountdown(ctx context.Context, roomID string, countdownSeconds int) (bool, error) {
	roomKey := redis_utils.FormatRoomKey(roomID)
	progressKey := redis_utils.FormatRoomProgressKey(roomID)
	started := false

	err := rc.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, roomKey).Bytes()
		if err != nil {
			return err
		}
		var room redis_models.GameRoom
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %w", err)
		}
		if !room.IsOpen() {
			return nil
		}

		now := time.Now().UTC()
		room.Status = quiz_models.RoomActive
		room.Phase = quiz_models.PhaseCountdown
		room.CurrentOrdinal = 0
		room.CountdownSeconds = countdownSeconds
		room.CountdownStartedAt = &now
		payload, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("error marshaling room data: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, roomKey, payload, roomTTL)
			pipe.HSet(ctx, progressKey, "phase", string(quiz_models.PhaseCountdown), "ordinal", 0, "version", 0)
			pipe.Expire(ctx, progressKey, roomTTL)
			return nil
		})
		if err == nil {
			started = true
		}
		return err
	}, roomKey)

	switch {
	case errors.Is(err, redis.Nil), errors.Is(err, redis.TxFailedErr):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("error starting room %s: %w", roomID, err)
	}
	return started, nil
}

// CloseRoom marks the room closed and drops its live state. The record
// itself stays readable for a while.
func (rc *RedisClient) CloseRoom(ctx context.Context, roomID string) error {
	room, err := rc.GetGameRoom(ctx, roomID)
	if errors.Is(err, ErrRoomNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	players, err := rc.GetRoomPlayers(ctx, roomID)
	if err != nil {
		return err
	}
	if progress, err := rc.GetProgress(ctx, roomID); err == nil && progress.Phase != "" {
		room.Phase = progress.Phase
		room.CurrentOrdinal = progress.Ordinal
	}

	now := time.Now().UTC()
	room.Status = quiz_models.RoomClosed
	room.ClosedAt = &now
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %w", err)
	}

	pipe := rc.client.TxPipeline()
	pipe.Set(ctx, redis_utils.FormatRoomKey(roomID), data, closedRoomTTL)
	pipe.Del(ctx,
		redis_utils.FormatRoomPlayersKey(roomID),
		redis_utils.FormatRoomProgressKey(roomID),
		redis_utils.FormatRoomChatKey(roomID),
	)
	for _, p := range players {
		pipe.Del(ctx, redis_utils.FormatPlayerRoomKey(p.PlayerID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error closing room %s: %w", roomID, err)
	}
	return nil
}
