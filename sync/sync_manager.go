package sync

import (
	"CivicQuiz/models/postgres"
	"CivicQuiz/services/quiz/session"
	"CivicQuiz/services/redis"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
	timeout     time.Duration
	logger      *slog.Logger
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB, logger *slog.Logger) *SyncManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
		timeout:     10 * time.Second,
		logger:      logger,
	}
}

// SyncRoomState copies the final redis room record into quiz_rooms, creating
// the row when the room was never stored
func (sm *SyncManager) SyncRoomState(ctx context.Context, roomID string, completedAt time.Time) error {
	room, err := sm.redisClient.GetGameRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("error getting room state from Redis: %w", err)
	}

	return sm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row postgres.QuizRoom
		err := tx.Where("id = ?", roomID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = postgres.QuizRoom{
				ID:         room.ID,
				HostID:     room.HostID,
				MaxPlayers: room.MaxPlayers,
				CreatedAt:  room.CreatedAt,
			}
		} else if err != nil {
			return fmt.Errorf("error loading room %s: %w", roomID, err)
		}

		row.ModeID = room.ModeID
		row.Status = string(room.Status)
		row.LastOrdinal = room.CurrentOrdinal
		row.TotalQuestions = room.CurrentOrdinal + 1
		row.CompletedAt = &completedAt
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("error updating room state in PostgreSQL: %w", err)
		}
		return nil
	})
}

// OnComplete is the session completion callback. It runs on the session
// goroutine, so the sync itself happens in the background.
func (sm *SyncManager) OnComplete(report session.CompletionReport) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
		defer cancel()
		if err := sm.SyncRoomState(ctx, report.RoomID, report.CompletedAt); err != nil {
			sm.logger.Warn("[SYNC-ERROR]", "room_id", report.RoomID, "err", err)
			return
		}
		sm.logger.Info("[SYNC] room stored", "room_id", report.RoomID, "mode_id", report.ModeID)
	}()
}
