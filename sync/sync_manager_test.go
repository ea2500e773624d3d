package sync

import (
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	redis_models "CivicQuiz/models/redis"
	"CivicQuiz/services/quiz/session"
	"CivicQuiz/services/redis"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*SyncManager, *redis.RedisClient, *gorm.DB) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redis.CloseRedis(rc) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(postgres.All()...))

	return NewSyncManager(rc, db, slog.New(slog.NewTextHandler(io.Discard, nil))), rc, db
}

func saveRoom(t *testing.T, rc *redis.RedisClient, id string) {
	t.Helper()
	require.NoError(t, rc.SaveGameRoom(context.Background(), &redis_models.GameRoom{
		ID:             id,
		Status:         quiz_models.RoomActive,
		MaxPlayers:     4,
		ModeID:         "speed_round",
		HostID:         "ana",
		Phase:          quiz_models.PhaseCompleted,
		CurrentOrdinal: 14,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}))
}

func TestSyncRoomStateUpdatesExistingRow(t *testing.T) {
	sm, rc, db := setup(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&postgres.QuizRoom{ID: "ROOM01", ModeID: "classic", HostID: "ana", MaxPlayers: 4}).Error)
	saveRoom(t, rc, "ROOM01")

	done := time.Date(2026, 3, 1, 12, 20, 0, 0, time.UTC)
	require.NoError(t, sm.SyncRoomState(ctx, "ROOM01", done))

	var row postgres.QuizRoom
	require.NoError(t, db.Where("id = ?", "ROOM01").First(&row).Error)
	assert.Equal(t, "speed_round", row.ModeID)
	assert.Equal(t, "active", row.Status)
	assert.Equal(t, 14, row.LastOrdinal)
	assert.Equal(t, 15, row.TotalQuestions)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, row.CompletedAt.Equal(done))
}

func TestSyncRoomStateCreatesMissingRow(t *testing.T) {
	sm, rc, db := setup(t)
	saveRoom(t, rc, "ROOM02")

	require.NoError(t, sm.SyncRoomState(context.Background(), "ROOM02", time.Now()))

	var row postgres.QuizRoom
	require.NoError(t, db.Where("id = ?", "ROOM02").First(&row).Error)
	assert.Equal(t, "ana", row.HostID)
	assert.Equal(t, 4, row.MaxPlayers)
}

func TestSyncRoomStateUnknownRoom(t *testing.T) {
	sm, _, _ := setup(t)
	err := sm.SyncRoomState(context.Background(), "NOPE00", time.Now())
	assert.ErrorIs(t, err, redis.ErrRoomNotFound)
}

func TestOnCompleteRunsInBackground(t *testing.T) {
	sm, rc, db := setup(t)
	saveRoom(t, rc, "ROOM03")

	sm.OnComplete(session.CompletionReport{RoomID: "ROOM03", ModeID: "speed_round", CompletedAt: time.Now()})

	assert.Eventually(t, func() bool {
		var n int64
		db.Model(&postgres.QuizRoom{}).Where("id = ? AND completed_at IS NOT NULL", "ROOM03").Count(&n)
		return n == 1
	}, 2*time.Second, 20*time.Millisecond)
}
