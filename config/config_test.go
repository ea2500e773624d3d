package config

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/npc"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "PROD", "REDIS_URL", "REDIS_DB", "FLUSH_REDIS", "MIGRATE_POSTGRES", "ALLOWED_ORIGINS"} {
			t.Setenv(key, "")
		}
		cfg, err := ReadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.False(t, cfg.Prod)
		assert.Equal(t, "localhost:6379", cfg.RedisURL)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("PROD", "true")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
		cfg, err := ReadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.True(t, cfg.Prod)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("PROD", "maybe")
		_, err := ReadServerConfig()
		assert.ErrorContains(t, err, "PROD")
	})
}

func TestReadEngineConfig(t *testing.T) {
	unsetAll := func(t *testing.T) {
		for _, key := range []string{"NPC_ACCURACY", "NPC_MIN_DELAY_MS", "NPC_MAX_DELAY_MS",
			"PERSIST_TIMEOUT_SECONDS", "OUTBOX_WORKERS", "OUTBOX_QUEUE_SIZE", "SOCKET_RATE_PER_SECOND", "SOCKET_BURST", "ENGINE_CONFIG_FILE"} {
			t.Setenv(key, "")
		}
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg EngineConfig)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg EngineConfig) {
				assert.Equal(t, 0.70, cfg.NPCAccuracy)
				assert.Equal(t, time.Second, cfg.NPCMinDelay)
				assert.Equal(t, 4*time.Second, cfg.NPCMaxDelay)
				assert.Equal(t, 5*time.Second, cfg.PersistTimeout)
				assert.Equal(t, 8, cfg.OutboxWorkers)
				assert.Equal(t, 1024, cfg.OutboxQueueSize)
				assert.Equal(t, 10.0, cfg.SocketRatePerSecond)
			},
		},
		{
			name: "overrides",
			env:  map[string]string{"NPC_ACCURACY": "0.5", "NPC_MIN_DELAY_MS": "200", "NPC_MAX_DELAY_MS": "900", "OUTBOX_WORKERS": "2"},
			check: func(t *testing.T, cfg EngineConfig) {
				assert.Equal(t, 0.5, cfg.NPCAccuracy)
				assert.Equal(t, 200*time.Millisecond, cfg.NPCMinDelay)
				assert.Equal(t, 900*time.Millisecond, cfg.NPCMaxDelay)
				assert.Equal(t, 2, cfg.OutboxWorkers)
			},
		},
		{name: "accuracy out of range", env: map[string]string{"NPC_ACCURACY": "1.5"}, wantErr: true},
		{name: "empty delay window", env: map[string]string{"NPC_MIN_DELAY_MS": "4000"}, wantErr: true},
		{name: "not a number", env: map[string]string{"OUTBOX_WORKERS": "many"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetAll(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := ReadEngineConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNPCConfig(t *testing.T) {
	base := EngineConfig{NPCAccuracy: 0.7, NPCMinDelay: time.Second, NPCMaxDelay: 4 * time.Second}

	t.Run("without file", func(t *testing.T) {
		cfg, err := base.NPCConfig()
		require.NoError(t, err)
		assert.Equal(t, 0.7, cfg.AccuracyFor(quiz_models.DifficultyHard))
		assert.Equal(t, 4*time.Second, cfg.MaxDelay)
	})

	t.Run("file overrides curve and window", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "engine.yaml")
		data := "npc:\n  accuracy: 0.6\n  accuracy_by_difficulty:\n    easy: 0.9\n    hard: 0.4\n  min_delay_ms: 500\n  max_delay_ms: 2500\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		withFile := base
		withFile.ConfigFile = path
		cfg, err := withFile.NPCConfig()
		require.NoError(t, err)
		assert.Equal(t, 0.9, cfg.AccuracyFor(quiz_models.DifficultyEasy))
		assert.Equal(t, 0.6, cfg.AccuracyFor(quiz_models.DifficultyMedium))
		assert.Equal(t, 0.4, cfg.AccuracyFor(quiz_models.DifficultyHard))
		assert.Equal(t, 500*time.Millisecond, cfg.MinDelay)
		assert.Equal(t, 2500*time.Millisecond, cfg.MaxDelay)
	})

	t.Run("missing file", func(t *testing.T) {
		withFile := base
		withFile.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")
		_, err := withFile.NPCConfig()
		assert.Error(t, err)
	})

	bad := []struct {
		name string
		data string
	}{
		{"unknown difficulty", "npc:\n  accuracy_by_difficulty:\n    legendary: 0.1\n"},
		{"accuracy out of range", "npc:\n  accuracy_by_difficulty:\n    easy: 2\n"},
		{"inverted window", "npc:\n  min_delay_ms: 3000\n  max_delay_ms: 1000\n"},
		{"not yaml", "npc: [\n"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyEngineFile(npc.DefaultConfig(), []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("stdout only", func(t *testing.T) {
		logger, err := NewLogger(LogConfig{Level: slog.LevelDebug}, "civicquiz.log")
		require.NoError(t, err)
		assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("with file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		logger, err := NewLogger(LogConfig{Level: slog.LevelInfo, Dir: dir, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, "civicquiz.log")
		require.NoError(t, err)
		logger.Info("[TEST] hello", "room_id", "R1")

		data, err := os.ReadFile(filepath.Join(dir, "civicquiz.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "[TEST] hello")
		assert.Contains(t, string(data), "room_id=R1")
	})

	t.Run("invalid rotation", func(t *testing.T) {
		_, err := NewLogger(LogConfig{Dir: t.TempDir()}, "civicquiz.log")
		assert.Error(t, err)
	})
}

func TestReadLogConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_DIR", "")
	cfg, err := ReadLogConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level)

	t.Setenv("LOG_LEVEL", "loud")
	_, err = ReadLogConfig()
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := ConnectRedis(context.Background(), ServerConfig{RedisURL: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Client().Close() })

	addr := mr.Addr()
	mr.Close()
	_, err = ConnectRedis(context.Background(), ServerConfig{RedisURL: addr})
	assert.Error(t, err)
}

func TestMigrateDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, MigrateDatabase(db))

	for _, table := range []string{"quiz_rooms", "quiz_questions", "quiz_attempts", "quiz_responses"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
