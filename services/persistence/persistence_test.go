package persistence

import (
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/questions"
	"CivicQuiz/services/quiz/session"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(postgres.All()...))
	return db
}

func response(playerID string, ordinal int, correct bool, points int) quiz_models.Response {
	return quiz_models.Response{
		PlayerID:       playerID,
		Ordinal:        ordinal,
		QuestionID:     "q" + string(rune('0'+ordinal)),
		OptionID:       "a",
		IsCorrect:      correct,
		ResponseTimeMs: 2000,
		SubmittedAt:    time.Date(2025, 3, 1, 12, 0, ordinal, 0, time.UTC),
		Points:         points,
	}
}

func TestSubmitResponse(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)
	ctx := context.Background()

	t.Run("opens the attempt on first response", func(t *testing.T) {
		require.NoError(t, store.SubmitResponse(ctx, "ROOM01", "att-1", response("ana", 0, true, 150)))
		require.NoError(t, store.SubmitResponse(ctx, "ROOM01", "att-1", response("ana", 1, false, 0)))

		var attempts []postgres.QuizAttempt
		require.NoError(t, db.Find(&attempts).Error)
		require.Len(t, attempts, 1)
		assert.Equal(t, "ROOM01", attempts[0].RoomID)
		assert.Equal(t, "ana", attempts[0].PlayerID)
		assert.False(t, attempts[0].IsCompleted())

		got, err := store.ResponsesForRoom(ctx, "ROOM01")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].Ordinal)
		assert.Equal(t, 150, got[0].Points)
		assert.NotEmpty(t, got[0].ID)
	})

	t.Run("duplicate response is ignored", func(t *testing.T) {
		require.NoError(t, store.SubmitResponse(ctx, "ROOM01", "att-1", response("ana", 0, false, 0)))

		got, err := store.ResponsesForRoom(ctx, "ROOM01")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].IsCorrect)
	})

	t.Run("missing attempt id", func(t *testing.T) {
		assert.Error(t, store.SubmitResponse(ctx, "ROOM01", "", response("ana", 3, true, 100)))
	})
}

func TestCompleteAttempt(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)
	ctx := context.Background()
	completedAt := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)

	require.NoError(t, store.SubmitResponse(ctx, "ROOM02", "att-ana", response("ana", 0, true, 150)))

	summary := session.AttemptSummary{
		RoomID: "ROOM02", PlayerID: "ana", ModeID: "classic",
		FinalScore: 150, CorrectCount: 1, TotalQuestions: 2, TimeSpentSeconds: 47, CompletedAt: completedAt,
	}
	require.NoError(t, store.CompleteAttempt(ctx, "att-ana", summary))

	// a player without persisted responses still gets an attempt row
	summary.PlayerID = "ben"
	summary.FinalScore = 0
	summary.CorrectCount = 0
	require.NoError(t, store.CompleteAttempt(ctx, "att-ben", summary))

	attempts, err := store.AttemptsForRoom(ctx, "ROOM02")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "ana", attempts[0].PlayerID)
	assert.Equal(t, 150, attempts[0].FinalScore)
	assert.Equal(t, "classic", attempts[0].ModeID)
	assert.Equal(t, 47, attempts[0].TimeSpentSeconds)
	require.True(t, attempts[0].IsCompleted())
	assert.True(t, attempts[0].CompletedAt.Equal(completedAt))
	assert.Equal(t, "ben", attempts[1].PlayerID)
}

func TestRooms(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)
	ctx := context.Background()

	room := &postgres.QuizRoom{ModeID: "classic", HostID: "ana", MaxPlayers: 4}
	require.NoError(t, store.SaveRoom(ctx, room))
	assert.Len(t, room.ID, 6)

	room.Status = "closed"
	room.LastOrdinal = 9
	require.NoError(t, store.SaveRoom(ctx, room))

	got, err := store.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", got.Status)
	assert.Equal(t, 9, got.LastOrdinal)

	_, err = store.GetRoom(ctx, "NOPE00")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func rawSet() []questions.RawQuestion {
	return []questions.RawQuestion{
		{ID: "q-1", Prompt: "How many senators per state?", Options: []string{"One", "Two", "Four"},
			CorrectAnswer: "two", Difficulty: "easy", Hint: "More than one"},
		{ID: "q-2", Prompt: "Who signs bills into law?", Options: []string{"The President", "The Speaker"},
			CorrectAnswer: "The President", Category: "executive"},
		{ID: "q-3", Prompt: "How long is a House term?", Options: []string{"2 years", "4 years", "6 years"},
			CorrectAnswer: "a", Difficulty: "hard"},
	}
}

func TestQuestionRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	t.Run("empty bank", func(t *testing.T) {
		_, err := repo.Questions(ctx, 10)
		assert.ErrorIs(t, err, quiz_models.ErrNoQuestions)
	})

	t.Run("import and draw", func(t *testing.T) {
		n, err := repo.Import(ctx, rawSet())
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		qs, err := repo.Questions(ctx, 2)
		require.NoError(t, err)
		require.Len(t, qs, 2)
		for i, q := range qs {
			assert.Equal(t, i, q.Ordinal)
			assert.True(t, q.HasOption(q.CorrectOptionID))
		}

		all, err := repo.Questions(ctx, 0)
		require.NoError(t, err)
		byID := make(map[string]quiz_models.Question)
		for _, q := range all {
			byID[q.ID] = q
		}
		require.Len(t, byID, 3)
		assert.Equal(t, "b", byID["q-1"].CorrectOptionID)
		assert.Equal(t, "More than one", byID["q-1"].Hint)
		assert.Equal(t, quiz_models.DifficultyMedium, byID["q-2"].Difficulty)
		assert.Equal(t, "a", byID["q-3"].CorrectOptionID)
		assert.Equal(t, []quiz_models.Option{{ID: "a", Text: "2 years"}, {ID: "b", Text: "4 years"}, {ID: "c", Text: "6 years"}},
			byID["q-3"].Options)
	})

	t.Run("reimport updates in place", func(t *testing.T) {
		raws := rawSet()[:1]
		raws[0].CorrectAnswer = "Four"
		_, err := repo.Import(ctx, raws)
		require.NoError(t, err)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		var row postgres.QuizQuestion
		require.NoError(t, db.Where("id = ?", "q-1").First(&row).Error)
		assert.Equal(t, "c", row.CorrectOptionID)
	})

	t.Run("unresolvable answer writes nothing", func(t *testing.T) {
		raws := []questions.RawQuestion{
			{ID: "q-9", Prompt: "?", Options: []string{"yes", "no"}, CorrectAnswer: "maybe"},
		}
		_, err := repo.Import(ctx, raws)
		assert.ErrorIs(t, err, quiz_models.ErrUnresolvableAnswer)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})
}
