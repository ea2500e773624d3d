package persistence

import (
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/session"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRoomNotFound = errors.New("room not found")

// Store writes responses and attempts. It implements session.ResponseSubmitter
// and session.AttemptCompleter.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SubmitResponse opens the attempt on first use and appends the response.
// A second response for the same (attempt, player, ordinal) is ignored.
func (s *Store) SubmitResponse(ctx context.Context, roomID, attemptID string, r quiz_models.Response) error {
	if attemptID == "" {
		return fmt.Errorf("missing attempt id for player %s", r.PlayerID)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt postgres.QuizAttempt
		err := tx.Where(postgres.QuizAttempt{ID: attemptID}).
			Attrs(postgres.QuizAttempt{RoomID: roomID, PlayerID: r.PlayerID, StartedAt: time.Now()}).
			FirstOrCreate(&attempt).Error
		if err != nil {
			return fmt.Errorf("error opening attempt %s: %w", attemptID, err)
		}

		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		row := postgres.QuizResponse{
			ID:             id,
			AttemptID:      attemptID,
			PlayerID:       r.PlayerID,
			Ordinal:        r.Ordinal,
			RoomID:         roomID,
			QuestionID:     r.QuestionID,
			OptionID:       r.OptionID,
			IsCorrect:      r.IsCorrect,
			TimedOut:       r.TimedOut,
			ResponseTimeMs: r.ResponseTimeMs,
			Points:         r.Points,
			SubmittedAt:    r.SubmittedAt,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("error saving response: %w", err)
		}
		return nil
	})
}

// CompleteAttempt writes the final tally, creating the attempt if the player
// never had a response persisted
func (s *Store) CompleteAttempt(ctx context.Context, attemptID string, summary session.AttemptSummary) error {
	completedAt := summary.CompletedAt
	row := postgres.QuizAttempt{
		ID:               attemptID,
		RoomID:           summary.RoomID,
		PlayerID:         summary.PlayerID,
		ModeID:           summary.ModeID,
		FinalScore:       summary.FinalScore,
		CorrectCount:     summary.CorrectCount,
		TotalQuestions:   summary.TotalQuestions,
		TimeSpentSeconds: summary.TimeSpentSeconds,
		StartedAt:        time.Now(),
		CompletedAt:      &completedAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mode_id", "final_score", "correct_count", "total_questions", "time_spent_seconds", "completed_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("error completing attempt %s: %w", attemptID, err)
	}
	return nil
}

// ResponsesForRoom returns every stored response of a room ordered by ordinal
func (s *Store) ResponsesForRoom(ctx context.Context, roomID string) ([]quiz_models.Response, error) {
	var rows []postgres.QuizResponse
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("ordinal ASC").Order("submitted_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]quiz_models.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, quiz_models.Response{
			ID:             row.ID,
			PlayerID:       row.PlayerID,
			Ordinal:        row.Ordinal,
			QuestionID:     row.QuestionID,
			OptionID:       row.OptionID,
			IsCorrect:      row.IsCorrect,
			ResponseTimeMs: row.ResponseTimeMs,
			SubmittedAt:    row.SubmittedAt,
			TimedOut:       row.TimedOut,
			Points:         row.Points,
		})
	}
	return out, nil
}

func (s *Store) AttemptsForRoom(ctx context.Context, roomID string) ([]postgres.QuizAttempt, error) {
	var attempts []postgres.QuizAttempt
	err := s.db.WithContext(ctx).Where("room_id = ?", roomID).Order("final_score DESC").Find(&attempts).Error
	return attempts, err
}

// SaveRoom inserts or updates the durable room row
func (s *Store) SaveRoom(ctx context.Context, room *postgres.QuizRoom) error {
	if room.ID == "" {
		return s.db.WithContext(ctx).Create(room).Error
	}
	return s.db.WithContext(ctx).Save(room).Error
}

func (s *Store) GetRoom(ctx context.Context, roomID string) (*postgres.QuizRoom, error) {
	var room postgres.QuizRoom
	err := s.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}
