package postgres

import "time"

// QuizResponse is append-only. The unique index backs the in-memory
// one-response-per-question rule.
type QuizResponse struct {
	ID             string    `gorm:"primaryKey;size:64;not null"`
	AttemptID      string    `gorm:"size:64;not null;uniqueIndex:idx_quiz_responses_unique"`
	PlayerID       string    `gorm:"size:64;not null;uniqueIndex:idx_quiz_responses_unique"`
	Ordinal        int       `gorm:"not null;uniqueIndex:idx_quiz_responses_unique"`
	RoomID         string    `gorm:"size:50;not null;index:idx_quiz_responses_room"`
	QuestionID     string    `gorm:"size:64;not null"`
	OptionID       string    `gorm:"size:8"`
	IsCorrect      bool      `gorm:"default:false"`
	TimedOut       bool      `gorm:"default:false"`
	ResponseTimeMs int64     `gorm:"default:0"`
	Points         int       `gorm:"default:0"`
	SubmittedAt    time.Time `gorm:"not null"`
}
