package postgres

import "time"

/*
 * 'QuizAttempt' is one human's run through a game. It is opened by the first
 * persisted response and finalized when the game completes.
 */
type QuizAttempt struct {
	ID               string     `gorm:"primaryKey;size:64;not null"`
	RoomID           string     `gorm:"size:50;not null;index:idx_quiz_attempts_room"`
	PlayerID         string     `gorm:"size:64;not null;index:idx_quiz_attempts_player"`
	ModeID           string     `gorm:"size:32"`
	FinalScore       int        `gorm:"default:0"`
	CorrectCount     int        `gorm:"default:0"`
	TotalQuestions   int        `gorm:"default:0"`
	TimeSpentSeconds int        `gorm:"default:0"`
	StartedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	CompletedAt      *time.Time `gorm:"index:idx_quiz_attempts_completed"`

	Responses []*QuizResponse `gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
