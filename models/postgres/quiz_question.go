package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// QuizQuestion is a normalized question: options carry canonical ids and
// CorrectOptionID references one of them
type QuizQuestion struct {
	ID              string         `gorm:"primaryKey;size:64;not null"`
	Prompt          string         `gorm:"type:text;not null"`
	Options         datatypes.JSON `gorm:"type:jsonb;not null"`
	CorrectOptionID string         `gorm:"size:8;not null"`
	Category        string         `gorm:"size:64;index:idx_quiz_questions_category"`
	Difficulty      string         `gorm:"size:16;default:'medium';index:idx_quiz_questions_difficulty"`
	Hint            string         `gorm:"type:text"`
	Explanation     string         `gorm:"type:text"`
	Active          bool           `gorm:"default:true;index:idx_quiz_questions_active"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
