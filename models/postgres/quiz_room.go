package postgres

import (
	"math/rand/v2"
	"time"

	"gorm.io/gorm"
)

/*
 * 'QuizRoom' is the durable record of a room. Live state lives in redis,
 * this row is written when the room is created and synced when a game ends.
 */
type QuizRoom struct {
	ID             string    `gorm:"primaryKey;size:50;not null"`
	ModeID         string    `gorm:"size:32;not null;index:idx_quiz_rooms_mode"`
	HostID         string    `gorm:"size:64"`
	Status         string    `gorm:"size:16;default:'waiting';index:idx_quiz_rooms_status"`
	MaxPlayers     int       `gorm:"default:8"`
	LastOrdinal    int       `gorm:"default:0"`
	TotalQuestions int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	CompletedAt    *time.Time
}

// Random room id generation
const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateRoomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}

// BeforeCreate assigns a short unique join code when no id was given
func (r *QuizRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID != "" {
		return nil
	}
	for {
		newID := generateRoomID(6)
		var existing QuizRoom
		err := tx.Where("id = ?", newID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			r.ID = newID
			return nil
		}
		if err != nil {
			return err
		}
	}
}
