package redis

import (
	quiz_models "CivicQuiz/models/quiz"
	"time"
)

// GameRoom is the room record kept in redis under "room:{id}"
type GameRoom struct {
	ID                 string                 `json:"id"`
	Status             quiz_models.RoomStatus `json:"status"`
	MaxPlayers         int                    `json:"max_players"`
	ModeID             string                 `json:"mode_id"`
	HostID             string                 `json:"host_id"`
	Phase              quiz_models.Phase      `json:"phase"`
	CurrentOrdinal     int                    `json:"current_ordinal"`
	CountdownSeconds   int                    `json:"countdown_seconds"`
	CountdownStartedAt *time.Time             `json:"countdown_started_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	ClosedAt           *time.Time             `json:"closed_at,omitempty"`
}

func (r *GameRoom) IsOpen() bool {
	return r.Status == quiz_models.RoomWaiting
}
