package redis

import (
	quiz_models "CivicQuiz/models/quiz"
	"time"
)

// RoomPlayer is one entry of the "room:{id}:players" hash
type RoomPlayer struct {
	PlayerID string           `json:"player_id"`
	Name     string           `json:"name"`
	IsHost   bool             `json:"is_host"`
	IsReady  bool             `json:"is_ready"`
	IsGuest  bool             `json:"is_guest"`
	Role     quiz_models.Role `json:"role"`
	SocketID string           `json:"socket_id,omitempty"`
	JoinedAt time.Time        `json:"joined_at"`
}

func (p RoomPlayer) ToPlayer() quiz_models.Player {
	return quiz_models.Player{
		ID:      p.PlayerID,
		Name:    p.Name,
		IsHost:  p.IsHost,
		IsReady: p.IsReady,
		IsGuest: p.IsGuest,
		Role:    p.Role,
	}
}
