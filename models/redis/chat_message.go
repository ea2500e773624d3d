package redis

import "time"

// ChatMessage represents a message in the room chat. System messages are
// written by the engine, not by a player.
type ChatMessage struct {
	Message   string    `json:"message"`
	PlayerID  string    `json:"player_id,omitempty"`
	Username  string    `json:"username"`
	System    bool      `json:"system"`
	Timestamp time.Time `json:"timestamp"`
}
