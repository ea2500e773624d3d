package quiz_models

// Role is fixed when the player is created, never derived from the display name
type Role string

const (
	RoleHuman Role = "human"
	RoleNPC   Role = "npc"
)

// Player is a participant of a room as seen by the engine
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsHost  bool   `json:"is_host"`
	IsReady bool   `json:"is_ready"`
	IsGuest bool   `json:"is_guest"`
	Role    Role   `json:"role"`
}

func (p Player) IsNPC() bool {
	return p.Role == RoleNPC
}

func (p Player) IsHuman() bool {
	return p.Role != RoleNPC
}
