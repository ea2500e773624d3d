package socketio_utils

import (
	"CivicQuiz/services/lobby"
	"errors"
	"fmt"
	"strings"
)

var ErrMissingAuth = errors.New("missing auth data")

const maxNameLength = 32

// IdentityFromAuth reads the handshake auth payload:
// {"player_id": "...", "name": "...", "guest": true}
func IdentityFromAuth(auth any) (lobby.Identity, error) {
	authData, ok := auth.(map[string]interface{})
	if !ok {
		return lobby.Identity{}, ErrMissingAuth
	}
	playerID, _ := authData["player_id"].(string)
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return lobby.Identity{}, fmt.Errorf("%w: player_id", ErrMissingAuth)
	}

	name, _ := authData["name"].(string)
	name = strings.TrimSpace(name)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	if name == "" {
		name = "Player " + playerID
	}

	guest := false
	switch g := authData["guest"].(type) {
	case bool:
		guest = g
	case string:
		guest = g == "true"
	}
	return lobby.Identity{PlayerID: playerID, Name: name, Guest: guest}, nil
}
