package handlers

import (
	"CivicQuiz/services/lobby"
	"errors"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleDisconnecting removes the player from its room, unless a newer
// socket of the same player already took over
func HandleDisconnecting(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		if !d.Sio.RemoveConnection(id.PlayerID, client) {
			d.Logger.Info("[DISCONNECT] stale socket", "player_id", id.PlayerID, "socket_id", client.Id())
			return
		}
		ctx, cancel := d.context()
		defer cancel()

		err := d.Lobby.Leave(ctx, id, "")
		if err != nil && !errors.Is(err, lobby.ErrNotInRoom) {
			d.Logger.Warn("[DISCONNECT-ERROR]", "player_id", id.PlayerID, "err", err)
			return
		}
		d.Logger.Info("[DISCONNECT]", "player_id", id.PlayerID)
	}
}
