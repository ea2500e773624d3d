package handlers

import (
	"CivicQuiz/services/lobby"
	socketio_utils "CivicQuiz/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// BroadcastMessageToRoom stores a chat message and sends it to every client
// in the sender's room
func BroadcastMessageToRoom(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req struct {
			Message string `json:"message"`
		}
		if err := socketio_utils.DecodePayload(args, &req, "message"); err != nil {
			emitError(d, client, "broadcast_to_room", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()

		roomID, msg, err := d.Lobby.Chat(ctx, id, req.Message)
		if err != nil {
			emitError(d, client, "broadcast_to_room", id, err)
			return
		}
		d.Sio.Sio_server.To(socket.Room(roomID)).Emit("new_room_message", gin.H{"room_id": roomID, "message": msg})
	}
}
