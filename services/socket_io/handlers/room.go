package handlers

import (
	"CivicQuiz/services/lobby"
	socketio_utils "CivicQuiz/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinRoom joins the room given by id, or creates one when no id is
// sent. The socket is added to the socket.io room of the same id.
func HandleJoinRoom(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req lobby.JoinRequest
		if err := socketio_utils.DecodePayload(args, &req, "room_id"); err != nil {
			emitError(d, client, "join_room", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()

		if previous, err := d.Lobby.CurrentRoom(ctx, id); err == nil && previous.ID != req.RoomID {
			client.Leave(socket.Room(previous.ID))
		}
		res, err := d.Lobby.Join(ctx, id, string(client.Id()), req)
		if err != nil {
			emitError(d, client, "join_room", id, err)
			return
		}
		client.Join(socket.Room(res.Room.ID))
		d.Sio.AddConnection(id.PlayerID, client)
		client.Emit("room_joined", res)
	}
}

func HandleLeaveRoom(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		ctx, cancel := d.context()
		defer cancel()

		room, err := d.Lobby.CurrentRoom(ctx, id)
		if err != nil {
			emitError(d, client, "leave_room", id, err)
			return
		}
		if err := d.Lobby.Leave(ctx, id, room.ID); err != nil {
			emitError(d, client, "leave_room", id, err)
			return
		}
		client.Leave(socket.Room(room.ID))
		client.Emit("room_left", gin.H{"room_id": room.ID})
	}
}

func HandleSetReady(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		req := struct {
			Ready bool `json:"ready"`
		}{Ready: true}
		if err := socketio_utils.DecodePayload(args, &req, "ready"); err != nil {
			emitError(d, client, "set_ready", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()
		if _, err := d.Lobby.SetReady(ctx, id, req.Ready); err != nil {
			emitError(d, client, "set_ready", id, err)
		}
	}
}

// HandleAddNPC is host only, the roster_updated broadcast tells everyone
func HandleAddNPC(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req struct {
			Name string `json:"name"`
		}
		if err := socketio_utils.DecodePayload(args, &req, "name"); err != nil {
			emitError(d, client, "add_npc", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()
		if _, err := d.Lobby.AddNPC(ctx, id, req.Name); err != nil {
			emitError(d, client, "add_npc", id, err)
		}
	}
}

func HandleChangeMode(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req struct {
			ModeID string `json:"mode_id"`
		}
		if err := socketio_utils.DecodePayload(args, &req, "mode_id"); err != nil {
			emitError(d, client, "change_mode", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()
		if err := d.Lobby.ChangeMode(ctx, id, req.ModeID); err != nil {
			emitError(d, client, "change_mode", id, err)
		}
	}
}
