package handlers

import (
	"CivicQuiz/services/lobby"
	socketio_utils "CivicQuiz/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

type answerRequest struct {
	OptionID string `json:"option_id"`
}

func HandleStartGame(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		ctx, cancel := d.context()
		defer cancel()

		sess, err := d.Lobby.Session(ctx, id)
		if err != nil {
			emitError(d, client, "start_game", id, err)
			return
		}
		if err := sess.StartGame(ctx, id.PlayerID); err != nil {
			emitError(d, client, "start_game", id, err)
		}
	}
}

// HandleSelectAnswer records a tentative choice, submit_answer without an
// option sends it
func HandleSelectAnswer(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req answerRequest
		if err := socketio_utils.DecodePayload(args, &req, "option_id"); err != nil {
			emitError(d, client, "select_answer", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()

		sess, err := d.Lobby.Session(ctx, id)
		if err != nil {
			emitError(d, client, "select_answer", id, err)
			return
		}
		if err := sess.SelectAnswer(ctx, id.PlayerID, req.OptionID); err != nil {
			emitError(d, client, "select_answer", id, err)
			return
		}
		client.Emit("answer_selected", gin.H{"option_id": req.OptionID})
	}
}

func HandleSubmitAnswer(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		var req answerRequest
		if err := socketio_utils.DecodePayload(args, &req, "option_id"); err != nil {
			emitError(d, client, "submit_answer", id, err)
			return
		}
		ctx, cancel := d.context()
		defer cancel()

		sess, err := d.Lobby.Session(ctx, id)
		if err != nil {
			emitError(d, client, "submit_answer", id, err)
			return
		}
		if _, err := sess.SubmitAnswer(ctx, id.PlayerID, req.OptionID); err != nil {
			emitError(d, client, "submit_answer", id, err)
		}
	}
}

func HandleRequestHint(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		ctx, cancel := d.context()
		defer cancel()

		sess, err := d.Lobby.Session(ctx, id)
		if err != nil {
			emitError(d, client, "request_hint", id, err)
			return
		}
		hint, err := sess.RequestHint(ctx, id.PlayerID)
		if err != nil {
			emitError(d, client, "request_hint", id, err)
			return
		}
		client.Emit("hint", gin.H{"hint": hint})
	}
}

func HandleGetGameState(d Deps, client *socket.Socket, id lobby.Identity) func(args ...interface{}) {
	return func(args ...interface{}) {
		ctx, cancel := d.context()
		defer cancel()

		sess, err := d.Lobby.Session(ctx, id)
		if err != nil {
			emitError(d, client, "get_game_state", id, err)
			return
		}
		view, err := sess.Snapshot(ctx)
		if err != nil {
			emitError(d, client, "get_game_state", id, err)
			return
		}
		client.Emit("game_state", view)
	}
}
