package handlers

import (
	"CivicQuiz/services/lobby"
	socketio_types "CivicQuiz/services/socket_io/types"
	socketio_utils "CivicQuiz/services/socket_io/utils"
	"context"
	"log/slog"
	"time"

	"github.com/zishang520/socket.io/v2/socket"
)

// Deps is shared by every handler of every connection
type Deps struct {
	Lobby   *lobby.Service
	Sio     *socketio_types.SocketServer
	Timeout time.Duration
	Logger  *slog.Logger
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func emitError(d Deps, client *socket.Socket, event string, id lobby.Identity, err error) {
	d.Logger.Info("[SOCKET-ERROR]", "event", event, "player_id", id.PlayerID, "err", err)
	client.Emit("error", socketio_utils.ErrorPayload(event, err))
}
