package socket_io

import (
	"CivicQuiz/services/lobby"
	"CivicQuiz/services/socket_io/handlers"
	socketio_types "CivicQuiz/services/socket_io/types"
	socketio_utils "CivicQuiz/services/socket_io/utils"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"golang.org/x/time/rate"
)

type MySocketServer socketio_types.SocketServer

type Options struct {
	Lobby         *lobby.Service
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
	Origin        string
	Logger        *slog.Logger
}

func New() *MySocketServer {
	return (*MySocketServer)(socketio_types.NewSocketServer())
}

func (sio *MySocketServer) Server() *socket.Server {
	return sio.Sio_server
}

// Start registers the event handlers and mounts the socket.io endpoints on
// the router
func (sio *MySocketServer) Start(router *gin.Engine, opts Options) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Origin == "" {
		opts.Origin = "*"
	}
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      opts.Origin,
		Credentials: true,
	})

	server := (*socketio_types.SocketServer)(sio)
	deps := handlers.Deps{Lobby: opts.Lobby, Sio: server, Timeout: opts.Timeout, Logger: opts.Logger}

	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		id, err := socketio_utils.IdentityFromAuth(client.Handshake().Auth)
		if err != nil {
			opts.Logger.Info("[CONNECT-REJECTED]", "socket_id", client.Id(), "err", err)
			client.Emit("error", socketio_utils.ErrorPayload("connection", err))
			client.Disconnect(true)
			return
		}
		server.AddConnection(id.PlayerID, client)
		opts.Logger.Info("[CONNECT]", "player_id", id.PlayerID, "socket_id", client.Id(), "connections", server.Count())

		limiter := rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst)
		on := func(event string, handler func(args ...interface{})) {
			client.On(event, socketio_utils.Throttle(limiter, func() {
				client.Emit("error", socketio_utils.ErrorPayload(event, socketio_utils.ErrRateLimited))
			}, handler))
		}

		on("join_room", handlers.HandleJoinRoom(deps, client, id))
		on("leave_room", handlers.HandleLeaveRoom(deps, client, id))
		on("set_ready", handlers.HandleSetReady(deps, client, id))
		on("add_npc", handlers.HandleAddNPC(deps, client, id))
		on("change_mode", handlers.HandleChangeMode(deps, client, id))
		on("start_game", handlers.HandleStartGame(deps, client, id))
		on("select_answer", handlers.HandleSelectAnswer(deps, client, id))
		on("submit_answer", handlers.HandleSubmitAnswer(deps, client, id))
		on("request_hint", handlers.HandleRequestHint(deps, client, id))
		on("get_game_state", handlers.HandleGetGameState(deps, client, id))
		on("broadcast_to_room", handlers.BroadcastMessageToRoom(deps, client, id))

		// NOTE: will remove sio connection from map, never throttled
		client.On("disconnecting", handlers.HandleDisconnecting(deps, client, id))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	opts.Logger.Info("[SOCKET] server started")
}

// Close disconnects every client
func (sio *MySocketServer) Close() {
	sio.Sio_server.Close(nil)
}
