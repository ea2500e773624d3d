package controllers

import (
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	redis_models "CivicQuiz/models/redis"
	"CivicQuiz/services/persistence"
	"CivicQuiz/services/quiz/leaderboard"
	"CivicQuiz/services/quiz/modes"
	"CivicQuiz/services/quiz/session"
	"CivicQuiz/services/redis"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sessions finds the live session of a room
type Sessions interface {
	Get(roomID string) (*session.Session, bool)
}

// LiveRooms reads the redis room record
type LiveRooms interface {
	GetGameRoom(ctx context.Context, roomID string) (*redis_models.GameRoom, error)
	Players(ctx context.Context, roomID string) ([]quiz_models.Player, error)
}

// RoomHistory reads what was persisted for a room
type RoomHistory interface {
	GetRoom(ctx context.Context, roomID string) (*postgres.QuizRoom, error)
	ResponsesForRoom(ctx context.Context, roomID string) ([]quiz_models.Response, error)
	AttemptsForRoom(ctx context.Context, roomID string) ([]postgres.QuizAttempt, error)
}

type RoomController struct {
	Sessions Sessions
	Rooms    LiveRooms
	History  RoomHistory
}

// @Summary Current state of a room
// @Description The live game view when a session runs here, otherwise the stored room record and roster
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} session.View
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms/{room_id}/state [get]
func (rc *RoomController) GetRoomState(c *gin.Context) {
	roomID := c.Param("room_id")
	ctx := c.Request.Context()

	if sess, ok := rc.Sessions.Get(roomID); ok {
		view, err := sess.Snapshot(ctx)
		if err == nil {
			c.JSON(http.StatusOK, view)
			return
		}
		if !errors.Is(err, quiz_models.ErrSessionClosed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	room, err := rc.Rooms.GetGameRoom(ctx, roomID)
	if errors.Is(err, redis.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	players, err := rc.Rooms.Players(ctx, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":         room.ID,
		"mode_id":         room.ModeID,
		"status":          room.Status,
		"phase":           room.Phase,
		"current_ordinal": room.CurrentOrdinal,
		"players":         players,
	})
}

// @Summary Leaderboard of a room
// @Description Live ranking while the session runs, otherwise rebuilt from the stored responses
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} object{room_id=string,live=boolean,leaderboard=[]leaderboard.Entry}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms/{room_id}/leaderboard [get]
func (rc *RoomController) GetRoomLeaderboard(c *gin.Context) {
	roomID := c.Param("room_id")
	ctx := c.Request.Context()

	if sess, ok := rc.Sessions.Get(roomID); ok {
		if board, err := sess.Leaderboard(ctx); err == nil {
			c.JSON(http.StatusOK, gin.H{"room_id": roomID, "live": true, "leaderboard": board})
			return
		}
	}

	board, err := rc.storedLeaderboard(ctx, roomID)
	if errors.Is(err, persistence.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		slog.Warn("[LEADERBOARD-ERROR]", "room_id", roomID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "live": false, "leaderboard": board})
}

// storedLeaderboard replays the persisted responses. Only human responses are
// stored, and names are not, so entries carry the player id as name.
func (rc *RoomController) storedLeaderboard(ctx context.Context, roomID string) ([]leaderboard.Entry, error) {
	attempts, err := rc.History.AttemptsForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	modeID := modes.DefaultMode
	room, err := rc.History.GetRoom(ctx, roomID)
	switch {
	case err == nil:
		modeID = room.ModeID
	case errors.Is(err, persistence.ErrRoomNotFound):
		if len(attempts) == 0 {
			return nil, err
		}
		if attempts[0].ModeID != "" {
			modeID = attempts[0].ModeID
		}
	default:
		return nil, err
	}
	mode, err := modes.ConfigFor(modeID)
	if err != nil {
		return nil, err
	}

	responses, err := rc.History.ResponsesForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players := make([]quiz_models.Player, 0, len(attempts))
	seen := make(map[string]bool)
	for _, a := range attempts {
		if seen[a.PlayerID] {
			continue
		}
		seen[a.PlayerID] = true
		players = append(players, quiz_models.Player{ID: a.PlayerID, Name: a.PlayerID, Role: quiz_models.RoleHuman})
	}
	return leaderboard.Compute(responses, players, mode), nil
}
