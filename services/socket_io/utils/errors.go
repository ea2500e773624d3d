package socketio_utils

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/lobby"
	"CivicQuiz/services/metrics"
	"CivicQuiz/services/redis"
	"context"
	"errors"

	"github.com/gin-gonic/gin"
)

var ErrRateLimited = errors.New("too many requests")

// ErrorCode gives clients a stable code for every error they can get back
func ErrorCode(err error) string {
	var (
		hostErr *quiz_models.HostPermissionError
		modeErr *quiz_models.UnknownModeError
	)
	switch {
	case errors.As(err, &hostErr):
		return "host_only"
	case errors.As(err, &modeErr):
		return "unknown_mode"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrBadPayload):
		return "bad_request"
	case errors.Is(err, ErrMissingAuth), errors.Is(err, lobby.ErrMissingPlayer):
		return "unauthenticated"
	case errors.Is(err, lobby.ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, lobby.ErrRoomClosed), errors.Is(err, quiz_models.ErrSessionClosed):
		return "room_closed"
	case errors.Is(err, lobby.ErrGameStarted):
		return "game_started"
	case errors.Is(err, lobby.ErrEmptyMessage):
		return "empty_message"
	case errors.Is(err, redis.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, quiz_models.ErrRoomFull):
		return "room_full"
	case errors.Is(err, quiz_models.ErrHintsDisabled):
		return "hints_disabled"
	case errors.Is(err, quiz_models.ErrHintAlreadyUsed):
		return "hint_used"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	if reason := metrics.RejectReason(err); reason != "other" {
		return reason
	}
	return "internal"
}

// ErrorPayload is what the "error" event carries
func ErrorPayload(event string, err error) gin.H {
	return gin.H{"error": err.Error(), "code": ErrorCode(err), "event": event}
}
