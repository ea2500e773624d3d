package socket_io

import (
	redis_models "CivicQuiz/models/redis"
	"CivicQuiz/services/quiz/session"
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

const (
	EventSystemMessage  = "system_message"
	EventNewRoomMessage = "new_room_message"
)

// RoomBroadcaster emits session events to every socket in the room
type RoomBroadcaster struct {
	server *socket.Server
	logger *slog.Logger
}

func NewRoomBroadcaster(server *socket.Server, logger *slog.Logger) *RoomBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomBroadcaster{server: server, logger: logger}
}

func (b *RoomBroadcaster) Broadcast(roomID, event string, payload any) {
	b.logger.Debug("[BROADCAST]", "room_id", roomID, "event", event)
	b.server.To(socket.Room(roomID)).Emit(event, payload)
}

// ChatStore is the part of the redis client the messenger needs
type ChatStore interface {
	AddChatMessage(ctx context.Context, roomID string, msg redis_models.ChatMessage) error
}

// SystemMessenger posts engine messages into the room chat
type SystemMessenger struct {
	chat        ChatStore
	broadcaster session.Broadcaster
	now         func() time.Time
}

func NewSystemMessenger(chat ChatStore, broadcaster session.Broadcaster) *SystemMessenger {
	return &SystemMessenger{chat: chat, broadcaster: broadcaster, now: time.Now}
}

// SendSystemMessage stores the message first, the broadcast only happens
// once it is part of the history
func (m *SystemMessenger) SendSystemMessage(ctx context.Context, roomID, text string) error {
	msg := redis_models.ChatMessage{
		Message:   text,
		Username:  "system",
		System:    true,
		Timestamp: m.now().UTC(),
	}
	if err := m.chat.AddChatMessage(ctx, roomID, msg); err != nil {
		return err
	}
	m.broadcaster.Broadcast(roomID, EventSystemMessage, gin.H{"room_id": roomID, "message": msg})
	return nil
}
