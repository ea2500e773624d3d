package lobby

import (
	game_constants "CivicQuiz/constants/game"
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	redis_models "CivicQuiz/models/redis"
	"CivicQuiz/services/quiz/modes"
	"CivicQuiz/services/quiz/roster"
	"CivicQuiz/services/quiz/session"
	"CivicQuiz/services/redis"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrNotInRoom     = errors.New("player is not in a room")
	ErrRoomClosed    = redis.ErrRoomClosed
	ErrGameStarted   = redis.ErrRoomStarted
	ErrEmptyMessage  = errors.New("message is empty")
	ErrMissingPlayer = errors.New("missing player identity")
)

const maxMessageLength = 500

// Identity is who sits behind a connection, taken from the handshake
type Identity struct {
	PlayerID string
	Name     string
	Guest    bool
}

type JoinRequest struct {
	RoomID     string `json:"room_id"`
	ModeID     string `json:"mode_id"`
	MaxPlayers int    `json:"max_players"`
}

type JoinResult struct {
	Room    redis_models.GameRoom      `json:"room"`
	Mode    modes.Description          `json:"mode"`
	Players []quiz_models.Player       `json:"players"`
	Chat    []redis_models.ChatMessage `json:"chat"`
	Created bool                       `json:"created"`
}

// RoomStore keeps the durable room row
type RoomStore interface {
	SaveRoom(ctx context.Context, room *postgres.QuizRoom) error
}

// Service owns room membership: it keeps redis in sync with who is in a room
// and pushes every roster change into the room's game session
type Service struct {
	redis   *redis.RedisClient
	store   RoomStore
	manager *session.Manager
	logger  *slog.Logger
}

func New(rc *redis.RedisClient, store RoomStore, manager *session.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{redis: rc, store: store, manager: manager, logger: logger}
}

// Join puts the player in a room, creating one when req.RoomID is empty.
// A player already in another room leaves it first.
func (s *Service) Join(ctx context.Context, id Identity, socketID string, req JoinRequest) (JoinResult, error) {
	if id.PlayerID == "" {
		return JoinResult{}, ErrMissingPlayer
	}
	current, err := s.redis.GetPlayerCurrentRoom(ctx, id.PlayerID)
	if err != nil {
		return JoinResult{}, err
	}
	if current != "" && current != req.RoomID {
		if err := s.Leave(ctx, id, current); err != nil {
			s.logger.Warn("[JOIN] could not leave previous room", "room_id", current, "player_id", id.PlayerID, "err", err)
		}
	}

	var (
		room    *redis_models.GameRoom
		created bool
	)
	if req.RoomID == "" {
		room, err = s.createRoom(ctx, id, req)
		created = true
	} else {
		room, err = s.redis.GetGameRoom(ctx, req.RoomID)
	}
	if err != nil {
		return JoinResult{}, err
	}
	if room.Status == quiz_models.RoomClosed {
		return JoinResult{}, ErrRoomClosed
	}

	entry := redis_models.RoomPlayer{
		PlayerID: id.PlayerID,
		Name:     id.Name,
		IsHost:   created,
		IsGuest:  id.Guest,
		Role:     quiz_models.RoleHuman,
		SocketID: socketID,
		JoinedAt: time.Now().UTC(),
	}
	if entry.Name == "" {
		entry.Name = "Player " + id.PlayerID
	}
	// only players still on the roster get back into a started game
	rejoin, err := s.redis.JoinRoomPlayer(ctx, room.ID, &entry)
	if err != nil {
		return JoinResult{}, err
	}

	players, err := s.syncRoster(ctx, room)
	if err != nil {
		return JoinResult{}, err
	}
	mode, err := modes.ConfigFor(room.ModeID)
	if err != nil {
		return JoinResult{}, err
	}
	chat, err := s.redis.GetChatMessages(ctx, room.ID)
	if err != nil {
		s.logger.Warn("[JOIN] chat history unavailable", "room_id", room.ID, "err", err)
	}
	s.logger.Info("[JOIN]", "room_id", room.ID, "player_id", id.PlayerID, "created", created, "rejoin", rejoin)
	return JoinResult{Room: *room, Mode: modes.Describe(mode), Players: players, Chat: chat, Created: created}, nil
}

func (s *Service) createRoom(ctx context.Context, id Identity, req JoinRequest) (*redis_models.GameRoom, error) {
	modeID := req.ModeID
	if modeID == "" {
		modeID = modes.DefaultMode
	}
	if _, err := modes.ConfigFor(modeID); err != nil {
		return nil, err
	}
	maxPlayers := req.MaxPlayers
	if maxPlayers < game_constants.MinPlayersPerRoom || maxPlayers > game_constants.MaxPlayersPerRoom {
		maxPlayers = game_constants.MaxPlayersPerRoom
	}

	record := &postgres.QuizRoom{ModeID: modeID, HostID: id.PlayerID, MaxPlayers: maxPlayers, Status: string(quiz_models.RoomWaiting)}
	if s.store != nil {
		if err := s.store.SaveRoom(ctx, record); err != nil {
			return nil, fmt.Errorf("error creating room: %w", err)
		}
	} else {
		record.ID = strings.ToUpper(uuid.NewString()[:6])
	}

	room := &redis_models.GameRoom{
		ID:         record.ID,
		Status:     quiz_models.RoomWaiting,
		MaxPlayers: maxPlayers,
		ModeID:     modeID,
		HostID:     id.PlayerID,
		Phase:      quiz_models.PhaseWaiting,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.redis.SaveGameRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("[ROOM-CREATED]", "room_id", room.ID, "mode_id", modeID, "host_id", id.PlayerID)
	return room, nil
}

// syncRoster opens the room's session if needed and hands it the stored roster
func (s *Service) syncRoster(ctx context.Context, room *redis_models.GameRoom) ([]quiz_models.Player, error) {
	players, err := s.redis.Players(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(roster.Classify(players).Humans) == 0 {
		return players, s.manager.Close(ctx, room.ID)
	}
	if _, err := s.manager.Open(ctx, room.ID, room.ModeID, players); err != nil {
		return nil, err
	}
	return players, s.manager.RosterChanged(ctx, room.ID, players)
}

// Leave removes the player. The last human leaving closes the room.
func (s *Service) Leave(ctx context.Context, id Identity, roomID string) error {
	if roomID == "" {
		current, err := s.redis.GetPlayerCurrentRoom(ctx, id.PlayerID)
		if err != nil {
			return err
		}
		if current == "" {
			return ErrNotInRoom
		}
		roomID = current
	}
	if err := s.redis.RemoveRoomPlayer(ctx, roomID, id.PlayerID); err != nil {
		return err
	}
	players, err := s.redis.Players(ctx, roomID)
	if err != nil {
		return err
	}
	s.logger.Info("[LEAVE]", "room_id", roomID, "player_id", id.PlayerID, "remaining", len(players))
	if len(roster.Classify(players).Humans) == 0 {
		return s.manager.Close(ctx, roomID)
	}
	return s.manager.RosterChanged(ctx, roomID, players)
}

// CurrentRoom returns the room the player is in
func (s *Service) CurrentRoom(ctx context.Context, id Identity) (*redis_models.GameRoom, error) {
	roomID, err := s.redis.GetPlayerCurrentRoom(ctx, id.PlayerID)
	if err != nil {
		return nil, err
	}
	if roomID == "" {
		return nil, ErrNotInRoom
	}
	return s.redis.GetGameRoom(ctx, roomID)
}

func (s *Service) SetReady(ctx context.Context, id Identity, ready bool) (string, error) {
	room, err := s.CurrentRoom(ctx, id)
	if err != nil {
		return "", err
	}
	stored, err := s.redis.GetRoomPlayers(ctx, room.ID)
	if err != nil {
		return "", err
	}
	for _, p := range stored {
		if p.PlayerID != id.PlayerID {
			continue
		}
		p.IsReady = ready
		if err := s.redis.SaveRoomPlayer(ctx, room.ID, &p); err != nil {
			return "", err
		}
		_, err := s.syncRoster(ctx, room)
		return room.ID, err
	}
	return "", ErrNotInRoom
}

// AddNPC lets the host fill a waiting room with a computer player
func (s *Service) AddNPC(ctx context.Context, id Identity, name string) (quiz_models.Player, error) {
	room, err := s.CurrentRoom(ctx, id)
	if err != nil {
		return quiz_models.Player{}, err
	}
	if !room.IsOpen() {
		return quiz_models.Player{}, ErrGameStarted
	}
	players, err := s.redis.Players(ctx, room.ID)
	if err != nil {
		return quiz_models.Player{}, err
	}
	if err := roster.RequireSettings(players, id.PlayerID); err != nil {
		return quiz_models.Player{}, err
	}
	if len(players) >= room.MaxPlayers {
		return quiz_models.Player{}, quiz_models.ErrRoomFull
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Bot %d", len(roster.Classify(players).NPCs)+1)
	}
	entry := redis_models.RoomPlayer{
		PlayerID: "npc-" + uuid.NewString()[:8],
		Name:     name,
		IsReady:  true,
		Role:     quiz_models.RoleNPC,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := s.redis.JoinRoomPlayer(ctx, room.ID, &entry); err != nil {
		return quiz_models.Player{}, err
	}
	if _, err := s.syncRoster(ctx, room); err != nil {
		return quiz_models.Player{}, err
	}
	s.logger.Info("[NPC] added", "room_id", room.ID, "npc_id", entry.PlayerID, "name", name)
	return entry.ToPlayer(), nil
}

// Session returns the game session of the player's room
func (s *Service) Session(ctx context.Context, id Identity) (*session.Session, error) {
	room, err := s.CurrentRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess, ok := s.manager.Get(room.ID); ok {
		return sess, nil
	}
	players, err := s.redis.Players(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	return s.manager.Open(ctx, room.ID, room.ModeID, players)
}

// ChangeMode switches the mode of a waiting room and records it on the room
func (s *Service) ChangeMode(ctx context.Context, id Identity, modeID string) error {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return err
	}
	if err := sess.ChangeMode(ctx, id.PlayerID, modeID); err != nil {
		return err
	}
	room, err := s.redis.GetGameRoom(ctx, sess.RoomID())
	if err != nil {
		return err
	}
	room.ModeID = modeID
	return s.redis.SaveGameRoom(ctx, room)
}

// Chat stores a player message in the room history
func (s *Service) Chat(ctx context.Context, id Identity, message string) (string, redis_models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", redis_models.ChatMessage{}, ErrEmptyMessage
	}
	if len(message) > maxMessageLength {
		cut := maxMessageLength
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut]
	}
	room, err := s.CurrentRoom(ctx, id)
	if err != nil {
		return "", redis_models.ChatMessage{}, err
	}
	msg := redis_models.ChatMessage{
		Message:   message,
		PlayerID:  id.PlayerID,
		Username:  id.Name,
		Timestamp: time.Now().UTC(),
	}
	if err := s.redis.AddChatMessage(ctx, room.ID, msg); err != nil {
		return "", redis_models.ChatMessage{}, err
	}
	return room.ID, msg, nil
}
