package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/metrics"
	"CivicQuiz/services/quiz/modes"
	"CivicQuiz/services/quiz/roster"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Manager keeps one Session per room for this process
type Manager struct {
	deps      Deps
	questions QuestionSource
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager shares deps between every session. deps.OnComplete is called
// from the session goroutine and must not call back into the session.
func NewManager(deps Deps, questions QuestionSource) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		deps:      deps,
		questions: questions,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

func maxQuestionCount() int {
	n := 0
	for _, cfg := range modes.All() {
		if cfg.QuestionCount > n {
			n = cfg.QuestionCount
		}
	}
	return n
}

// Open returns the session of a room, creating it on first use
func (mg *Manager) Open(ctx context.Context, roomID, modeID string, players []quiz_models.Player) (*Session, error) {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	if s, ok := mg.sessions[roomID]; ok {
		return s, nil
	}
	if modeID == "" {
		modeID = modes.DefaultMode
	}
	mode, err := modes.ConfigFor(modeID)
	if err != nil {
		return nil, err
	}
	qs, err := mg.questions.Questions(ctx, maxQuestionCount())
	if err != nil {
		return nil, fmt.Errorf("error loading questions for room %s: %w", roomID, err)
	}
	s, err := NewSession(roomID, mode, qs, players, mg.deps)
	if err != nil {
		return nil, err
	}
	mg.sessions[roomID] = s
	metrics.ActiveSessions.Inc()
	mg.logger.Info("[SESSION-OPEN]", "room_id", roomID, "mode_id", mode.ID, "questions", len(qs))
	return s, nil
}

func (mg *Manager) Get(roomID string) (*Session, bool) {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	s, ok := mg.sessions[roomID]
	return s, ok
}

func (mg *Manager) Len() int {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	return len(mg.sessions)
}

// RosterChanged pushes the new roster into the session. When no human is
// left the session is closed and the room torn down.
func (mg *Manager) RosterChanged(ctx context.Context, roomID string, players []quiz_models.Player) error {
	s, ok := mg.Get(roomID)
	if !ok {
		return nil
	}
	if len(roster.Classify(players).Humans) == 0 {
		return mg.Close(ctx, roomID)
	}
	return s.UpdateRoster(ctx, players)
}

// Close stops the room's session and closes the room record
func (mg *Manager) Close(ctx context.Context, roomID string) error {
	mg.mu.Lock()
	s, ok := mg.sessions[roomID]
	delete(mg.sessions, roomID)
	mg.mu.Unlock()

	if ok {
		metrics.ActiveSessions.Dec()
		if err := s.Close(ctx); err != nil {
			mg.logger.Warn("[SESSION-CLOSE-ERROR]", "room_id", roomID, "err", err)
		}
	}
	if mg.deps.Rooms != nil {
		if err := mg.deps.Rooms.CloseRoom(ctx, roomID); err != nil {
			metrics.PersistenceFailures.WithLabelValues("close_room").Inc()
			mg.logger.Warn("[SESSION-CLOSE-ERROR] room service",
				"room_id", roomID, "err", &quiz_models.PersistenceError{Op: "close_room", Err: err})
		}
	}
	mg.logger.Info("[SESSION-CLOSED]", "room_id", roomID)
	return nil
}

// Shutdown closes every session without touching the room records
func (mg *Manager) Shutdown(ctx context.Context) {
	mg.mu.Lock()
	sessions := mg.sessions
	mg.sessions = make(map[string]*Session)
	mg.mu.Unlock()

	for id, s := range sessions {
		metrics.ActiveSessions.Dec()
		if err := s.Close(ctx); err != nil {
			mg.logger.Warn("[SESSION-CLOSE-ERROR]", "room_id", id, "err", err)
		}
	}
}
