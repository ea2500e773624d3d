package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/leaderboard"
	"context"
	"time"
)

// Outbound events broadcast to everyone in a room
const (
	EventPhaseChanged     = "phase_changed"
	EventQuestionStarted  = "question_started"
	EventAnswerRecorded   = "answer_recorded"
	EventQuestionResolved = "question_resolved"
	EventRosterUpdated    = "roster_updated"
	EventModeChanged      = "mode_changed"
	EventGameCompleted    = "game_completed"
)

// Room event kinds sent to the NPC activation channel
const (
	RoomEventGameStarted     = "game_started"
	RoomEventQuestionStarted = "question_started"
	RoomEventNPCAnswered     = "npc_answered"
	RoomEventGameCompleted   = "game_completed"
)

// Progress is the shared, compare-and-set guarded view of a room
type Progress struct {
	Phase   quiz_models.Phase `json:"phase"`
	Ordinal int               `json:"ordinal"`
	Version int64             `json:"version"`
}

// AttemptSummary is what gets finalized for one human at the end of a game
type AttemptSummary struct {
	RoomID           string    `json:"room_id"`
	PlayerID         string    `json:"player_id"`
	ModeID           string    `json:"mode_id"`
	FinalScore       int       `json:"final_score"`
	CorrectCount     int       `json:"correct_count"`
	TotalQuestions   int       `json:"total_questions"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	CompletedAt      time.Time `json:"completed_at"`
}

// RoomEvent activates NPC logic living outside the engine
type RoomEvent struct {
	RoomID   string `json:"room_id"`
	NPCID    string `json:"npc_id"`
	PlayerID string `json:"player_id,omitempty"`
	Snapshot View   `json:"snapshot"`
	Kind     string `json:"kind"`
}

type ResponseSubmitter interface {
	SubmitResponse(ctx context.Context, roomID, attemptID string, r quiz_models.Response) error
}

type AttemptCompleter interface {
	CompleteAttempt(ctx context.Context, attemptID string, summary AttemptSummary) error
}

// RoomService owns the room record. AdvanceProgress must fail with
// *AdvanceRaceError, returning the stored progress, when expectedVersion is stale.
type RoomService interface {
	StartGameWithCountdown(ctx context.Context, roomID string, countdownSeconds int) (bool, error)
	AdvanceProgress(ctx context.Context, roomID string, expectedVersion int64, next Progress) (Progress, error)
	CloseRoom(ctx context.Context, roomID string) error
}

// QuestionSource loads the question set of a new room
type QuestionSource interface {
	Questions(ctx context.Context, count int) ([]quiz_models.Question, error)
}

type SystemMessenger interface {
	SendSystemMessage(ctx context.Context, roomID, text string) error
}

type RoomNotifier interface {
	NotifyRoomEvent(ctx context.Context, ev RoomEvent) error
}

// Broadcaster pushes an event to every client of a room. It must not block.
type Broadcaster interface {
	Broadcast(roomID, event string, payload any)
}

// Effects are the fire-and-forget side effects of the machine. Implementations
// must not wait for the remote call and must swallow their own failures.
type Effects interface {
	SubmitResponse(roomID, attemptID string, r quiz_models.Response)
	CompleteAttempt(attemptID string, summary AttemptSummary)
	NotifyRoomEvent(ev RoomEvent)
	SendSystemMessage(roomID, text string)
}

// CompletionReport is passed to the completion callback
type CompletionReport struct {
	RoomID      string
	ModeID      string
	Leaderboard []leaderboard.Entry
	CompletedAt time.Time
}
