package quiz_models

import "time"

// Phase is one state of a room's lifecycle
type Phase string

const (
	PhaseWaiting          Phase = "waiting"
	PhaseCountdown        Phase = "countdown"
	PhaseQuestion         Phase = "question"
	PhaseBetweenQuestions Phase = "between_questions"
	PhaseCompleted        Phase = "completed"
)

// RoomStatus is owned by the room service, the engine only reads it
type RoomStatus string

const (
	RoomWaiting RoomStatus = "waiting"
	RoomActive  RoomStatus = "active"
	RoomClosed  RoomStatus = "closed"
)

type PressureLevel string

const (
	PressureLow     PressureLevel = "low"
	PressureMedium  PressureLevel = "medium"
	PressureHigh    PressureLevel = "high"
	PressureExtreme PressureLevel = "extreme"
)

// SpeedRoundState tracks the speed/streak extension of a single player
type SpeedRoundState struct {
	SpeedBonus         int           `json:"speed_bonus"`
	ConsecutiveCorrect int           `json:"consecutive_correct"`
	LastLatencyMs      int64         `json:"last_latency_ms"`
	ComboMultiplier    float64       `json:"combo_multiplier"`
	Pressure           PressureLevel `json:"pressure"`
	TotalScore         int           `json:"total_score"`
}

// PlayerProgress is the running tally of one player inside a GameState
type PlayerProgress struct {
	Score        int             `json:"score"`
	CorrectCount int             `json:"correct_count"`
	TimeSpentMs  int64           `json:"time_spent_ms"`
	Eliminated   bool            `json:"eliminated"`
	Speed        SpeedRoundState `json:"speed"`
}

// GameState is created when a room leaves "waiting" and mutated by every
// answer and phase transition.
type GameState struct {
	Phase              Phase                      `json:"phase"`
	CurrentOrdinal     int                        `json:"current_ordinal"`
	TotalQuestions     int                        `json:"total_questions"`
	Players            map[string]*PlayerProgress `json:"players"`
	MatchStartedAt     time.Time                  `json:"match_started_at"`
	QuestionStartedAt  time.Time                  `json:"question_started_at"`
	CountdownStartedAt time.Time                  `json:"countdown_started_at"`
	Answered           map[string]bool            `json:"answered"`
	// Version is bumped on every transition, timer events carry it
	Version int64 `json:"version"`
}

func NewGameState(totalQuestions int) *GameState {
	return &GameState{
		Phase:          PhaseWaiting,
		TotalQuestions: totalQuestions,
		Players:        make(map[string]*PlayerProgress),
		Answered:       make(map[string]bool),
	}
}

// ProgressFor returns the tally of a player, creating an empty one on first use
func (s *GameState) ProgressFor(playerID string) *PlayerProgress {
	p, ok := s.Players[playerID]
	if !ok {
		p = &PlayerProgress{Speed: SpeedRoundState{ComboMultiplier: 1, Pressure: PressureLow}}
		s.Players[playerID] = p
	}
	return p
}

func (s *GameState) HasAnswered(playerID string) bool {
	return s.Answered[playerID]
}

func (s *GameState) IsLastQuestion() bool {
	return s.CurrentOrdinal >= s.TotalQuestions-1
}

// ProgressPercent is the share of questions already resolved
func (s *GameState) ProgressPercent() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	switch s.Phase {
	case PhaseWaiting, PhaseCountdown:
		return 0
	case PhaseCompleted:
		return 100
	case PhaseBetweenQuestions:
		return float64(s.CurrentOrdinal+1) / float64(s.TotalQuestions) * 100
	}
	return float64(s.CurrentOrdinal) / float64(s.TotalQuestions) * 100
}
