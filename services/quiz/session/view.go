package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/leaderboard"
	"CivicQuiz/services/quiz/scoring"
	"time"
)

type PlayerView struct {
	PlayerID     string                       `json:"player_id"`
	Name         string                       `json:"name"`
	IsHost       bool                         `json:"is_host"`
	IsReady      bool                         `json:"is_ready"`
	IsNPC        bool                         `json:"is_npc"`
	Score        int                          `json:"score"`
	CorrectCount int                          `json:"correct_count"`
	Answered     bool                         `json:"answered"`
	Eliminated   bool                         `json:"eliminated"`
	Speed        *quiz_models.SpeedRoundState `json:"speed,omitempty"`
}

// View is what the presentation layer renders
type View struct {
	RoomID          string                    `json:"room_id"`
	ModeID          string                    `json:"mode_id"`
	Phase           quiz_models.Phase         `json:"phase"`
	CurrentOrdinal  int                       `json:"current_ordinal"`
	TotalQuestions  int                       `json:"total_questions"`
	ProgressPercent float64                   `json:"progress_percent"`
	Question        *quiz_models.Question     `json:"question,omitempty"`
	TimeLeftMs      int64                     `json:"time_left_ms"`
	Pressure        quiz_models.PressureLevel `json:"pressure"`
	Players         []PlayerView              `json:"players"`
	Leaderboard     []leaderboard.Entry       `json:"leaderboard,omitempty"`
	Version         int64                     `json:"version"`
}

// Snapshot returns the current presentation view. While waiting the first
// question is shown as a preview without touching state.
func (m *Machine) Snapshot() View {
	s := m.state
	v := View{
		RoomID:          m.roomID,
		ModeID:          m.mode.ID,
		Phase:           s.Phase,
		CurrentOrdinal:  s.CurrentOrdinal,
		TotalQuestions:  s.TotalQuestions,
		ProgressPercent: s.ProgressPercent(),
		Pressure:        quiz_models.PressureLow,
		Version:         s.Version,
	}

	switch s.Phase {
	case quiz_models.PhaseWaiting, quiz_models.PhaseCountdown:
		q := m.questions[0]
		v.Question = &q
	case quiz_models.PhaseQuestion, quiz_models.PhaseBetweenQuestions:
		q := m.current()
		v.Question = &q
	}

	if s.Phase == quiz_models.PhaseQuestion {
		left := m.timeLeft(m.clock.Now())
		v.TimeLeftMs = left.Milliseconds()
		v.Pressure = scoring.Pressure(left.Seconds(), m.mode.TimePerQuestion.Seconds())
	} else if s.Phase == quiz_models.PhaseBetweenQuestions || s.Phase == quiz_models.PhaseCompleted {
		v.Pressure = quiz_models.PressureExtreme
	}

	v.Players = make([]PlayerView, 0, len(m.players))
	for _, p := range m.players {
		pv := PlayerView{
			PlayerID: p.ID,
			Name:     p.Name,
			IsHost:   p.IsHost,
			IsReady:  p.IsReady,
			IsNPC:    p.IsNPC(),
			Answered: s.HasAnswered(p.ID),
		}
		if prog, ok := s.Players[p.ID]; ok {
			pv.Score = prog.Score
			pv.CorrectCount = prog.CorrectCount
			pv.Eliminated = prog.Eliminated
			if m.mode.SpeedBonus {
				speed := prog.Speed
				pv.Speed = &speed
			}
		}
		v.Players = append(v.Players, pv)
	}

	if m.mode.ShowRealTimeScores || s.Phase == quiz_models.PhaseCompleted {
		v.Leaderboard = m.Leaderboard()
	}
	return v
}

func (m *Machine) timeLeft(now time.Time) time.Duration {
	left := m.mode.TimePerQuestion - now.Sub(m.state.QuestionStartedAt)
	if left < 0 {
		return 0
	}
	return left
}
