package answers

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/roster"
	"CivicQuiz/services/quiz/scoring"
	"time"

	"github.com/google/uuid"
)

// Submission is one player's answer to the current question
type Submission struct {
	PlayerID string
	OptionID string
	Elapsed  time.Duration
	At       time.Time
}

// Outcome describes an accepted answer
type Outcome struct {
	Response          quiz_models.Response
	Award             scoring.Award
	Progress          quiz_models.PlayerProgress
	Eliminated        bool
	AllHumansAnswered bool
}

// Controller validates and records answers for one game mode
type Controller struct {
	mode  quiz_models.GameModeConfig
	newID func() string
}

func NewController(mode quiz_models.GameModeConfig, newID func() string) *Controller {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Controller{mode: mode, newID: newID}
}

// Submit records a player's answer. Every precondition failure leaves state
// and log untouched.
func (c *Controller) Submit(state *quiz_models.GameState, log *ResponseLog, q quiz_models.Question,
	players []quiz_models.Player, sub Submission) (Outcome, error) {

	if state.Phase != quiz_models.PhaseQuestion {
		return Outcome{}, quiz_models.ErrWrongPhase
	}
	if _, ok := roster.Find(players, sub.PlayerID); !ok {
		return Outcome{}, quiz_models.ErrUnknownPlayer
	}
	if p, ok := state.Players[sub.PlayerID]; ok && p.Eliminated {
		return Outcome{}, quiz_models.ErrPlayerEliminated
	}
	if log.Has(sub.PlayerID, state.CurrentOrdinal) || state.HasAnswered(sub.PlayerID) {
		return Outcome{}, &quiz_models.DuplicateAnswerError{PlayerID: sub.PlayerID, Ordinal: state.CurrentOrdinal}
	}
	if !q.HasOption(sub.OptionID) {
		return Outcome{}, quiz_models.ErrUnknownOption
	}

	elapsed := sub.Elapsed
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > c.mode.TimePerQuestion {
		elapsed = c.mode.TimePerQuestion
	}

	out, err := c.record(state, log, q, sub.PlayerID, sub.OptionID, q.IsCorrect(sub.OptionID), elapsed, sub.At, false)
	if err != nil {
		return Outcome{}, err
	}
	out.AllHumansAnswered = AllHumansAnswered(state, players)
	return out, nil
}

// ForceTimeout records the implicit "no answer" for every human who has not
// answered the current question
func (c *Controller) ForceTimeout(state *quiz_models.GameState, log *ResponseLog, q quiz_models.Question,
	players []quiz_models.Player, at time.Time) []Outcome {

	var outcomes []Outcome
	for _, p := range players {
		if p.IsNPC() || state.HasAnswered(p.ID) || log.Has(p.ID, state.CurrentOrdinal) {
			continue
		}
		if prog, ok := state.Players[p.ID]; ok && prog.Eliminated {
			continue
		}
		out, err := c.record(state, log, q, p.ID, "", false, c.mode.TimePerQuestion, at, true)
		if err != nil {
			continue
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (c *Controller) record(state *quiz_models.GameState, log *ResponseLog, q quiz_models.Question,
	playerID, optionID string, correct bool, elapsed time.Duration, at time.Time, timedOut bool) (Outcome, error) {

	// scored on the stored millisecond value so a replay of the log agrees
	elapsed = elapsed.Truncate(time.Millisecond)

	progress := state.ProgressFor(playerID)
	streak := 0
	if correct {
		streak = progress.Speed.ConsecutiveCorrect + 1
	}
	award := scoring.Score(correct, elapsed, c.mode.TimePerQuestion, streak, c.mode.SpeedBonus)

	resp := quiz_models.Response{
		ID:             c.newID(),
		PlayerID:       playerID,
		Ordinal:        state.CurrentOrdinal,
		QuestionID:     q.ID,
		OptionID:       optionID,
		IsCorrect:      correct,
		ResponseTimeMs: elapsed.Milliseconds(),
		SubmittedAt:    at,
		TimedOut:       timedOut,
		Points:         award.Points,
	}
	if err := log.Append(resp); err != nil {
		return Outcome{}, err
	}

	progress.Score += award.Points
	if correct {
		progress.CorrectCount++
	}
	progress.TimeSpentMs += elapsed.Milliseconds()
	progress.Speed.ConsecutiveCorrect = streak
	progress.Speed.SpeedBonus += award.Bonus.Points
	progress.Speed.LastLatencyMs = elapsed.Milliseconds()
	progress.Speed.ComboMultiplier = award.Bonus.Multiplier
	progress.Speed.Pressure = award.Pressure
	progress.Speed.TotalScore = progress.Score

	eliminated := false
	if c.mode.Elimination && !correct {
		progress.Eliminated = true
		eliminated = true
	}
	state.Answered[playerID] = true

	return Outcome{Response: resp, Award: award, Progress: *progress, Eliminated: eliminated}, nil
}

// AllHumansAnswered reports whether no human is still expected to answer.
// NPCs never block, eliminated players are no longer required.
func AllHumansAnswered(state *quiz_models.GameState, players []quiz_models.Player) bool {
	for _, p := range players {
		if p.IsNPC() || state.HasAnswered(p.ID) {
			continue
		}
		if prog, ok := state.Players[p.ID]; ok && prog.Eliminated {
			continue
		}
		return false
	}
	return true
}
