package npc

import (
	game_constants "CivicQuiz/constants/game"
	quiz_models "CivicQuiz/models/quiz"
	"math/rand/v2"
	"time"
)

// Rand is the subset of *rand.Rand the simulator needs
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Config holds the NPC behaviour knobs. Accuracy may vary per difficulty,
// the defaults reproduce a flat 70% for every question.
type Config struct {
	MinDelay        time.Duration
	MaxDelay        time.Duration
	DefaultAccuracy float64
	Accuracy        map[quiz_models.Difficulty]float64
}

func DefaultConfig() Config {
	return Config{
		MinDelay:        game_constants.NPC_DEFAULT_MIN_DELAY_MS * time.Millisecond,
		MaxDelay:        game_constants.NPC_DEFAULT_MAX_DELAY_MS * time.Millisecond,
		DefaultAccuracy: game_constants.NPC_DEFAULT_ACCURACY,
	}
}

func (c Config) AccuracyFor(d quiz_models.Difficulty) float64 {
	if acc, ok := c.Accuracy[d]; ok {
		return acc
	}
	return c.DefaultAccuracy
}

// PlannedAnswer is what one NPC will submit and when
type PlannedAnswer struct {
	PlayerID string
	Delay    time.Duration
	OptionID string
	Correct  bool
}

type Simulator struct {
	cfg Config
	rng Rand
}

func NewSimulator(cfg Config, rng Rand) *Simulator {
	if rng == nil {
		rng = globalRand{}
	}
	if cfg.MaxDelay <= cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay + time.Millisecond
	}
	return &Simulator{cfg: cfg, rng: rng}
}

func (s *Simulator) Config() Config {
	return s.cfg
}

// Plan decides the answer of every NPC for one question. Delays are uniform in
// [MinDelay, MaxDelay) and always strictly below the time limit.
func (s *Simulator) Plan(npcs []quiz_models.Player, q quiz_models.Question, timeLimit time.Duration) []PlannedAnswer {
	if timeLimit <= time.Millisecond || len(q.Options) == 0 {
		return nil
	}
	planned := make([]PlannedAnswer, 0, len(npcs))
	for _, p := range npcs {
		if !p.IsNPC() {
			continue
		}
		planned = append(planned, s.planOne(p, q, timeLimit))
	}
	return planned
}

func (s *Simulator) planOne(p quiz_models.Player, q quiz_models.Question, timeLimit time.Duration) PlannedAnswer {
	window := int((s.cfg.MaxDelay - s.cfg.MinDelay) / time.Millisecond)
	delay := s.cfg.MinDelay
	if window > 0 {
		delay += time.Duration(s.rng.IntN(window)) * time.Millisecond
	}
	if delay >= timeLimit {
		delay = timeLimit - time.Millisecond
	}

	answer := PlannedAnswer{PlayerID: p.ID, Delay: delay}
	if s.rng.Float64() < s.cfg.AccuracyFor(q.Difficulty) {
		answer.OptionID = q.CorrectOptionID
		answer.Correct = true
		return answer
	}

	wrong := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o.ID != q.CorrectOptionID {
			wrong = append(wrong, o.ID)
		}
	}
	if len(wrong) == 0 {
		answer.OptionID = q.CorrectOptionID
		answer.Correct = true
		return answer
	}
	answer.OptionID = wrong[s.rng.IntN(len(wrong))]
	return answer
}
