package quiz_models

import "time"

// GameModeConfig is selected once per room from the mode identifier
type GameModeConfig struct {
	ID                 string
	Name               string
	QuestionCount      int
	TimePerQuestion    time.Duration
	AllowExplanations  bool
	AllowHints         bool
	AllowBoosts        bool
	ShowRealTimeScores bool
	SpeedBonus         bool
	Elimination        bool
	Collaborative      bool
	AutoAdvanceDelay   time.Duration
	CountdownDuration  time.Duration
}

func (c GameModeConfig) TimeLimitSeconds() float64 {
	return c.TimePerQuestion.Seconds()
}
