package modes

import (
	quiz_models "CivicQuiz/models/quiz"
	"sort"
	"time"
)

const (
	Classic     = "classic"
	SpeedRound  = "speed_round"
	Elimination = "elimination"
	TeamStudy   = "team_study"
)

const DefaultMode = Classic

var registry = map[string]quiz_models.GameModeConfig{
	Classic: {
		ID:                 Classic,
		Name:               "Classic",
		QuestionCount:      10,
		TimePerQuestion:    45 * time.Second,
		AllowExplanations:  true,
		AllowHints:         true,
		AllowBoosts:        false,
		ShowRealTimeScores: true,
		SpeedBonus:         true,
		AutoAdvanceDelay:   3 * time.Second,
		CountdownDuration:  5 * time.Second,
	},
	SpeedRound: {
		ID:                 SpeedRound,
		Name:               "Speed Round",
		QuestionCount:      15,
		TimePerQuestion:    15 * time.Second,
		AllowExplanations:  false,
		AllowHints:         false,
		AllowBoosts:        true,
		ShowRealTimeScores: true,
		SpeedBonus:         true,
		AutoAdvanceDelay:   2 * time.Second,
		CountdownDuration:  3 * time.Second,
	},
	Elimination: {
		ID:                 Elimination,
		Name:               "Elimination",
		QuestionCount:      10,
		TimePerQuestion:    30 * time.Second,
		AllowExplanations:  true,
		AllowHints:         false,
		ShowRealTimeScores: true,
		SpeedBonus:         true,
		Elimination:        true,
		AutoAdvanceDelay:   3 * time.Second,
		CountdownDuration:  5 * time.Second,
	},
	TeamStudy: {
		ID:                 TeamStudy,
		Name:               "Team Study",
		QuestionCount:      8,
		TimePerQuestion:    60 * time.Second,
		AllowExplanations:  true,
		AllowHints:         true,
		ShowRealTimeScores: false,
		SpeedBonus:         false,
		Collaborative:      true,
		AutoAdvanceDelay:   5 * time.Second,
		CountdownDuration:  5 * time.Second,
	},
}

// ConfigFor returns the parameters of a game mode
func ConfigFor(modeID string) (quiz_models.GameModeConfig, error) {
	cfg, ok := registry[modeID]
	if !ok {
		return quiz_models.GameModeConfig{}, &quiz_models.UnknownModeError{ModeID: modeID}
	}
	return cfg, nil
}

// All lists every mode ordered by id
func All() []quiz_models.GameModeConfig {
	out := make([]quiz_models.GameModeConfig, 0, len(registry))
	for _, cfg := range registry {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Description is the client facing shape of a mode, durations in seconds
type Description struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	QuestionCount           int     `json:"question_count"`
	TimePerQuestionSeconds  float64 `json:"time_per_question_seconds"`
	AllowExplanations       bool    `json:"allow_explanations"`
	AllowHints              bool    `json:"allow_hints"`
	AllowBoosts             bool    `json:"allow_boosts"`
	ShowRealTimeScores      bool    `json:"show_real_time_scores"`
	SpeedBonus              bool    `json:"speed_bonus"`
	Elimination             bool    `json:"elimination"`
	Collaborative           bool    `json:"collaborative"`
	AutoAdvanceDelaySeconds float64 `json:"auto_advance_delay_seconds"`
	CountdownSeconds        float64 `json:"countdown_seconds"`
}

func Describe(cfg quiz_models.GameModeConfig) Description {
	return Description{
		ID:                      cfg.ID,
		Name:                    cfg.Name,
		QuestionCount:           cfg.QuestionCount,
		TimePerQuestionSeconds:  cfg.TimePerQuestion.Seconds(),
		AllowExplanations:       cfg.AllowExplanations,
		AllowHints:              cfg.AllowHints,
		AllowBoosts:             cfg.AllowBoosts,
		ShowRealTimeScores:      cfg.ShowRealTimeScores,
		SpeedBonus:              cfg.SpeedBonus,
		Elimination:             cfg.Elimination,
		Collaborative:           cfg.Collaborative,
		AutoAdvanceDelaySeconds: cfg.AutoAdvanceDelay.Seconds(),
		CountdownSeconds:        cfg.CountdownDuration.Seconds(),
	}
}
