package quiz_models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option is one answer choice, ID is the canonical identifier assigned at ingestion
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is immutable once loaded
type Question struct {
	ID              string     `json:"id"`
	Ordinal         int        `json:"ordinal"`
	Prompt          string     `json:"prompt"`
	Options         []Option   `json:"options"`
	CorrectOptionID string     `json:"-"`
	Category        string     `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	Hint            string     `json:"-"`
	Explanation     string     `json:"-"`
}

func (q Question) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// IsCorrect compares canonical option ids only
func (q Question) IsCorrect(optionID string) bool {
	return optionID != "" && optionID == q.CorrectOptionID
}

// Response is append-only, one per (player, question ordinal)
type Response struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"player_id"`
	Ordinal        int       `json:"ordinal"`
	QuestionID     string    `json:"question_id"`
	OptionID       string    `json:"option_id"`
	IsCorrect      bool      `json:"is_correct"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	SubmittedAt    time.Time `json:"submitted_at"`
	TimedOut       bool      `json:"timed_out"`
	Points         int       `json:"points"`
}
