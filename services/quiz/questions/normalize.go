package questions

import (
	quiz_models "CivicQuiz/models/quiz"
	"fmt"
	"strings"
)

// RawQuestion is a question as it comes from the question bank, before
// options get canonical ids. CorrectAnswer may hold the option text, a
// differently cased/spaced version of it, or an option id.
type RawQuestion struct {
	ID            string   `json:"id" yaml:"id"`
	Prompt        string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	OptionIDs     []string `json:"option_ids,omitempty" yaml:"option_ids,omitempty"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
	Category      string   `json:"category" yaml:"category"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	Hint          string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// OptionID is the canonical id of the option at index i: a, b, ..., z, aa, ab, ...
func OptionID(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return OptionID(i/26-1) + OptionID(i%26)
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Normalize converts a raw question to the canonical option-id scheme. The
// engine compares ids only, so every text matching happens here.
func Normalize(raw RawQuestion) (quiz_models.Question, error) {
	if len(raw.Options) == 0 {
		return quiz_models.Question{}, fmt.Errorf("question %s has no options: %w", raw.ID, quiz_models.ErrUnresolvableAnswer)
	}

	q := quiz_models.Question{
		ID:          raw.ID,
		Prompt:      raw.Prompt,
		Options:     make([]quiz_models.Option, len(raw.Options)),
		Category:    raw.Category,
		Difficulty:  normalizeDifficulty(raw.Difficulty),
		Hint:        raw.Hint,
		Explanation: raw.Explanation,
	}
	for i, text := range raw.Options {
		q.Options[i] = quiz_models.Option{ID: OptionID(i), Text: text}
	}

	correct, ok := resolve(raw)
	if !ok {
		return quiz_models.Question{}, fmt.Errorf("question %s answer %q: %w", raw.ID, raw.CorrectAnswer, quiz_models.ErrUnresolvableAnswer)
	}
	q.CorrectOptionID = correct
	return q, nil
}

func resolve(raw RawQuestion) (string, bool) {
	if raw.CorrectAnswer == "" {
		return "", false
	}
	for i, text := range raw.Options {
		if text == raw.CorrectAnswer {
			return OptionID(i), true
		}
	}
	want := fold(raw.CorrectAnswer)
	for i, text := range raw.Options {
		if fold(text) == want {
			return OptionID(i), true
		}
	}
	// upstream ids first, then our own canonical letters
	for i, id := range raw.OptionIDs {
		if i < len(raw.Options) && id == raw.CorrectAnswer {
			return OptionID(i), true
		}
	}
	for i := range raw.Options {
		if OptionID(i) == want {
			return OptionID(i), true
		}
	}
	return "", false
}

func normalizeDifficulty(d string) quiz_models.Difficulty {
	switch quiz_models.Difficulty(fold(d)) {
	case quiz_models.DifficultyEasy:
		return quiz_models.DifficultyEasy
	case quiz_models.DifficultyHard:
		return quiz_models.DifficultyHard
	}
	return quiz_models.DifficultyMedium
}

// NormalizeAll normalizes a question set and assigns ordinals 0..n-1.
// It stops at the first question whose answer cannot be resolved.
func NormalizeAll(raws []RawQuestion) ([]quiz_models.Question, error) {
	out := make([]quiz_models.Question, 0, len(raws))
	for i, raw := range raws {
		q, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		q.Ordinal = i
		out = append(out, q)
	}
	return out, nil
}
