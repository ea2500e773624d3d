package scoring

import (
	game_constants "CivicQuiz/constants/game"
	quiz_models "CivicQuiz/models/quiz"
	"math"
	"time"
)

// Bonus is the result of the speed bonus policy for a single answer
type Bonus struct {
	Points     int     `json:"points"`
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason,omitempty"`
}

// SpeedBonus computes the extra points and combo multiplier of an answer.
// consecutiveCorrect must already include the answer being scored.
// The tiers are the fixed 3/6/10/15 second thresholds for every mode, the
// time limit is accepted but does not scale them.
func SpeedBonus(timeSpentSeconds float64, isCorrect bool, timeLimitSeconds float64, consecutiveCorrect int) Bonus {
	if !isCorrect {
		return Bonus{Points: 0, Multiplier: 1}
	}

	var b Bonus
	switch {
	case timeSpentSeconds <= game_constants.LIGHTNING_SECONDS:
		b = Bonus{Points: game_constants.LIGHTNING_BONUS, Multiplier: 3, Reason: game_constants.REASON_LIGHTNING}
	case timeSpentSeconds <= game_constants.VERY_FAST_SECONDS:
		b = Bonus{Points: game_constants.VERY_FAST_BONUS, Multiplier: 2.5, Reason: game_constants.REASON_VERY_FAST}
	case timeSpentSeconds <= game_constants.FAST_SECONDS:
		b = Bonus{Points: game_constants.FAST_BONUS, Multiplier: 2, Reason: game_constants.REASON_FAST}
	case timeSpentSeconds <= game_constants.QUICK_SECONDS:
		b = Bonus{Points: game_constants.QUICK_BONUS, Multiplier: 1.5, Reason: game_constants.REASON_QUICK}
	default:
		b = Bonus{Points: 0, Multiplier: 1}
	}

	if consecutiveCorrect >= game_constants.COMBO_MIN_STREAK {
		combo := consecutiveCorrect * game_constants.COMBO_POINTS_PER_STEP
		if combo > game_constants.COMBO_MAX_POINTS {
			combo = game_constants.COMBO_MAX_POINTS
		}
		b.Points += combo
		steps := consecutiveCorrect
		if steps > game_constants.COMBO_MAX_STREAK_STEPS {
			steps = game_constants.COMBO_MAX_STREAK_STEPS
		}
		b.Multiplier = roundMultiplier(b.Multiplier + game_constants.COMBO_MULTIPLIER_STEP*float64(steps))
	}
	return b
}

// Pressure maps the remaining share of the question clock to a discrete level
func Pressure(timeLeftSeconds, timeLimitSeconds float64) quiz_models.PressureLevel {
	if timeLimitSeconds <= 0 {
		return quiz_models.PressureExtreme
	}
	ratio := timeLeftSeconds / timeLimitSeconds
	switch {
	case ratio > game_constants.PRESSURE_LOW_RATIO:
		return quiz_models.PressureLow
	case ratio > game_constants.PRESSURE_MEDIUM_RATIO:
		return quiz_models.PressureMedium
	case ratio > game_constants.PRESSURE_HIGH_RATIO:
		return quiz_models.PressureHigh
	default:
		return quiz_models.PressureExtreme
	}
}

func BasePoints(isCorrect bool) int {
	if isCorrect {
		return game_constants.BASE_POINTS_CORRECT
	}
	return 0
}

// Award is the full scoring outcome of one answer
type Award struct {
	Base     int                       `json:"base"`
	Bonus    Bonus                     `json:"bonus"`
	Points   int                       `json:"points"`
	Pressure quiz_models.PressureLevel `json:"pressure"`
}

// Score combines base points and, when the mode enables it, the speed bonus.
// The multiplier is reported but not applied to the contribution.
func Score(isCorrect bool, elapsed, timeLimit time.Duration, consecutiveCorrect int, speedBonus bool) Award {
	base := BasePoints(isCorrect)
	bonus := Bonus{Multiplier: 1}
	if speedBonus {
		bonus = SpeedBonus(elapsed.Seconds(), isCorrect, timeLimit.Seconds(), consecutiveCorrect)
	}
	left := timeLimit - elapsed
	if left < 0 {
		left = 0
	}
	return Award{
		Base:     base,
		Bonus:    bonus,
		Points:   base + bonus.Points,
		Pressure: Pressure(left.Seconds(), timeLimit.Seconds()),
	}
}

// avoids 2.6000000000000005 style multipliers leaking to clients
func roundMultiplier(m float64) float64 {
	return math.Round(m*100) / 100
}
