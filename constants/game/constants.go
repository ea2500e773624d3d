package game_constants

const MaxPlayersPerRoom = 8
const MinPlayersPerRoom = 1

// Scoring
const BASE_POINTS_CORRECT = 100

// Speed bonus tiers, in seconds. Not scaled by the mode's time limit.
const (
	LIGHTNING_SECONDS = 3
	VERY_FAST_SECONDS = 6
	FAST_SECONDS      = 10
	QUICK_SECONDS     = 15
)

const (
	LIGHTNING_BONUS = 50
	VERY_FAST_BONUS = 30
	FAST_BONUS      = 20
	QUICK_BONUS     = 10
)

const (
	COMBO_MIN_STREAK       = 2
	COMBO_POINTS_PER_STEP  = 5
	COMBO_MAX_POINTS       = 25
	COMBO_MULTIPLIER_STEP  = 0.2
	COMBO_MAX_STREAK_STEPS = 5
)

// Pressure ratio thresholds (time left / time limit)
const (
	PRESSURE_LOW_RATIO    = 0.7
	PRESSURE_MEDIUM_RATIO = 0.4
	PRESSURE_HIGH_RATIO   = 0.2
)

// NPC defaults
const (
	NPC_DEFAULT_ACCURACY     = 0.70
	NPC_DEFAULT_MIN_DELAY_MS = 1000
	NPC_DEFAULT_MAX_DELAY_MS = 4000
)

// Reason tags returned by the speed bonus
const (
	REASON_LIGHTNING = "lightning"
	REASON_VERY_FAST = "very fast"
	REASON_FAST      = "fast"
	REASON_QUICK     = "quick"
)
