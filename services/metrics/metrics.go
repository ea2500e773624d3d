package metrics

import (
	quiz_models "CivicQuiz/models/quiz"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "civicquiz"

var (
	AnswersAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_accepted_total",
		Help:      "Answers recorded by the engine, by player role and outcome.",
	}, []string{"role", "outcome"})

	AnswersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_rejected_total",
		Help:      "Answer submissions rejected before recording, by reason.",
	}, []string{"reason"})

	QuestionsAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_advanced_total",
		Help:      "Question ordinal advances applied by this process.",
	})

	AdvanceRacesLost = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advance_races_lost_total",
		Help:      "Advances skipped because another writer moved the room first.",
	})

	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persistence_failures_total",
		Help:      "Failed calls to external collaborators, by operation.",
	}, []string{"op"})

	GamesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_completed_total",
		Help:      "Games that reached the completed phase.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Room sessions currently running in this process.",
	})

	AnswerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "answer_latency_seconds",
		Help:      "Time between question start and answer submission.",
		Buckets:   []float64{1, 3, 6, 10, 15, 20, 30, 45, 60},
	})
)

// RejectReason maps an answer error to a low-cardinality label
func RejectReason(err error) string {
	var dup *quiz_models.DuplicateAnswerError
	switch {
	case errors.As(err, &dup):
		return "duplicate"
	case errors.Is(err, quiz_models.ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, quiz_models.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, quiz_models.ErrUnknownOption):
		return "unknown_option"
	case errors.Is(err, quiz_models.ErrPlayerEliminated):
		return "eliminated"
	case errors.Is(err, quiz_models.ErrNoSelection):
		return "no_selection"
	}
	return "other"
}
