package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/metrics"
	"CivicQuiz/services/quiz/answers"
	"CivicQuiz/services/quiz/leaderboard"
	"CivicQuiz/services/quiz/modes"
	"CivicQuiz/services/quiz/npc"
	"CivicQuiz/services/quiz/roster"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultCallTimeout = 3 * time.Second

// Deps are the collaborators of a Machine. Scheduler is required, every
// other field has a usable default.
type Deps struct {
	Rooms       RoomService
	Effects     Effects
	Broadcaster Broadcaster
	Scheduler   Scheduler
	Clock       Clock
	NPC         *npc.Simulator
	NewID       func() string
	Logger      *slog.Logger
	CallTimeout time.Duration
	OnComplete  func(CompletionReport)
}

// Machine is the authoritative game state machine of one room:
// waiting -> countdown -> question -> between_questions -> ... -> completed.
// It is not safe for concurrent use, Session serialises every call.
type Machine struct {
	roomID    string
	mode      quiz_models.GameModeConfig
	questions []quiz_models.Question
	players   []quiz_models.Player

	state *quiz_models.GameState
	log   *answers.ResponseLog
	ctrl  *answers.Controller
	sim   *npc.Simulator

	rooms       RoomService
	effects     Effects
	broadcaster Broadcaster
	scheduler   Scheduler
	clock       Clock
	logger      *slog.Logger
	newID       func() string
	callTimeout time.Duration
	onComplete  func(CompletionReport)

	// last known version of the shared room progress
	sharedVersion int64
	attempts      map[string]string
	selections    map[string]string
	hintsUsed     map[string]bool
	pending       []func()
	completeFired bool
	closed        bool
}

func NewMachine(roomID string, mode quiz_models.GameModeConfig, questions []quiz_models.Question,
	players []quiz_models.Player, deps Deps) (*Machine, error) {

	if len(questions) == 0 {
		return nil, quiz_models.ErrNoQuestions
	}
	if deps.Scheduler == nil {
		return nil, errors.New("session: a scheduler is required")
	}
	m := &Machine{
		roomID:      roomID,
		mode:        mode,
		questions:   questions,
		rooms:       deps.Rooms,
		effects:     deps.Effects,
		broadcaster: deps.Broadcaster,
		scheduler:   deps.Scheduler,
		clock:       deps.Clock,
		sim:         deps.NPC,
		logger:      deps.Logger,
		newID:       deps.NewID,
		callTimeout: deps.CallTimeout,
		onComplete:  deps.OnComplete,
		attempts:    make(map[string]string),
		selections:  make(map[string]string),
		hintsUsed:   make(map[string]bool),
	}
	if m.effects == nil {
		m.effects = noopEffects{}
	}
	if m.broadcaster == nil {
		m.broadcaster = noopBroadcaster{}
	}
	if m.clock == nil {
		m.clock = SystemClock
	}
	if m.sim == nil {
		m.sim = npc.NewSimulator(npc.DefaultConfig(), nil)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("room_id", roomID)
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	if m.callTimeout <= 0 {
		m.callTimeout = defaultCallTimeout
	}
	m.players = append([]quiz_models.Player(nil), players...)
	m.resetForMode(mode)
	return m, nil
}

func (m *Machine) resetForMode(mode quiz_models.GameModeConfig) {
	m.mode = mode
	m.ctrl = answers.NewController(mode, m.newID)
	m.log = answers.NewResponseLog()
	total := mode.QuestionCount
	if total <= 0 || total > len(m.questions) {
		total = len(m.questions)
	}
	m.state = quiz_models.NewGameState(total)
	for _, p := range m.players {
		m.state.ProgressFor(p.ID)
	}
}

func (m *Machine) RoomID() string                   { return m.roomID }
func (m *Machine) Mode() quiz_models.GameModeConfig { return m.mode }
func (m *Machine) Phase() quiz_models.Phase         { return m.state.Phase }
func (m *Machine) Closed() bool                     { return m.closed }

func (m *Machine) Players() []quiz_models.Player {
	return append([]quiz_models.Player(nil), m.players...)
}

func (m *Machine) Responses() []quiz_models.Response {
	return m.log.All()
}

// AttemptID returns the attempt opened for a human when the game started
func (m *Machine) AttemptID(playerID string) (string, bool) {
	id, ok := m.attempts[playerID]
	return id, ok
}

func (m *Machine) Leaderboard() []leaderboard.Entry {
	return leaderboard.Compute(m.log.All(), m.players, m.mode)
}

func (m *Machine) current() quiz_models.Question {
	return m.questions[m.state.CurrentOrdinal]
}

func (m *Machine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.callTimeout)
}

func (m *Machine) transition(phase quiz_models.Phase) {
	from := m.state.Phase
	m.state.Phase = phase
	m.state.Version++
	m.logger.Info("[PHASE-CHANGE]", "from", from, "to", phase, "ordinal", m.state.CurrentOrdinal, "version", m.state.Version)
	m.broadcaster.Broadcast(m.roomID, EventPhaseChanged, gin.H{
		"phase":           phase,
		"ordinal":         m.state.CurrentOrdinal,
		"total_questions": m.state.TotalQuestions,
		"version":         m.state.Version,
	})
}

// schedule stamps ev with the current ordinal and version
func (m *Machine) schedule(d time.Duration, ev TimerEvent) {
	ev.Ordinal = m.state.CurrentOrdinal
	ev.Version = m.state.Version
	m.pending = append(m.pending, m.scheduler.Schedule(d, ev))
}

func (m *Machine) cancelTimers() {
	for _, cancel := range m.pending {
		cancel()
	}
	m.pending = nil
}

func (m *Machine) notifyNPCs(kind, playerID string) {
	npcs := roster.Classify(m.players).NPCs
	if len(npcs) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, p := range npcs {
		m.effects.NotifyRoomEvent(RoomEvent{RoomID: m.roomID, NPCID: p.ID, PlayerID: playerID, Snapshot: snap, Kind: kind})
	}
}

// StartGame moves the room from waiting to countdown. Only the host may start
// and only once every human is ready.
func (m *Machine) StartGame(ctx context.Context, requesterID string) error {
	if m.closed {
		return quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseWaiting {
		return quiz_models.ErrWrongPhase
	}
	if err := roster.RequireStart(m.players, requesterID); err != nil {
		return err
	}

	if m.rooms != nil {
		cctx, cancel := m.callCtx(ctx)
		started, err := m.rooms.StartGameWithCountdown(cctx, m.roomID, int(m.mode.CountdownDuration/time.Second))
		cancel()
		if err != nil {
			metrics.PersistenceFailures.WithLabelValues("start_game").Inc()
			m.logger.Warn("[START-ERROR] room service unavailable, starting locally",
				"err", &quiz_models.PersistenceError{Op: "start_game", Err: err})
		} else if !started {
			return fmt.Errorf("room %s refused to start: %w", m.roomID, quiz_models.ErrWrongPhase)
		}
	}

	now := m.clock.Now()
	m.state.MatchStartedAt = now
	m.state.CountdownStartedAt = now
	m.sharedVersion = 0
	for _, p := range m.players {
		m.state.ProgressFor(p.ID)
		if p.IsHuman() {
			m.attempts[p.ID] = m.newID()
		}
	}
	m.transition(quiz_models.PhaseCountdown)
	m.notifyNPCs(RoomEventGameStarted, requesterID)

	if m.mode.CountdownDuration <= 0 {
		m.enterQuestion(ctx, 0)
		return nil
	}
	m.schedule(m.mode.CountdownDuration, TimerEvent{Kind: TimerCountdown})
	return nil
}

func (m *Machine) enterQuestion(ctx context.Context, ordinal int) {
	m.cancelTimers()
	m.state.CurrentOrdinal = ordinal
	m.state.QuestionStartedAt = m.clock.Now()
	m.state.Answered = make(map[string]bool)
	m.selections = make(map[string]string)
	m.hintsUsed = make(map[string]bool)
	m.transition(quiz_models.PhaseQuestion)

	q := m.current()
	m.schedule(m.mode.TimePerQuestion, TimerEvent{Kind: TimerQuestion})

	var npcs []quiz_models.Player
	for _, p := range roster.Classify(m.players).NPCs {
		if prog, ok := m.state.Players[p.ID]; ok && prog.Eliminated {
			continue
		}
		npcs = append(npcs, p)
	}
	for _, plan := range m.sim.Plan(npcs, q, m.mode.TimePerQuestion) {
		m.schedule(plan.Delay, TimerEvent{Kind: TimerNPCAnswer, PlayerID: plan.PlayerID, OptionID: plan.OptionID, Elapsed: plan.Delay})
	}

	m.broadcaster.Broadcast(m.roomID, EventQuestionStarted, gin.H{
		"ordinal":            ordinal,
		"total_questions":    m.state.TotalQuestions,
		"question":           q,
		"time_limit_seconds": m.mode.TimeLimitSeconds(),
		"started_at":         m.state.QuestionStartedAt,
	})
	m.notifyNPCs(RoomEventQuestionStarted, "")
}

// HandleTimer applies a scheduled event. Events from an earlier version or
// ordinal are ignored, which makes every timer-driven transition idempotent.
func (m *Machine) HandleTimer(ctx context.Context, ev TimerEvent) {
	if m.closed {
		return
	}
	if ev.Version != m.state.Version || ev.Ordinal != m.state.CurrentOrdinal {
		m.logger.Debug("[TIMER] stale event dropped", "kind", ev.Kind, "ordinal", ev.Ordinal,
			"event_version", ev.Version, "version", m.state.Version)
		return
	}
	switch ev.Kind {
	case TimerCountdown:
		if m.state.Phase == quiz_models.PhaseCountdown {
			m.enterQuestion(ctx, 0)
		}
	case TimerQuestion:
		if m.state.Phase == quiz_models.PhaseQuestion {
			m.resolve(ctx, true)
		}
	case TimerNPCAnswer:
		if m.state.Phase == quiz_models.PhaseQuestion {
			m.npcAnswer(ev)
		}
	case TimerAdvance:
		m.advance(ctx, true)
	}
}

// HandleTimeUp is the externally triggered question timeout. Repeated or late
// calls for an ordinal that is no longer open are no-ops.
func (m *Machine) HandleTimeUp(ctx context.Context, ordinal int) error {
	if m.closed {
		return quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseQuestion || ordinal != m.state.CurrentOrdinal {
		return nil
	}
	m.resolve(ctx, true)
	return nil
}

func (m *Machine) SelectAnswer(playerID, optionID string) error {
	if m.closed {
		return quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseQuestion {
		return quiz_models.ErrWrongPhase
	}
	if _, ok := roster.Find(m.players, playerID); !ok {
		return quiz_models.ErrUnknownPlayer
	}
	if prog, ok := m.state.Players[playerID]; ok && prog.Eliminated {
		return quiz_models.ErrPlayerEliminated
	}
	if m.state.HasAnswered(playerID) {
		return &quiz_models.DuplicateAnswerError{PlayerID: playerID, Ordinal: m.state.CurrentOrdinal}
	}
	if !m.current().HasOption(optionID) {
		return quiz_models.ErrUnknownOption
	}
	m.selections[playerID] = optionID
	return nil
}

// SubmitAnswer records a human answer. An empty optionID submits the
// player's current selection.
func (m *Machine) SubmitAnswer(ctx context.Context, playerID, optionID string) (answers.Outcome, error) {
	if m.closed {
		return answers.Outcome{}, quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseQuestion {
		metrics.AnswersRejected.WithLabelValues(metrics.RejectReason(quiz_models.ErrWrongPhase)).Inc()
		return answers.Outcome{}, quiz_models.ErrWrongPhase
	}
	if optionID == "" {
		optionID = m.selections[playerID]
		if optionID == "" {
			metrics.AnswersRejected.WithLabelValues(metrics.RejectReason(quiz_models.ErrNoSelection)).Inc()
			return answers.Outcome{}, quiz_models.ErrNoSelection
		}
	}

	now := m.clock.Now()
	out, err := m.ctrl.Submit(m.state, m.log, m.current(), m.players, answers.Submission{
		PlayerID: playerID,
		OptionID: optionID,
		Elapsed:  now.Sub(m.state.QuestionStartedAt),
		At:       now,
	})
	if err != nil {
		metrics.AnswersRejected.WithLabelValues(metrics.RejectReason(err)).Inc()
		m.logger.Info("[ANSWER-REJECTED]", "player_id", playerID, "ordinal", m.state.CurrentOrdinal, "err", err)
		return out, err
	}
	delete(m.selections, playerID)
	m.accepted(out)

	if out.AllHumansAnswered {
		m.resolve(ctx, false)
	}
	return out, nil
}

func (m *Machine) npcAnswer(ev TimerEvent) {
	out, err := m.ctrl.Submit(m.state, m.log, m.current(), m.players, answers.Submission{
		PlayerID: ev.PlayerID,
		OptionID: ev.OptionID,
		Elapsed:  ev.Elapsed,
		At:       m.clock.Now(),
	})
	if err != nil {
		m.logger.Debug("[NPC] answer dropped", "player_id", ev.PlayerID, "err", err)
		return
	}
	m.accepted(out)
	m.notifyNPCs(RoomEventNPCAnswered, ev.PlayerID)
}

// accepted fans out a recorded response
func (m *Machine) accepted(out answers.Outcome) {
	r := out.Response
	p, _ := roster.Find(m.players, r.PlayerID)

	outcome := "incorrect"
	switch {
	case r.TimedOut:
		outcome = "timeout"
	case r.IsCorrect:
		outcome = "correct"
	}
	role := quiz_models.RoleHuman
	if p.IsNPC() {
		role = quiz_models.RoleNPC
	}
	metrics.AnswersAccepted.WithLabelValues(string(role), outcome).Inc()
	metrics.AnswerLatency.Observe(float64(r.ResponseTimeMs) / 1000)
	m.logger.Info("[ANSWER]", "player_id", r.PlayerID, "ordinal", r.Ordinal, "outcome", outcome, "points", r.Points)

	if p.IsHuman() {
		m.effects.SubmitResponse(m.roomID, m.attempts[r.PlayerID], r)
	}

	payload := gin.H{
		"player_id":  r.PlayerID,
		"ordinal":    r.Ordinal,
		"timed_out":  r.TimedOut,
		"eliminated": out.Eliminated,
		"answered":   len(m.state.Answered),
	}
	if m.mode.ShowRealTimeScores {
		payload["score"] = out.Progress.Score
		payload["consecutive_correct"] = out.Progress.Speed.ConsecutiveCorrect
	}
	m.broadcaster.Broadcast(m.roomID, EventAnswerRecorded, payload)
}

// resolve closes the current question. On timeout every human who did not
// answer gets an implicit incorrect response.
func (m *Machine) resolve(ctx context.Context, timedOut bool) {
	q := m.current()
	if timedOut {
		for _, out := range m.ctrl.ForceTimeout(m.state, m.log, q, m.players, m.clock.Now()) {
			m.accepted(out)
		}
	}
	m.cancelTimers()
	m.transition(quiz_models.PhaseBetweenQuestions)

	payload := gin.H{
		"ordinal":           m.state.CurrentOrdinal,
		"question_id":       q.ID,
		"correct_option_id": q.CorrectOptionID,
		"timed_out":         timedOut,
		"responses":         m.log.ForOrdinal(m.state.CurrentOrdinal),
	}
	if m.mode.AllowExplanations && q.Explanation != "" {
		payload["explanation"] = q.Explanation
	}
	if m.mode.ShowRealTimeScores {
		payload["leaderboard"] = m.Leaderboard()
	}
	m.broadcaster.Broadcast(m.roomID, EventQuestionResolved, payload)

	if m.mode.AutoAdvanceDelay <= 0 {
		m.advance(ctx, true)
		return
	}
	m.schedule(m.mode.AutoAdvanceDelay, TimerEvent{Kind: TimerAdvance})
}

func (m *Machine) activeHumans() int {
	n := 0
	for _, p := range roster.Classify(m.players).Humans {
		if prog, ok := m.state.Players[p.ID]; ok && prog.Eliminated {
			continue
		}
		n++
	}
	return n
}

// advance moves past a resolved question, guarded by a compare-and-set on the
// shared room progress so that only one writer applies each step.
func (m *Machine) advance(ctx context.Context, retry bool) {
	if m.state.Phase != quiz_models.PhaseBetweenQuestions {
		return
	}
	next := Progress{Phase: quiz_models.PhaseQuestion, Ordinal: m.state.CurrentOrdinal + 1}
	if m.state.IsLastQuestion() || (m.mode.Elimination && m.activeHumans() == 0) {
		next = Progress{Phase: quiz_models.PhaseCompleted, Ordinal: m.state.CurrentOrdinal}
	}

	if m.rooms != nil {
		cctx, cancel := m.callCtx(ctx)
		stored, err := m.rooms.AdvanceProgress(cctx, m.roomID, m.sharedVersion, next)
		cancel()

		var race *quiz_models.AdvanceRaceError
		switch {
		case errors.As(err, &race):
			metrics.AdvanceRacesLost.Inc()
			m.logger.Info("[ADVANCE-RACE] another writer advanced the room",
				"expected_version", race.ExpectedVersion, "actual_version", race.ActualVersion,
				"stored_phase", stored.Phase, "stored_ordinal", stored.Ordinal)
			m.adopt(ctx, stored, retry)
			return
		case err != nil:
			metrics.PersistenceFailures.WithLabelValues("advance_progress").Inc()
			m.logger.Warn("[ADVANCE-ERROR] advancing locally",
				"err", &quiz_models.PersistenceError{Op: "advance_progress", Err: err})
			m.sharedVersion++
		default:
			m.sharedVersion = stored.Version
		}
	}

	if next.Phase == quiz_models.PhaseCompleted {
		m.complete()
		return
	}
	metrics.QuestionsAdvanced.Inc()
	m.enterQuestion(ctx, next.Ordinal)
}

// adopt follows progress written by another writer instead of repeating it
func (m *Machine) adopt(ctx context.Context, stored Progress, retry bool) {
	m.sharedVersion = stored.Version
	switch {
	case stored.Phase == quiz_models.PhaseCompleted:
		m.complete()
	case stored.Ordinal > m.state.CurrentOrdinal && stored.Ordinal < m.state.TotalQuestions:
		m.enterQuestion(ctx, stored.Ordinal)
	case retry:
		m.advance(ctx, false)
	default:
		m.logger.Warn("[ADVANCE-RACE] shared progress is behind, advancing locally",
			"stored_ordinal", stored.Ordinal, "ordinal", m.state.CurrentOrdinal)
		if m.state.IsLastQuestion() {
			m.complete()
			return
		}
		m.enterQuestion(ctx, m.state.CurrentOrdinal+1)
	}
}

func (m *Machine) complete() {
	if m.state.Phase == quiz_models.PhaseCompleted {
		return
	}
	m.cancelTimers()
	m.transition(quiz_models.PhaseCompleted)
	now := m.clock.Now()
	board := m.Leaderboard()

	for _, p := range roster.Classify(m.players).Humans {
		attemptID, ok := m.attempts[p.ID]
		if !ok {
			continue
		}
		prog := m.state.ProgressFor(p.ID)
		m.effects.CompleteAttempt(attemptID, AttemptSummary{
			RoomID:           m.roomID,
			PlayerID:         p.ID,
			ModeID:           m.mode.ID,
			FinalScore:       prog.Score,
			CorrectCount:     prog.CorrectCount,
			TotalQuestions:   m.state.TotalQuestions,
			TimeSpentSeconds: int((prog.TimeSpentMs + 500) / 1000),
			CompletedAt:      now,
		})
	}
	m.effects.SendSystemMessage(m.roomID, completionMessage(board))
	m.broadcaster.Broadcast(m.roomID, EventGameCompleted, gin.H{
		"leaderboard":     board,
		"total_questions": m.state.TotalQuestions,
		"completed_at":    now,
	})
	m.notifyNPCs(RoomEventGameCompleted, "")
	metrics.GamesCompleted.Inc()

	if !m.completeFired {
		m.completeFired = true
		if m.onComplete != nil {
			m.onComplete(CompletionReport{RoomID: m.roomID, ModeID: m.mode.ID, Leaderboard: board, CompletedAt: now})
		}
	}
}

func completionMessage(board []leaderboard.Entry) string {
	if len(board) == 0 {
		return "Game over!"
	}
	var winners []string
	for _, e := range board {
		if e.Rank != 1 {
			break
		}
		winners = append(winners, e.Name)
	}
	if len(winners) == 1 {
		return fmt.Sprintf("Game over! %s wins with %d points.", winners[0], board[0].Score)
	}
	return fmt.Sprintf("Game over! It's a tie between %s with %d points.", strings.Join(winners, " and "), board[0].Score)
}

// RequestHint returns a hint for the current question, once per player and
// question. Hints do not affect scoring.
func (m *Machine) RequestHint(playerID string) (string, error) {
	if m.closed {
		return "", quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseQuestion {
		return "", quiz_models.ErrWrongPhase
	}
	if !m.mode.AllowHints {
		return "", quiz_models.ErrHintsDisabled
	}
	if _, ok := roster.Find(m.players, playerID); !ok {
		return "", quiz_models.ErrUnknownPlayer
	}
	if prog, ok := m.state.Players[playerID]; ok && prog.Eliminated {
		return "", quiz_models.ErrPlayerEliminated
	}
	if m.hintsUsed[playerID] {
		return "", quiz_models.ErrHintAlreadyUsed
	}
	m.hintsUsed[playerID] = true

	q := m.current()
	if q.Hint != "" {
		return q.Hint, nil
	}
	// no authored hint: rule out the last wrong option
	for i := len(q.Options) - 1; i >= 0; i-- {
		if q.Options[i].ID != q.CorrectOptionID {
			return fmt.Sprintf("It is not %q.", q.Options[i].Text), nil
		}
	}
	return "", nil
}

// ChangeMode swaps the game mode while the room is still waiting
func (m *Machine) ChangeMode(requesterID, modeID string) error {
	if m.closed {
		return quiz_models.ErrSessionClosed
	}
	if m.state.Phase != quiz_models.PhaseWaiting {
		return quiz_models.ErrWrongPhase
	}
	if err := roster.RequireSettings(m.players, requesterID); err != nil {
		return err
	}
	cfg, err := modes.ConfigFor(modeID)
	if err != nil {
		return err
	}
	m.resetForMode(cfg)
	m.logger.Info("[MODE-CHANGE]", "mode_id", cfg.ID, "player_id", requesterID)
	m.broadcaster.Broadcast(m.roomID, EventModeChanged, gin.H{"mode": modes.Describe(cfg), "total_questions": m.state.TotalQuestions})
	return nil
}

// UpdateRoster replaces the player list after a join, leave or ready change.
// A departure can complete the current question early.
func (m *Machine) UpdateRoster(ctx context.Context, players []quiz_models.Player) {
	if m.closed {
		return
	}
	m.players = append([]quiz_models.Player(nil), players...)
	for _, p := range m.players {
		m.state.ProgressFor(p.ID)
		if p.IsHuman() && m.state.Phase != quiz_models.PhaseWaiting {
			if _, ok := m.attempts[p.ID]; !ok {
				m.attempts[p.ID] = m.newID()
			}
		}
	}
	m.broadcaster.Broadcast(m.roomID, EventRosterUpdated, gin.H{"players": m.Snapshot().Players})

	if m.state.Phase == quiz_models.PhaseQuestion && len(roster.Classify(m.players).Humans) > 0 &&
		answers.AllHumansAnswered(m.state, m.players) {
		m.resolve(ctx, false)
	}
}

// Close cancels every outstanding timer. Later commands fail with
// ErrSessionClosed and late timer events are dropped.
func (m *Machine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancelTimers()
	m.logger.Info("[SESSION-CLOSED]", "phase", m.state.Phase, "ordinal", m.state.CurrentOrdinal)
}

type noopEffects struct{}

func (noopEffects) SubmitResponse(string, string, quiz_models.Response) {}
func (noopEffects) CompleteAttempt(string, AttemptSummary)              {}
func (noopEffects) NotifyRoomEvent(RoomEvent)                           {}
func (noopEffects) SendSystemMessage(string, string)                    {}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, string, any) {}
