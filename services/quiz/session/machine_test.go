package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/modes"
	"CivicQuiz/services/quiz/npc"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fakeTimer struct {
	at        time.Time
	seq       int
	ev        TimerEvent
	cancelled bool
	fired     bool
}

type fakeScheduler struct {
	clock  *fakeClock
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(d time.Duration, ev TimerEvent) func() {
	t := &fakeTimer{at: s.clock.Now().Add(d), seq: len(s.timers), ev: ev}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) active() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.cancelled && !t.fired {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].at.Equal(out[j].at) {
			return out[i].seq < out[j].seq
		}
		return out[i].at.Before(out[j].at)
	})
	return out
}

func (s *fakeScheduler) pendingOf(kind TimerKind) []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.active() {
		if t.ev.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

type fakeRooms struct {
	mu          sync.Mutex
	progress    Progress
	refuseStart bool
	startErr    error
	advanceErr  error
	starts      int
	advances    int
	closed      []string
}

func (r *fakeRooms) StartGameWithCountdown(_ context.Context, _ string, _ int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	if r.startErr != nil {
		return false, r.startErr
	}
	if r.refuseStart {
		return false, nil
	}
	r.progress = Progress{Phase: quiz_models.PhaseCountdown}
	return true, nil
}

func (r *fakeRooms) AdvanceProgress(_ context.Context, roomID string, expected int64, next Progress) (Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advances++
	if r.advanceErr != nil {
		return Progress{}, r.advanceErr
	}
	if r.progress.Version != expected {
		return r.progress, &quiz_models.AdvanceRaceError{RoomID: roomID, ExpectedVersion: expected, ActualVersion: r.progress.Version}
	}
	next.Version = expected + 1
	r.progress = next
	return next, nil
}

func (r *fakeRooms) CloseRoom(_ context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, roomID)
	return nil
}

type recordedSummary struct {
	attemptID string
	summary   AttemptSummary
}

type fakeEffects struct {
	mu        sync.Mutex
	responses []quiz_models.Response
	attempts  []string
	completed []recordedSummary
	events    []RoomEvent
	messages  []string
}

func (e *fakeEffects) SubmitResponse(_ string, attemptID string, r quiz_models.Response) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = append(e.responses, r)
	e.attempts = append(e.attempts, attemptID)
}

func (e *fakeEffects) CompleteAttempt(attemptID string, s AttemptSummary) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completed = append(e.completed, recordedSummary{attemptID, s})
}

func (e *fakeEffects) NotifyRoomEvent(ev RoomEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *fakeEffects) SendSystemMessage(_ string, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, text)
}

func (e *fakeEffects) eventKinds() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, ev := range e.events {
		out = append(out, ev.Kind)
	}
	return out
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) Broadcast(_ string, event string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) count(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e == event {
			n++
		}
	}
	return n
}

// stubRand plans a 1000ms+n delay and answers correctly while f is below the accuracy
type stubRand struct {
	f float64
	n int
}

func (r stubRand) Float64() float64 { return r.f }
func (r stubRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// ---- harness ----

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	t           *testing.T
	m           *Machine
	clock       *fakeClock
	sched       *fakeScheduler
	rooms       *fakeRooms
	effects     *fakeEffects
	bc          *fakeBroadcaster
	completions int
}

func testQuestions(n int) []quiz_models.Question {
	qs := make([]quiz_models.Question, n)
	for i := range qs {
		qs[i] = quiz_models.Question{
			ID:      fmt.Sprintf("q-%d", i),
			Ordinal: i,
			Prompt:  fmt.Sprintf("Question %d", i),
			Options: []quiz_models.Option{
				{ID: "a", Text: "Right"},
				{ID: "b", Text: "Wrong"},
				{ID: "c", Text: "Also wrong"},
			},
			CorrectOptionID: "a",
			Difficulty:      quiz_models.DifficultyMedium,
			Explanation:     "Because.",
		}
	}
	return qs
}

func human(id string, host bool) quiz_models.Player {
	return quiz_models.Player{ID: id, Name: id, IsHost: host, IsReady: true, Role: quiz_models.RoleHuman}
}

func bot(id string) quiz_models.Player {
	return quiz_models.Player{ID: id, Name: id, IsReady: true, Role: quiz_models.RoleNPC}
}

func newHarness(t *testing.T, modeID string, questions int, players []quiz_models.Player, rng npc.Rand) *harness {
	t.Helper()
	mode, err := modes.ConfigFor(modeID)
	require.NoError(t, err)
	return newHarnessWithMode(t, mode, questions, players, rng)
}

func newHarnessWithMode(t *testing.T, mode quiz_models.GameModeConfig, questions int, players []quiz_models.Player, rng npc.Rand) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		clock:   &fakeClock{now: t0},
		rooms:   &fakeRooms{},
		effects: &fakeEffects{},
		bc:      &fakeBroadcaster{},
	}
	h.sched = &fakeScheduler{clock: h.clock}
	if rng == nil {
		rng = stubRand{f: 0.99, n: 1000}
	}
	seq := 0
	m, err := NewMachine("room-1", mode, testQuestions(questions), players, Deps{
		Rooms:       h.rooms,
		Effects:     h.effects,
		Broadcaster: h.bc,
		Scheduler:   h.sched,
		Clock:       h.clock,
		NPC:         npc.NewSimulator(npc.DefaultConfig(), rng),
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnComplete: func(CompletionReport) { h.completions++ },
	})
	require.NoError(t, err)
	h.m = m
	return h
}

// advance moves the fake clock forward, firing due timers in order
func (h *harness) advance(d time.Duration) {
	target := h.clock.Now().Add(d)
	for {
		due := h.sched.active()
		if len(due) == 0 || due[0].at.After(target) {
			break
		}
		next := due[0]
		h.clock.set(next.at)
		next.fired = true
		h.m.HandleTimer(context.Background(), next.ev)
	}
	h.clock.set(target)
}

func (h *harness) submit(playerID, optionID string) (int, error) {
	out, err := h.m.SubmitAnswer(context.Background(), playerID, optionID)
	return out.Response.Points, err
}

func (h *harness) progress(playerID string) quiz_models.PlayerProgress {
	return *h.m.state.Players[playerID]
}

// ---- tests ----

func TestClassicSingleHumanWithNPC(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), bot("bot")}, stubRand{f: 0.1, n: 1000})
	ctx := context.Background()

	require.NoError(t, h.m.StartGame(ctx, "ana"))
	assert.Equal(t, quiz_models.PhaseCountdown, h.m.Phase())
	assert.Equal(t, 1, h.rooms.starts)
	assert.Contains(t, h.effects.eventKinds(), RoomEventGameStarted)

	h.advance(4999 * time.Millisecond)
	assert.Equal(t, quiz_models.PhaseCountdown, h.m.Phase())
	h.advance(time.Millisecond)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Equal(t, 0, h.m.Snapshot().CurrentOrdinal)
	require.Len(t, h.sched.pendingOf(TimerNPCAnswer), 1)

	h.advance(2 * time.Second)
	assert.True(t, h.m.state.HasAnswered("bot"), "npc answers after 2s")
	assert.Equal(t, 150, h.progress("bot").Score)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase(), "npcs do not end the question")

	points, err := h.submit("ana", "a")
	require.NoError(t, err)
	assert.Equal(t, 150, points)
	assert.Equal(t, 1, h.progress("ana").Speed.ConsecutiveCorrect)
	assert.Equal(t, quiz_models.PhaseBetweenQuestions, h.m.Phase())

	require.Len(t, h.effects.responses, 1, "only human responses are persisted")
	attemptID, ok := h.m.AttemptID("ana")
	require.True(t, ok)
	assert.Equal(t, attemptID, h.effects.attempts[0])

	h.advance(3 * time.Second)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Equal(t, 1, h.m.state.CurrentOrdinal)
	assert.Equal(t, int64(1), h.rooms.progress.Version)
	assert.Equal(t, 1, h.rooms.progress.Ordinal)
}

func TestTimeoutForcesIncorrectResponse(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)

	h.advance(time.Second)
	_, err := h.submit("ana", "a")
	require.NoError(t, err)
	require.Equal(t, 1, h.progress("ana").Speed.ConsecutiveCorrect)
	h.advance(3 * time.Second)
	require.Equal(t, 1, h.m.state.CurrentOrdinal)

	h.advance(44 * time.Second)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	h.advance(time.Second)
	assert.Equal(t, quiz_models.PhaseBetweenQuestions, h.m.Phase())

	resp, ok := h.m.log.Get("ana", 1)
	require.True(t, ok)
	assert.True(t, resp.TimedOut)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, int64(45000), resp.ResponseTimeMs)
	assert.Equal(t, 0, h.progress("ana").Speed.ConsecutiveCorrect)
	assert.Len(t, h.effects.responses, 2)

	h.advance(2999 * time.Millisecond)
	assert.Equal(t, quiz_models.PhaseBetweenQuestions, h.m.Phase())
	h.advance(time.Millisecond)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Equal(t, 2, h.m.state.CurrentOrdinal)
}

func TestSpeedRoundUsesFixedThresholds(t *testing.T) {
	h := newHarness(t, modes.SpeedRound, 15, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(3 * time.Second)

	h.advance(2 * time.Second)
	points, err := h.submit("ana", "a")
	require.NoError(t, err)
	assert.Equal(t, 150, points, "lightning tier even with a 15s limit")

	h.advance(2 * time.Second)
	require.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	h.advance(12 * time.Second)
	points, err = h.submit("ana", "a")
	require.NoError(t, err)
	assert.Equal(t, 120, points, "quick tier plus a two answer combo")
	assert.InDelta(t, 1.9, h.progress("ana").Speed.ComboMultiplier, 1e-9)
}

func TestAdvanceIsIdempotent(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
	ctx := context.Background()
	require.NoError(t, h.m.StartGame(ctx, "ana"))
	h.advance(5 * time.Second)
	_, err := h.submit("ana", "a")
	require.NoError(t, err)

	advances := h.sched.pendingOf(TimerAdvance)
	require.Len(t, advances, 1)
	ev := advances[0].ev

	h.m.HandleTimer(ctx, ev)
	h.m.HandleTimer(ctx, ev)
	assert.Equal(t, 1, h.m.state.CurrentOrdinal)
	assert.Equal(t, 1, h.rooms.advances)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Empty(t, h.sched.pendingOf(TimerAdvance), "the delay is not scheduled twice")

	// a late time-up for the resolved question is ignored too
	require.NoError(t, h.m.HandleTimeUp(ctx, 0))
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.False(t, h.m.state.HasAnswered("ana"))
}

func TestHandleTimeUpResolvesOnce(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), human("ben", false)}, nil)
	ctx := context.Background()
	require.NoError(t, h.m.StartGame(ctx, "ana"))
	h.advance(5 * time.Second)

	require.NoError(t, h.m.HandleTimeUp(ctx, 0))
	require.NoError(t, h.m.HandleTimeUp(ctx, 0))
	assert.Equal(t, quiz_models.PhaseBetweenQuestions, h.m.Phase())
	assert.Len(t, h.m.log.ForOrdinal(0), 2)
	assert.Equal(t, 1, h.bc.count(EventQuestionResolved))
}

func TestAdvanceRaceLoserAdoptsWinner(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)
	_, err := h.submit("ana", "a")
	require.NoError(t, err)

	// another process already moved the room to the second question
	h.rooms.progress = Progress{Phase: quiz_models.PhaseQuestion, Ordinal: 1, Version: 1}

	h.advance(3 * time.Second)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Equal(t, 1, h.m.state.CurrentOrdinal)
	assert.Equal(t, Progress{Phase: quiz_models.PhaseQuestion, Ordinal: 1, Version: 1}, h.rooms.progress,
		"the loser does not write")

	_, err = h.submit("ana", "a")
	require.NoError(t, err)
	h.advance(3 * time.Second)
	assert.Equal(t, 2, h.m.state.CurrentOrdinal)
	assert.Equal(t, int64(2), h.rooms.progress.Version)
}

func TestAdvanceRaceToCompleted(t *testing.T) {
	h := newHarness(t, modes.Classic, 3, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)
	_, err := h.submit("ana", "a")
	require.NoError(t, err)

	h.rooms.progress = Progress{Phase: quiz_models.PhaseCompleted, Ordinal: 2, Version: 3}
	h.advance(3 * time.Second)
	assert.Equal(t, quiz_models.PhaseCompleted, h.m.Phase())
	assert.Equal(t, 1, h.completions)
}

func TestAdvanceContinuesWhenRoomServiceFails(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
	h.rooms.startErr = errors.New("redis: connection refused")
	h.rooms.advanceErr = errors.New("redis: connection refused")

	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)
	_, err := h.submit("ana", "a")
	require.NoError(t, err)
	h.advance(3 * time.Second)

	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.Equal(t, 1, h.m.state.CurrentOrdinal)
}

func TestCompletionHappensOnce(t *testing.T) {
	h := newHarness(t, modes.Classic, 2, []quiz_models.Player{human("ana", true), bot("bot")}, stubRand{f: 0.99, n: 0})
	ctx := context.Background()
	require.NoError(t, h.m.StartGame(ctx, "ana"))
	assert.Equal(t, 2, h.m.state.TotalQuestions)
	h.advance(5 * time.Second)

	for ordinal := 0; ordinal < 2; ordinal++ {
		h.advance(time.Second)
		_, err := h.submit("ana", "a")
		require.NoError(t, err)
		lastAdvance := h.sched.pendingOf(TimerAdvance)
		h.advance(3 * time.Second)
		if ordinal == 1 {
			require.Len(t, lastAdvance, 1)
			h.m.HandleTimer(ctx, lastAdvance[0].ev)
		}
	}

	assert.Equal(t, quiz_models.PhaseCompleted, h.m.Phase())
	assert.Equal(t, 1, h.m.state.CurrentOrdinal, "ordinal never passes the last question")
	assert.Equal(t, 1, h.completions)
	assert.Equal(t, 1, h.bc.count(EventGameCompleted))

	require.Len(t, h.effects.completed, 1, "npcs have no attempt")
	sum := h.effects.completed[0].summary
	assert.Equal(t, "ana", sum.PlayerID)
	assert.Equal(t, 310, sum.FinalScore)
	assert.Equal(t, 2, sum.CorrectCount)
	assert.Equal(t, 2, sum.TimeSpentSeconds)
	require.Len(t, h.effects.messages, 1)
	assert.Equal(t, "Game over! ana wins with 310 points.", h.effects.messages[0])

	board := h.m.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, h.progress("ana").Score, board[0].Score, "leaderboard agrees with live scores")
	assert.Equal(t, h.progress("bot").Score, board[1].Score)

	h.advance(time.Hour)
	assert.Equal(t, 1, h.completions)
	assert.Empty(t, h.sched.active())
}

func TestCloseCancelsTimers(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), bot("bot")}, nil)
	ctx := context.Background()
	require.NoError(t, h.m.StartGame(ctx, "ana"))
	h.advance(5 * time.Second)
	pending := h.sched.active()
	require.NotEmpty(t, pending)

	h.m.Close()
	h.m.Close()
	assert.Empty(t, h.sched.active())

	for _, timer := range pending {
		h.m.HandleTimer(ctx, timer.ev)
	}
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())
	assert.False(t, h.m.state.HasAnswered("bot"))

	_, err := h.submit("ana", "a")
	assert.ErrorIs(t, err, quiz_models.ErrSessionClosed)
	assert.ErrorIs(t, h.m.HandleTimeUp(ctx, 0), quiz_models.ErrSessionClosed)
}

func TestHostPermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("only the host starts", func(t *testing.T) {
		h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), human("ben", false)}, nil)
		err := h.m.StartGame(ctx, "ben")
		var permErr *quiz_models.HostPermissionError
		require.True(t, errors.As(err, &permErr))
		assert.Equal(t, "ben", permErr.PlayerID)
		assert.Equal(t, quiz_models.PhaseWaiting, h.m.Phase())
		assert.Equal(t, 0, h.rooms.starts)
		assert.Empty(t, h.sched.active())
	})

	t.Run("every human must be ready", func(t *testing.T) {
		ben := human("ben", false)
		ben.IsReady = false
		h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), ben}, nil)
		var permErr *quiz_models.HostPermissionError
		assert.True(t, errors.As(h.m.StartGame(ctx, "ana"), &permErr))
		assert.Equal(t, quiz_models.PhaseWaiting, h.m.Phase())
	})

	t.Run("room service refusal", func(t *testing.T) {
		h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
		h.rooms.refuseStart = true
		assert.ErrorIs(t, h.m.StartGame(ctx, "ana"), quiz_models.ErrWrongPhase)
		assert.Equal(t, quiz_models.PhaseWaiting, h.m.Phase())
	})

	t.Run("start twice", func(t *testing.T) {
		h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
		require.NoError(t, h.m.StartGame(ctx, "ana"))
		assert.ErrorIs(t, h.m.StartGame(ctx, "ana"), quiz_models.ErrWrongPhase)
	})

	t.Run("change mode", func(t *testing.T) {
		h := newHarness(t, modes.Classic, 20, []quiz_models.Player{human("ana", true), human("ben", false)}, nil)
		var permErr *quiz_models.HostPermissionError
		assert.True(t, errors.As(h.m.ChangeMode("ben", modes.SpeedRound), &permErr))

		var modeErr *quiz_models.UnknownModeError
		assert.True(t, errors.As(h.m.ChangeMode("ana", "battle_royale"), &modeErr))
		assert.Equal(t, modes.Classic, h.m.Mode().ID)

		require.NoError(t, h.m.ChangeMode("ana", modes.SpeedRound))
		assert.Equal(t, modes.SpeedRound, h.m.Mode().ID)
		assert.Equal(t, 15, h.m.state.TotalQuestions)
		assert.Equal(t, 1, h.bc.count(EventModeChanged))

		require.NoError(t, h.m.StartGame(ctx, "ana"))
		assert.ErrorIs(t, h.m.ChangeMode("ana", modes.Classic), quiz_models.ErrWrongPhase)
	})
}

func TestSelectThenSubmit(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), human("ben", false)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))

	assert.ErrorIs(t, h.m.SelectAnswer("ana", "a"), quiz_models.ErrWrongPhase)
	h.advance(5 * time.Second)

	_, err := h.submit("ana", "")
	assert.ErrorIs(t, err, quiz_models.ErrNoSelection)
	assert.ErrorIs(t, h.m.SelectAnswer("ana", "z"), quiz_models.ErrUnknownOption)

	require.NoError(t, h.m.SelectAnswer("ana", "b"))
	require.NoError(t, h.m.SelectAnswer("ana", "a"))
	h.advance(4 * time.Second)
	points, err := h.submit("ana", "")
	require.NoError(t, err)
	assert.Equal(t, 130, points)

	var dup *quiz_models.DuplicateAnswerError
	_, err = h.submit("ana", "b")
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, 130, h.progress("ana").Score)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase(), "ben still has to answer")
}

func TestRequestHint(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true)}, nil)
	h.m.questions[1].Hint = "Think about the Senate."
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)

	hint, err := h.m.RequestHint("ana")
	require.NoError(t, err)
	assert.Equal(t, `It is not "Also wrong".`, hint)
	_, err = h.m.RequestHint("ana")
	assert.ErrorIs(t, err, quiz_models.ErrHintAlreadyUsed)

	_, err = h.submit("ana", "a")
	require.NoError(t, err)
	h.advance(3 * time.Second)

	hint, err = h.m.RequestHint("ana")
	require.NoError(t, err)
	assert.Equal(t, "Think about the Senate.", hint)
	assert.Equal(t, 1, h.m.state.CurrentOrdinal)

	speed := newHarness(t, modes.SpeedRound, 15, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, speed.m.StartGame(context.Background(), "ana"))
	speed.advance(3 * time.Second)
	_, err = speed.m.RequestHint("ana")
	assert.ErrorIs(t, err, quiz_models.ErrHintsDisabled)
}

func TestDepartureCompletesQuestion(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), human("ben", false)}, nil)
	ctx := context.Background()
	require.NoError(t, h.m.StartGame(ctx, "ana"))
	h.advance(5 * time.Second)

	_, err := h.submit("ana", "a")
	require.NoError(t, err)
	assert.Equal(t, quiz_models.PhaseQuestion, h.m.Phase())

	h.m.UpdateRoster(ctx, []quiz_models.Player{human("ana", true)})
	assert.Equal(t, quiz_models.PhaseBetweenQuestions, h.m.Phase())
}

func TestEliminationEndsWhenNoHumansRemain(t *testing.T) {
	h := newHarness(t, modes.Elimination, 10, []quiz_models.Player{human("ana", true)}, nil)
	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)

	_, err := h.submit("ana", "a")
	require.NoError(t, err)
	h.advance(3 * time.Second)

	_, err = h.submit("ana", "b")
	require.NoError(t, err)
	assert.True(t, h.progress("ana").Eliminated)
	h.advance(3 * time.Second)

	assert.Equal(t, quiz_models.PhaseCompleted, h.m.Phase())
	assert.Equal(t, 1, h.completions)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, modes.Classic, 10, []quiz_models.Player{human("ana", true), bot("bot")}, nil)

	v := h.m.Snapshot()
	assert.Equal(t, quiz_models.PhaseWaiting, v.Phase)
	require.NotNil(t, v.Question)
	assert.Equal(t, "q-0", v.Question.ID, "waiting previews the first question")
	assert.Len(t, v.Players, 2)

	require.NoError(t, h.m.StartGame(context.Background(), "ana"))
	h.advance(5 * time.Second)
	h.advance(15 * time.Second)

	v = h.m.Snapshot()
	assert.Equal(t, quiz_models.PhaseQuestion, v.Phase)
	assert.Equal(t, int64(30000), v.TimeLeftMs)
	assert.Equal(t, quiz_models.PressureMedium, v.Pressure)
	assert.Equal(t, 0.0, v.ProgressPercent)
	assert.NotEmpty(t, v.Leaderboard)
}

func TestNewMachineRequiresQuestions(t *testing.T) {
	mode, err := modes.ConfigFor(modes.Classic)
	require.NoError(t, err)
	_, err = NewMachine("room-1", mode, nil, nil, Deps{Scheduler: &fakeScheduler{clock: &fakeClock{}}})
	assert.ErrorIs(t, err, quiz_models.ErrNoQuestions)
}
