package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/answers"
	"CivicQuiz/services/quiz/leaderboard"
	"context"
	"sync"
	"time"
)

const (
	inboxSize  = 64
	eventsSize = 64
)

// Session runs one Machine on its own goroutine. Commands and timer events
// go through the inbox, so the machine is never touched concurrently.
type Session struct {
	m       *Machine
	inbox   chan func()
	events  chan TimerEvent
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
}

// timerScheduler turns scheduled events into inbox messages
type timerScheduler struct {
	s *Session
}

func (ts timerScheduler) Schedule(d time.Duration, ev TimerEvent) func() {
	t := time.AfterFunc(d, func() { ts.s.post(ev) })
	return func() { t.Stop() }
}

// NewSession starts the actor. deps.Scheduler is replaced by a wall-clock
// scheduler feeding the session inbox.
func NewSession(roomID string, mode quiz_models.GameModeConfig, questions []quiz_models.Question,
	players []quiz_models.Player, deps Deps) (*Session, error) {

	s := &Session{
		inbox:   make(chan func(), inboxSize),
		events:  make(chan TimerEvent, eventsSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	deps.Scheduler = timerScheduler{s: s}
	m, err := NewMachine(roomID, mode, questions, players, deps)
	if err != nil {
		return nil, err
	}
	s.m = m
	go s.run()
	return s, nil
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.inbox:
			cmd()
		case ev := <-s.events:
			s.m.HandleTimer(context.Background(), ev)
		}
	}
}

// post delivers a timer event, dropping it once the session is closed
func (s *Session) post(ev TimerEvent) {
	select {
	case <-s.done:
	case s.events <- ev:
	}
}

// do runs fn on the session goroutine and waits for it
func (s *Session) do(ctx context.Context, fn func()) error {
	reply := make(chan struct{})
	cmd := func() {
		fn()
		close(reply)
	}
	select {
	case <-s.done:
		return quiz_models.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	case s.inbox <- cmd:
	}
	select {
	case <-reply:
		return nil
	case <-s.stopped:
		return quiz_models.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) RoomID() string {
	return s.m.RoomID()
}

// Done is closed once the session stopped
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}

func (s *Session) StartGame(ctx context.Context, requesterID string) error {
	var err error
	if doErr := s.do(ctx, func() { err = s.m.StartGame(ctx, requesterID) }); doErr != nil {
		return doErr
	}
	return err
}

func (s *Session) SelectAnswer(ctx context.Context, playerID, optionID string) error {
	var err error
	if doErr := s.do(ctx, func() { err = s.m.SelectAnswer(playerID, optionID) }); doErr != nil {
		return doErr
	}
	return err
}

func (s *Session) SubmitAnswer(ctx context.Context, playerID, optionID string) (answers.Outcome, error) {
	var (
		out answers.Outcome
		err error
	)
	if doErr := s.do(ctx, func() { out, err = s.m.SubmitAnswer(ctx, playerID, optionID) }); doErr != nil {
		return answers.Outcome{}, doErr
	}
	return out, err
}

func (s *Session) RequestHint(ctx context.Context, playerID string) (string, error) {
	var (
		hint string
		err  error
	)
	if doErr := s.do(ctx, func() { hint, err = s.m.RequestHint(playerID) }); doErr != nil {
		return "", doErr
	}
	return hint, err
}

func (s *Session) HandleTimeUp(ctx context.Context, ordinal int) error {
	var err error
	if doErr := s.do(ctx, func() { err = s.m.HandleTimeUp(ctx, ordinal) }); doErr != nil {
		return doErr
	}
	return err
}

func (s *Session) ChangeMode(ctx context.Context, requesterID, modeID string) error {
	var err error
	if doErr := s.do(ctx, func() { err = s.m.ChangeMode(requesterID, modeID) }); doErr != nil {
		return doErr
	}
	return err
}

func (s *Session) UpdateRoster(ctx context.Context, players []quiz_models.Player) error {
	return s.do(ctx, func() { s.m.UpdateRoster(ctx, players) })
}

func (s *Session) Snapshot(ctx context.Context) (View, error) {
	var v View
	err := s.do(ctx, func() { v = s.m.Snapshot() })
	return v, err
}

func (s *Session) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	var board []leaderboard.Entry
	err := s.do(ctx, func() { board = s.m.Leaderboard() })
	return board, err
}

func (s *Session) Players(ctx context.Context) ([]quiz_models.Player, error) {
	var players []quiz_models.Player
	err := s.do(ctx, func() { players = s.m.Players() })
	return players, err
}

// Close cancels every timer and stops the goroutine. It is safe to call
// more than once but must not be called from the completion callback.
func (s *Session) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		err = s.do(ctx, s.m.Close)
		close(s.done)
		<-s.stopped
	})
	return err
}
