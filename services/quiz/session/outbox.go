package session

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/metrics"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// ErrOutboxFull is recorded when a call is dropped because every worker is
// busy and the queue is full
var ErrOutboxFull = errors.New("outbox queue full")

const (
	OpSubmitResponse  = "submit_response"
	OpCompleteAttempt = "complete_attempt"
	OpNotifyRoomEvent = "notify_room_event"
	OpSystemMessage   = "send_system_message"
)

const defaultQueueSize = 1024

type OutboxConfig struct {
	Responses ResponseSubmitter
	Attempts  AttemptCompleter
	Notifier  RoomNotifier
	Messenger SystemMessenger
	Workers   int
	// QueueSize bounds the calls waiting for a worker. Calls beyond it are dropped.
	QueueSize int
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Outbox runs the external calls of every session on a bounded worker pool.
// Callers only enqueue: a full queue drops the call, so a slow backend never
// stalls a session goroutine. Failures are logged and counted as
// PersistenceError.
type Outbox struct {
	cfg   OutboxConfig
	pool  *pool.Pool
	queue chan func()
	fed   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewOutbox(cfg OutboxConfig) *Outbox {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	o := &Outbox{
		cfg:   cfg,
		pool:  pool.New().WithMaxGoroutines(cfg.Workers),
		queue: make(chan func(), cfg.QueueSize),
		fed:   make(chan struct{}),
	}
	go o.feed()
	return o
}

// feed hands queued calls to the pool. pool.Go blocks while every worker is
// busy, which only ever holds up this goroutine.
func (o *Outbox) feed() {
	defer close(o.fed)
	for task := range o.queue {
		o.pool.Go(task)
	}
}

func (o *Outbox) dispatch(op string, attrs []any, call func(ctx context.Context) error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.cfg.Logger.Warn("[OUTBOX] dropped after close", append([]any{"op", op}, attrs...)...)
		return
	}
	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.cfg.Timeout)
		defer cancel()
		if err := call(ctx); err != nil {
			o.fail(op, err, attrs)
		}
	}
	select {
	case o.queue <- task:
	default:
		o.fail(op, ErrOutboxFull, attrs)
	}
}

func (o *Outbox) fail(op string, err error, attrs []any) {
	perr := &quiz_models.PersistenceError{Op: op, Err: err}
	metrics.PersistenceFailures.WithLabelValues(op).Inc()
	o.cfg.Logger.Warn("[OUTBOX-ERROR]", append([]any{"op", op, "err", perr}, attrs...)...)
}

func (o *Outbox) SubmitResponse(roomID, attemptID string, r quiz_models.Response) {
	if o.cfg.Responses == nil {
		return
	}
	o.dispatch(OpSubmitResponse, []any{"room_id", roomID, "player_id", r.PlayerID, "ordinal", r.Ordinal},
		func(ctx context.Context) error {
			return o.cfg.Responses.SubmitResponse(ctx, roomID, attemptID, r)
		})
}

func (o *Outbox) CompleteAttempt(attemptID string, summary AttemptSummary) {
	if o.cfg.Attempts == nil {
		return
	}
	o.dispatch(OpCompleteAttempt, []any{"room_id", summary.RoomID, "player_id", summary.PlayerID},
		func(ctx context.Context) error {
			return o.cfg.Attempts.CompleteAttempt(ctx, attemptID, summary)
		})
}

// NotifyRoomEvent is best effort
func (o *Outbox) NotifyRoomEvent(ev RoomEvent) {
	if o.cfg.Notifier == nil {
		return
	}
	o.dispatch(OpNotifyRoomEvent, []any{"room_id", ev.RoomID, "npc_id", ev.NPCID, "kind", ev.Kind},
		func(ctx context.Context) error {
			return o.cfg.Notifier.NotifyRoomEvent(ctx, ev)
		})
}

func (o *Outbox) SendSystemMessage(roomID, text string) {
	if o.cfg.Messenger == nil {
		return
	}
	o.dispatch(OpSystemMessage, []any{"room_id", roomID},
		func(ctx context.Context) error {
			return o.cfg.Messenger.SendSystemMessage(ctx, roomID, text)
		})
}

// Close stops accepting work and waits for in-flight calls
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.queue)
	o.mu.Unlock()
	<-o.fed
	o.pool.Wait()
}
