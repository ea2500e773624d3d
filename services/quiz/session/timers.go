package session

import (
	"fmt"
	"time"
)

type TimerKind int

const (
	TimerCountdown TimerKind = iota
	TimerQuestion
	TimerNPCAnswer
	TimerAdvance
)

func (k TimerKind) String() string {
	switch k {
	case TimerCountdown:
		return "countdown"
	case TimerQuestion:
		return "question"
	case TimerNPCAnswer:
		return "npc_answer"
	case TimerAdvance:
		return "advance"
	}
	return fmt.Sprintf("timer(%d)", int(k))
}

// TimerEvent is a scheduled transition. Ordinal and Version are captured when
// it is scheduled, an event whose version no longer matches is stale.
type TimerEvent struct {
	Kind     TimerKind
	Ordinal  int
	Version  int64
	PlayerID string
	OptionID string
	Elapsed  time.Duration
}

type Clock interface {
	Now() time.Time
}

// Scheduler delivers ev back to the machine after d. The returned func
// cancels delivery and is safe to call more than once.
type Scheduler interface {
	Schedule(d time.Duration, ev TimerEvent) (cancel func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}
