package quiz_models

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPhase         = errors.New("action not allowed in the current phase")
	ErrUnknownPlayer      = errors.New("player is not part of this room")
	ErrUnknownOption      = errors.New("option does not belong to the current question")
	ErrNoSelection        = errors.New("no option selected")
	ErrSessionClosed      = errors.New("game session is closed")
	ErrHintsDisabled      = errors.New("hints are disabled in this game mode")
	ErrHintAlreadyUsed    = errors.New("hint already used for this question")
	ErrPlayerEliminated   = errors.New("player has been eliminated")
	ErrNoQuestions        = errors.New("no questions loaded")
	ErrUnresolvableAnswer = errors.New("correct answer does not match any option")
	ErrRoomFull           = errors.New("room is full")
)

// DuplicateAnswerError is returned when a player already has a Response for the ordinal
type DuplicateAnswerError struct {
	PlayerID string
	Ordinal  int
}

func (e *DuplicateAnswerError) Error() string {
	return fmt.Sprintf("player %s already answered question %d", e.PlayerID, e.Ordinal)
}

type UnknownModeError struct {
	ModeID string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown game mode %q", e.ModeID)
}

// PersistenceError wraps a failed call to an external collaborator.
// It is logged and never changes local game state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type HostPermissionError struct {
	PlayerID string
	Action   string
}

func (e *HostPermissionError) Error() string {
	return fmt.Sprintf("player %s is not allowed to %s", e.PlayerID, e.Action)
}

// AdvanceRaceError means another writer already advanced the room past the expected version
type AdvanceRaceError struct {
	RoomID          string
	ExpectedVersion int64
	ActualVersion   int64
}

func (e *AdvanceRaceError) Error() string {
	return fmt.Sprintf("room %s advance lost: expected version %d, found %d",
		e.RoomID, e.ExpectedVersion, e.ActualVersion)
}
