package roster

import quiz_models "CivicQuiz/models/quiz"

const (
	ActionStartGame      = "start the game"
	ActionChangeSettings = "change room settings"
)

// CanStart requires the requester to be host and every human to be ready
func CanStart(players []quiz_models.Player, requesterID string) bool {
	return IsHost(players, requesterID) && AllReady(players)
}

func CanChangeSettings(players []quiz_models.Player, requesterID string) bool {
	return IsHost(players, requesterID)
}

// RequireStart returns a HostPermissionError when CanStart does not hold
func RequireStart(players []quiz_models.Player, requesterID string) error {
	if !CanStart(players, requesterID) {
		return &quiz_models.HostPermissionError{PlayerID: requesterID, Action: ActionStartGame}
	}
	return nil
}

func RequireSettings(players []quiz_models.Player, requesterID string) error {
	if !CanChangeSettings(players, requesterID) {
		return &quiz_models.HostPermissionError{PlayerID: requesterID, Action: ActionChangeSettings}
	}
	return nil
}
