package roster

import quiz_models "CivicQuiz/models/quiz"

// Classification splits a roster by role
type Classification struct {
	Humans []quiz_models.Player
	NPCs   []quiz_models.Player
}

func Classify(players []quiz_models.Player) Classification {
	var c Classification
	for _, p := range players {
		if p.IsNPC() {
			c.NPCs = append(c.NPCs, p)
		} else {
			c.Humans = append(c.Humans, p)
		}
	}
	return c
}

func Find(players []quiz_models.Player, playerID string) (quiz_models.Player, bool) {
	for _, p := range players {
		if p.ID == playerID {
			return p, true
		}
	}
	return quiz_models.Player{}, false
}

func IsHost(players []quiz_models.Player, playerID string) bool {
	p, ok := Find(players, playerID)
	return ok && p.IsHost
}

// Host returns the first player flagged as host
func Host(players []quiz_models.Player) (quiz_models.Player, bool) {
	for _, p := range players {
		if p.IsHost {
			return p, true
		}
	}
	return quiz_models.Player{}, false
}

// AllReady is true iff at least one human exists and every human is ready.
// NPCs are implicitly ready.
func AllReady(players []quiz_models.Player) bool {
	humans := 0
	for _, p := range players {
		if p.IsNPC() {
			continue
		}
		humans++
		if !p.IsReady {
			return false
		}
	}
	return humans > 0
}

func HumanIDs(players []quiz_models.Player) []string {
	var ids []string
	for _, p := range players {
		if p.IsHuman() {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
