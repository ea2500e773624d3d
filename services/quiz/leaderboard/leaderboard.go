package leaderboard

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/scoring"
	"sort"
	"time"
)

// Entry is derived on demand and never stored
type Entry struct {
	Rank             int    `json:"rank"`
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	IsNPC            bool   `json:"is_npc"`
	Score            int    `json:"score"`
	CorrectCount     int    `json:"correct_count"`
	Answered         int    `json:"answered"`
	AverageLatencyMs int64  `json:"average_latency_ms"`
	CurrentStreak    int    `json:"current_streak"`
}

// Compute rebuilds the standings by replaying the scoring policy over the
// response log, so it can never drift from the responses themselves.
// Responses of players missing from the roster are ignored.
func Compute(responses []quiz_models.Response, players []quiz_models.Player, mode quiz_models.GameModeConfig) []Entry {
	byPlayer := make(map[string][]quiz_models.Response, len(players))
	for _, r := range responses {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		e := Entry{PlayerID: p.ID, Name: p.Name, IsNPC: p.IsNPC()}
		rs := byPlayer[p.ID]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Ordinal < rs[j].Ordinal })

		var totalLatency int64
		for _, r := range rs {
			if r.IsCorrect {
				e.CurrentStreak++
				e.CorrectCount++
			} else {
				e.CurrentStreak = 0
			}
			award := scoring.Score(r.IsCorrect, time.Duration(r.ResponseTimeMs)*time.Millisecond,
				mode.TimePerQuestion, e.CurrentStreak, mode.SpeedBonus)
			e.Score += award.Points
			totalLatency += r.ResponseTimeMs
		}
		e.Answered = len(rs)
		if len(rs) > 0 {
			e.AverageLatencyMs = totalLatency / int64(len(rs))
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.CorrectCount != b.CorrectCount {
			return a.CorrectCount > b.CorrectCount
		}
		if a.AverageLatencyMs != b.AverageLatencyMs {
			return a.AverageLatencyMs < b.AverageLatencyMs
		}
		return a.PlayerID < b.PlayerID
	})

	// equal scores share a rank (1, 1, 3)
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}
