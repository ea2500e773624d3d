package answers

import quiz_models "CivicQuiz/models/quiz"

type responseKey struct {
	playerID string
	ordinal  int
}

// ResponseLog is the append-only record of a game's responses.
// At most one Response exists per (player, ordinal).
type ResponseLog struct {
	responses []quiz_models.Response
	index     map[responseKey]int
}

func NewResponseLog() *ResponseLog {
	return &ResponseLog{index: make(map[responseKey]int)}
}

func (l *ResponseLog) Has(playerID string, ordinal int) bool {
	_, ok := l.index[responseKey{playerID, ordinal}]
	return ok
}

// Append fails with DuplicateAnswerError and leaves the log untouched if the
// pair is already present
func (l *ResponseLog) Append(r quiz_models.Response) error {
	k := responseKey{r.PlayerID, r.Ordinal}
	if _, ok := l.index[k]; ok {
		return &quiz_models.DuplicateAnswerError{PlayerID: r.PlayerID, Ordinal: r.Ordinal}
	}
	l.index[k] = len(l.responses)
	l.responses = append(l.responses, r)
	return nil
}

func (l *ResponseLog) Get(playerID string, ordinal int) (quiz_models.Response, bool) {
	i, ok := l.index[responseKey{playerID, ordinal}]
	if !ok {
		return quiz_models.Response{}, false
	}
	return l.responses[i], true
}

// All returns a copy in append order
func (l *ResponseLog) All() []quiz_models.Response {
	out := make([]quiz_models.Response, len(l.responses))
	copy(out, l.responses)
	return out
}

func (l *ResponseLog) ForOrdinal(ordinal int) []quiz_models.Response {
	var out []quiz_models.Response
	for _, r := range l.responses {
		if r.Ordinal == ordinal {
			out = append(out, r)
		}
	}
	return out
}

func (l *ResponseLog) Len() int {
	return len(l.responses)
}
