package postgres

// All lists every table, in migration order
func All() []any {
	return []any{
		&QuizRoom{},
		&QuizQuestion{},
		&QuizAttempt{},
		&QuizResponse{},
	}
}
