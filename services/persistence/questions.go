package persistence

import (
	"CivicQuiz/models/postgres"
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/questions"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository serves normalized questions. It implements
// session.QuestionSource.
type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Questions draws up to count active questions in random order and assigns
// ordinals 0..n-1
func (r *QuestionRepository) Questions(ctx context.Context, count int) ([]quiz_models.Question, error) {
	var rows []postgres.QuizQuestion
	query := r.db.WithContext(ctx).Where("active = ?", true).Order("random()")
	if count > 0 {
		query = query.Limit(count)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, quiz_models.ErrNoQuestions
	}

	out := make([]quiz_models.Question, 0, len(rows))
	for i, row := range rows {
		q, err := toQuestion(row)
		if err != nil {
			return nil, err
		}
		q.Ordinal = i
		out = append(out, q)
	}
	return out, nil
}

func toQuestion(row postgres.QuizQuestion) (quiz_models.Question, error) {
	var options []quiz_models.Option
	if err := json.Unmarshal(row.Options, &options); err != nil {
		return quiz_models.Question{}, fmt.Errorf("error decoding options of question %s: %w", row.ID, err)
	}
	return quiz_models.Question{
		ID:              row.ID,
		Prompt:          row.Prompt,
		Options:         options,
		CorrectOptionID: row.CorrectOptionID,
		Category:        row.Category,
		Difficulty:      quiz_models.Difficulty(row.Difficulty),
		Hint:            row.Hint,
		Explanation:     row.Explanation,
	}, nil
}

// Import normalizes raw questions and upserts them by id. Nothing is written
// when any question fails to normalize.
func (r *QuestionRepository) Import(ctx context.Context, raws []questions.RawQuestion) (int, error) {
	qs, err := questions.NormalizeAll(raws)
	if err != nil {
		return 0, err
	}
	rows := make([]postgres.QuizQuestion, 0, len(qs))
	for _, q := range qs {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return 0, err
		}
		id := q.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, postgres.QuizQuestion{
			ID:              id,
			Prompt:          q.Prompt,
			Options:         datatypes.JSON(options),
			CorrectOptionID: q.CorrectOptionID,
			Category:        q.Category,
			Difficulty:      string(q.Difficulty),
			Hint:            q.Hint,
			Explanation:     q.Explanation,
			Active:          true,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"prompt", "options", "correct_option_id", "category", "difficulty", "hint", "explanation", "active",
		}),
	}).Create(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("error importing questions: %w", err)
	}
	return len(rows), nil
}

// Count returns the number of active questions
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&postgres.QuizQuestion{}).Where("active = ?", true).Count(&n).Error
	return n, err
}
