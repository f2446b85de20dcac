package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/model"
)

// CatalogReader provides the scoped catalog lookups the answer recorder needs.
type CatalogReader interface {
	GetExamQuestion(ctx context.Context, id, examID uuid.UUID) (*model.ExamQuestion, error)
	GetAnswerOption(ctx context.Context, id, questionID uuid.UUID) (*model.AnswerOption, error)
}

// AnswerStore provides answer record persistence.
type AnswerStore interface {
	Upsert(ctx context.Context, rec *model.AnswerRecord) error
	SumScores(ctx context.Context, attemptID uuid.UUID) (int, error)
}

// AnswerService records a student's chosen answer for a question within an
// active attempt and computes the per-question score.
type AnswerService struct {
	catalog CatalogReader
	answers AnswerStore
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(catalog CatalogReader, answers AnswerStore) *AnswerService {
	return &AnswerService{catalog: catalog, answers: answers}
}

// GetExamQuestion resolves an exam question scoped to the attempt's exam.
// Links belonging to other exams or inactive links fail with model.ErrNotFound.
func (s *AnswerService) GetExamQuestion(ctx context.Context, attempt *model.Attempt, examQuestionID uuid.UUID) (*model.ExamQuestion, error) {
	eq, err := s.catalog.GetExamQuestion(ctx, examQuestionID, attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("get exam question: %w", err)
	}
	return eq, nil
}

// GetAnswerOption resolves an answer option scoped to the exam question's
// underlying question.
func (s *AnswerService) GetAnswerOption(ctx context.Context, examQuestion *model.ExamQuestion, answerID uuid.UUID) (*model.AnswerOption, error) {
	option, err := s.catalog.GetAnswerOption(ctx, answerID, examQuestion.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get answer option: %w", err)
	}
	return option, nil
}

// Submit records the chosen answer. Correctness comes from the selected
// option's own flag; the score is the exam question's weight or zero. A
// resubmission for the same question overwrites the stored record in place,
// preserving its identity. Attempt status is not checked here — callers gate
// through AttemptService.RequireActive first.
func (s *AnswerService) Submit(ctx context.Context, attempt *model.Attempt, examQuestion *model.ExamQuestion, option *model.AnswerOption) (*model.AnswerRecord, error) {
	score := 0
	if option.IsCorrect {
		score = examQuestion.Score
	}

	rec := &model.AnswerRecord{
		AttemptID:      attempt.ID,
		ExamQuestionID: examQuestion.ID,
		AnswerOptionID: option.ID,
		IsCorrect:      option.IsCorrect,
		Score:          score,
	}

	if err := s.answers.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert answer record: %w", err)
	}
	return rec, nil
}
