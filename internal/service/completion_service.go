package service

import (
	"context"
	"fmt"
	"time"

	"github.com/examgate/examgate-backend/internal/model"
)

// CompletionService finalizes an attempt: it aggregates the per-question
// scores, determines pass/fail and transitions the attempt to its terminal
// state.
type CompletionService struct {
	attempts AttemptStore
	answers  AnswerStore
	exams    ExamReader
}

// NewCompletionService creates a new CompletionService.
func NewCompletionService(attempts AttemptStore, answers AnswerStore, exams ExamReader) *CompletionService {
	return &CompletionService{attempts: attempts, answers: answers, exams: exams}
}

// Complete sums the attempt's answer record scores (unanswered questions
// contribute zero) and compares the total against the exam's live passing
// score: pass iff total >= passing_score. It stamps the end time, marks the
// attempt done and re-snapshots max_exam_score from the live exam, so a
// catalog edit between start and completion is reflected in the final record.
//
// Completion does not re-check attempt status; callers gate through
// AttemptService.RequireActive, which also rejects a second completion since
// the attempt is no longer in progress.
func (s *CompletionService) Complete(ctx context.Context, attempt *model.Attempt) (*model.CompletionResult, error) {
	totalScore, err := s.answers.SumScores(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("sum answer scores: %w", err)
	}

	exam, err := s.exams.GetExamByID(ctx, attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	result := model.ExamResultFail
	if totalScore >= exam.PassingScore {
		result = model.ExamResultPass
	}

	endTime := time.Now()
	if err := s.attempts.Complete(ctx, attempt.ID, totalScore, result, exam.MaxScore, endTime); err != nil {
		return nil, fmt.Errorf("complete attempt: %w", err)
	}

	return &model.CompletionResult{
		AttemptID:  attempt.ID,
		TotalScore: totalScore,
		MaxScore:   exam.MaxScore,
		ExamResult: result,
		EndTime:    endTime,
	}, nil
}
