package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgate/examgate-backend/internal/model"
)

// completionFixture wires an in-progress attempt against one exam with a
// recordable answer store.
type completionFixture struct {
	exam     *model.Exam
	exams    *fakeExams
	attempts *fakeAttempts
	answers  *fakeAnswers
	svc      *CompletionService
	attempt  *model.Attempt
}

func newCompletionFixture(t *testing.T, passingScore, maxScore int) *completionFixture {
	t.Helper()

	f := &completionFixture{
		exam:     activeExam(maxScore, passingScore),
		attempts: newFakeAttempts(),
		answers:  newFakeAnswers(),
	}
	f.exams = newFakeExams(f.exam)
	f.attempt = &model.Attempt{
		ID:           uuid.New(),
		StudentID:    uuid.New(),
		ExamID:       f.exam.ID,
		Status:       model.AttemptStatusInProgress,
		MaxExamScore: maxScore,
	}
	f.attempts.rows[f.attempt.ID] = f.attempt
	f.svc = NewCompletionService(f.attempts, f.answers, f.exams)
	return f
}

func (f *completionFixture) record(score int) {
	rec := &model.AnswerRecord{
		AttemptID:      f.attempt.ID,
		ExamQuestionID: uuid.New(),
		AnswerOptionID: uuid.New(),
		IsCorrect:      score > 0,
		Score:          score,
	}
	_ = f.answers.Upsert(context.Background(), rec)
}

func TestCompletePassesAtExactThreshold(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	f.record(50)
	f.record(20)

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	assert.Equal(t, 70, result.TotalScore)
	assert.Equal(t, model.ExamResultPass, result.ExamResult)
	assert.Equal(t, 100, result.MaxScore)
}

func TestCompleteFailsBelowThreshold(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	f.record(50)

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	assert.Equal(t, 50, result.TotalScore)
	assert.Equal(t, model.ExamResultFail, result.ExamResult)
}

func TestCompleteWithNoAnswers(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, model.ExamResultFail, result.ExamResult)
}

func TestCompleteSingleCorrectAnswerStillFails(t *testing.T) {
	// One correct 20-point answer out of five questions does not clear a
	// passing score of 70.
	f := newCompletionFixture(t, 70, 100)
	f.record(20)

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	assert.Equal(t, 20, result.TotalScore)
	assert.Equal(t, model.ExamResultFail, result.ExamResult)
}

func TestCompleteStampsTerminalState(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	f.record(80)

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	stored := f.attempts.rows[f.attempt.ID]
	assert.Equal(t, model.AttemptStatusDone, stored.Status)
	assert.Equal(t, 80, stored.TotalScore)
	require.NotNil(t, stored.ExamResult)
	assert.Equal(t, model.ExamResultPass, *stored.ExamResult)
	require.NotNil(t, stored.EndTime)
	assert.Equal(t, result.EndTime, *stored.EndTime)
}

func TestCompleteResnapshotsMaxScoreFromLiveExam(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	f.record(80)

	// Catalog edit between start and completion.
	f.exam.MaxScore = 120

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)

	assert.Equal(t, 120, result.MaxScore)
	assert.Equal(t, 120, f.attempts.rows[f.attempt.ID].MaxExamScore)
}

func TestCompleteScoresAgainstDeactivatedExam(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	f.record(80)

	// Exam deactivated mid-attempt; completion still scores against it.
	f.exam.IsActive = false

	result, err := f.svc.Complete(context.Background(), f.attempt)
	require.NoError(t, err)
	assert.Equal(t, model.ExamResultPass, result.ExamResult)
}

func TestCompletedAttemptNoLongerActive(t *testing.T) {
	f := newCompletionFixture(t, 70, 100)
	attemptSvc := NewAttemptService(f.attempts, f.exams)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, f.attempt)
	require.NoError(t, err)

	// Late submissions and double completion both gate through RequireActive.
	_, err = attemptSvc.RequireActive(ctx, f.attempt.StudentID, f.attempt.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
