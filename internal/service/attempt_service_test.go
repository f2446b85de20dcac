package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgate/examgate-backend/internal/model"
)

func activeExam(maxScore, passingScore int) *model.Exam {
	return &model.Exam{
		ID:           uuid.New(),
		Name:         "Algebra Basics",
		PassingScore: passingScore,
		MaxScore:     maxScore,
		IsActive:     true,
	}
}

func TestStartOrResumeCreatesAttempt(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()

	attempt, err := svc.StartOrResume(context.Background(), studentID, exam.ID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, attempt.ID)
	assert.Equal(t, studentID, attempt.StudentID)
	assert.Equal(t, exam.ID, attempt.ExamID)
	assert.Equal(t, model.AttemptStatusInProgress, attempt.Status)
	assert.Equal(t, 0, attempt.TotalScore)
	assert.Equal(t, 100, attempt.MaxExamScore)
	assert.Nil(t, attempt.EndTime)
	assert.Nil(t, attempt.ExamResult)
}

func TestStartOrResumeReturnsExistingAttempt(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()
	ctx := context.Background()

	first, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	// Accumulated progress must survive a resume.
	attempts.rows[first.ID].TotalScore = 40

	second, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 40, second.TotalScore)
	assert.Equal(t, first.StartTime.Unix(), second.StartTime.Unix())
}

func TestStartOrResumeMissingExam(t *testing.T) {
	svc := NewAttemptService(newFakeAttempts(), newFakeExams())

	_, err := svc.StartOrResume(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStartOrResumeInactiveExam(t *testing.T) {
	exam := activeExam(100, 70)
	exam.IsActive = false
	svc := NewAttemptService(newFakeAttempts(), newFakeExams(exam))

	_, err := svc.StartOrResume(context.Background(), uuid.New(), exam.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStartOrResumeConcurrentStartReturnsWinner(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()
	ctx := context.Background()

	winner, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	// Make the existence check miss so the service races into Create and
	// loses against the winner row, like two simultaneous starts.
	attempts.missOnce = true

	resolved, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, resolved.ID)
}

func TestStartOrResumeAfterDoneCreatesRetake(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()
	ctx := context.Background()

	first, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	require.NoError(t, attempts.Complete(ctx, first.ID, 80, model.ExamResultPass, 100, time.Now()))

	retake, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, retake.ID)
	assert.Equal(t, model.AttemptStatusInProgress, retake.Status)
	assert.Equal(t, 0, retake.TotalScore)
}

func TestRequireActive(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()
	ctx := context.Background()

	attempt, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)

	got, err := svc.RequireActive(ctx, studentID, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)
}

func TestRequireActiveRejectsForeignAttempt(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	ctx := context.Background()

	attempt, err := svc.StartOrResume(ctx, uuid.New(), exam.ID)
	require.NoError(t, err)

	_, err = svc.RequireActive(ctx, uuid.New(), attempt.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRequireActiveRejectsCompletedAttempt(t *testing.T) {
	exam := activeExam(100, 70)
	attempts := newFakeAttempts()
	svc := NewAttemptService(attempts, newFakeExams(exam))
	studentID := uuid.New()
	ctx := context.Background()

	attempt, err := svc.StartOrResume(ctx, studentID, exam.ID)
	require.NoError(t, err)
	require.NoError(t, attempts.Complete(ctx, attempt.ID, 0, model.ExamResultFail, 100, time.Now()))

	_, err = svc.RequireActive(ctx, studentID, attempt.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRequireActiveRejectsUnknownAttempt(t *testing.T) {
	svc := NewAttemptService(newFakeAttempts(), newFakeExams())

	_, err := svc.RequireActive(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
