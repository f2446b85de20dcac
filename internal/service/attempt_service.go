package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/model"
)

// ExamReader provides catalog exam lookups consumed by the attempt lifecycle.
type ExamReader interface {
	// GetActiveExamByID fails with model.ErrNotFound for missing or inactive exams.
	GetActiveExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	// GetExamByID ignores the active flag; completion still scores attempts
	// against exams deactivated mid-attempt.
	GetExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
}

// AttemptStore provides attempt persistence.
type AttemptStore interface {
	GetActiveByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*model.Attempt, error)
	GetActiveByID(ctx context.Context, attemptID, studentID uuid.UUID) (*model.Attempt, error)
	Create(ctx context.Context, a *model.Attempt) error
	Complete(ctx context.Context, attemptID uuid.UUID, totalScore int, result model.ExamResult, maxExamScore int, endTime time.Time) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attempt, error)
}

// AttemptService manages the attempt lifecycle: starting or resuming a
// student's run through an exam, and gating mutating operations on an
// in-progress attempt owned by the caller.
type AttemptService struct {
	attempts AttemptStore
	exams    ExamReader
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts AttemptStore, exams ExamReader) *AttemptService {
	return &AttemptService{attempts: attempts, exams: exams}
}

// StartOrResume returns the student's existing pending/in-progress attempt
// for the exam unchanged, or creates a new in-progress attempt snapshotting
// the exam's max score. Calling it repeatedly yields the same attempt;
// historical done attempts (retakes) are never resumed.
func (s *AttemptService) StartOrResume(ctx context.Context, studentID, examID uuid.UUID) (*model.Attempt, error) {
	exam, err := s.exams.GetActiveExamByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	existing, err := s.attempts.GetActiveByExamAndStudent(ctx, examID, studentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("check existing attempt: %w", err)
	}

	attempt := &model.Attempt{
		StudentID:    studentID,
		ExamID:       examID,
		StartTime:    time.Now(),
		Status:       model.AttemptStatusInProgress,
		MaxExamScore: exam.MaxScore,
	}

	if err := s.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, model.ErrConflict) {
			// A concurrent start won the race; the partial unique index
			// guarantees exactly one active attempt exists to return.
			winner, fetchErr := s.attempts.GetActiveByExamAndStudent(ctx, examID, studentID)
			if fetchErr != nil {
				return nil, fmt.Errorf("concurrent start detected, refetch failed: %w", fetchErr)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	return attempt, nil
}

// RequireActive is the authorization boundary for answer submission and
// completion. An attempt that is missing, owned by another student, or no
// longer in progress fails with model.ErrNotFound — indistinguishable to the
// caller, so attempt IDs cannot be enumerated for completion state.
func (s *AttemptService) RequireActive(ctx context.Context, studentID, attemptID uuid.UUID) (*model.Attempt, error) {
	attempt, err := s.attempts.GetActiveByID(ctx, attemptID, studentID)
	if err != nil {
		return nil, fmt.Errorf("get active attempt: %w", err)
	}
	return attempt, nil
}

// ListByStudent returns the student's attempt history, newest first.
func (s *AttemptService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attempt, error) {
	return s.attempts.ListByStudent(ctx, studentID)
}
