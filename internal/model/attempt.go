package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates attempt lifecycle states.
// pending → in_progress → done; done is terminal.
type AttemptStatus string

const (
	AttemptStatusPending    AttemptStatus = "pending"
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusDone       AttemptStatus = "done"
)

// ExamResult is the pass/fail outcome of a completed attempt.
type ExamResult string

const (
	ExamResultPass ExamResult = "pass"
	ExamResultFail ExamResult = "fail"
)

// Attempt is one student's run through an exam. MaxExamScore snapshots the
// exam's max_score at creation and is re-snapshotted at completion.
type Attempt struct {
	ID           uuid.UUID     `json:"id"`
	StudentID    uuid.UUID     `json:"student_id"`
	ExamID       uuid.UUID     `json:"exam_id"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      *time.Time    `json:"end_time,omitempty"`
	Status       AttemptStatus `json:"status"`
	ExamResult   *ExamResult   `json:"exam_result,omitempty"`
	TotalScore   int           `json:"total_score"`
	MaxExamScore int           `json:"max_exam_score"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AnswerRecord stores the outcome for one exam question within one attempt.
// At most one record exists per (attempt, exam question); resubmissions
// overwrite the record in place, keeping its identity.
type AnswerRecord struct {
	ID             uuid.UUID `json:"id"`
	AttemptID      uuid.UUID `json:"attempt_id"`
	ExamQuestionID uuid.UUID `json:"exam_question_id"`
	AnswerOptionID uuid.UUID `json:"answer_id"`
	IsCorrect      bool      `json:"is_correct"`
	Score          int       `json:"score"`
}

// CompletionResult is the terminal summary returned by the completion engine.
type CompletionResult struct {
	AttemptID  uuid.UUID  `json:"attempt_id"`
	TotalScore int        `json:"total_score"`
	MaxScore   int        `json:"max_score"`
	ExamResult ExamResult `json:"exam_result"`
	EndTime    time.Time  `json:"end_time"`
}

// StartAttemptRequest is the payload for starting (or resuming) an exam.
type StartAttemptRequest struct {
	ExamID uuid.UUID `json:"exam_id" binding:"required"`
}

// SubmitAnswerRequest is the payload for answering one exam question.
// Resubmitting for the same question replaces the previous answer.
type SubmitAnswerRequest struct {
	ExamQuestionID uuid.UUID `json:"exam_question_id" binding:"required"`
	AnswerID       uuid.UUID `json:"answer_id" binding:"required"`
}
