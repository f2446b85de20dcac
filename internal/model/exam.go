package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents an exam definition in the catalog. The core never mutates
// catalog entities; admin edits happen outside this service.
type Exam struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"question_count"`
	PassingScore  int       `json:"passing_score"`
	MaxScore      int       `json:"max_score"`
	TimerSeconds  int       `json:"timer_seconds"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Question is a reusable question shared across exams by reference.
type Question struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerOption is one selectable answer for a question. IsCorrect is
// authoritative per option; the model does not enforce a single correct
// option per question.
type AnswerOption struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"-"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExamQuestion links a question to an exam and carries the score awarded for
// that question within that exam. (exam, question) pairs are unique.
type ExamQuestion struct {
	ID         uuid.UUID `json:"id"`
	ExamID     uuid.UUID `json:"exam_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Score      int       `json:"score"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnswerOptionView is an answer option as presented to students — the
// correctness flag is stripped.
type AnswerOptionView struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// ExamQuestionView is an exam question with its question text and options,
// as presented to students taking the exam.
type ExamQuestionView struct {
	ID           uuid.UUID          `json:"id"`
	Score        int                `json:"score"`
	QuestionText string             `json:"question_text"`
	Category     string             `json:"category"`
	Options      []AnswerOptionView `json:"options"`
}
