package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/model"
)

// fakeExams is an in-memory ExamReader.
type fakeExams struct {
	exams map[uuid.UUID]*model.Exam
}

func newFakeExams(exams ...*model.Exam) *fakeExams {
	f := &fakeExams{exams: make(map[uuid.UUID]*model.Exam)}
	for _, e := range exams {
		f.exams[e.ID] = e
	}
	return f
}

func (f *fakeExams) GetActiveExamByID(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	e, ok := f.exams[id]
	if !ok || !e.IsActive {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExams) GetExamByID(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	e, ok := f.exams[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// fakeAttempts is an in-memory AttemptStore that mirrors the partial unique
// index on (student_id, exam_id) for non-done attempts. Setting missOnce makes
// the next existence check report no row, reproducing the window where two
// concurrent starts both decide to insert.
type fakeAttempts struct {
	rows     map[uuid.UUID]*model.Attempt
	missOnce bool
}

func newFakeAttempts(attempts ...*model.Attempt) *fakeAttempts {
	f := &fakeAttempts{rows: make(map[uuid.UUID]*model.Attempt)}
	for _, a := range attempts {
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeAttempts) activeFor(examID, studentID uuid.UUID) *model.Attempt {
	for _, a := range f.rows {
		if a.ExamID == examID && a.StudentID == studentID && a.Status != model.AttemptStatusDone {
			return a
		}
	}
	return nil
}

func (f *fakeAttempts) GetActiveByExamAndStudent(_ context.Context, examID, studentID uuid.UUID) (*model.Attempt, error) {
	if f.missOnce {
		f.missOnce = false
		return nil, model.ErrNotFound
	}
	if a := f.activeFor(examID, studentID); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeAttempts) GetActiveByID(_ context.Context, attemptID, studentID uuid.UUID) (*model.Attempt, error) {
	a, ok := f.rows[attemptID]
	if !ok || a.StudentID != studentID || a.Status != model.AttemptStatusInProgress {
		return nil, model.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttempts) Create(_ context.Context, a *model.Attempt) error {
	if f.activeFor(a.ExamID, a.StudentID) != nil {
		return fmt.Errorf("attempt for exam %s: %w", a.ExamID, model.ErrConflict)
	}
	a.ID = uuid.New()
	a.Status = model.AttemptStatusInProgress
	a.TotalScore = 0
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAttempts) Complete(_ context.Context, attemptID uuid.UUID, totalScore int, result model.ExamResult, maxExamScore int, endTime time.Time) error {
	a, ok := f.rows[attemptID]
	if !ok {
		return model.ErrNotFound
	}
	a.Status = model.AttemptStatusDone
	a.TotalScore = totalScore
	a.ExamResult = &result
	a.MaxExamScore = maxExamScore
	a.EndTime = &endTime
	a.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAttempts) ListByStudent(_ context.Context, studentID uuid.UUID) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, a := range f.rows {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

// fakeCatalog is an in-memory CatalogReader.
type fakeCatalog struct {
	examQuestions map[uuid.UUID]*model.ExamQuestion
	options       map[uuid.UUID]*model.AnswerOption
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		examQuestions: make(map[uuid.UUID]*model.ExamQuestion),
		options:       make(map[uuid.UUID]*model.AnswerOption),
	}
}

func (f *fakeCatalog) addExamQuestion(eq *model.ExamQuestion) {
	f.examQuestions[eq.ID] = eq
}

func (f *fakeCatalog) addOption(o *model.AnswerOption) {
	f.options[o.ID] = o
}

func (f *fakeCatalog) GetExamQuestion(_ context.Context, id, examID uuid.UUID) (*model.ExamQuestion, error) {
	eq, ok := f.examQuestions[id]
	if !ok || eq.ExamID != examID || !eq.IsActive {
		return nil, model.ErrNotFound
	}
	cp := *eq
	return &cp, nil
}

func (f *fakeCatalog) GetAnswerOption(_ context.Context, id, questionID uuid.UUID) (*model.AnswerOption, error) {
	o, ok := f.options[id]
	if !ok || o.QuestionID != questionID || !o.IsActive {
		return nil, model.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// fakeAnswers is an in-memory AnswerStore keyed by (attempt, exam question),
// preserving record identity across overwrites like the real upsert.
type fakeAnswers struct {
	records map[[2]uuid.UUID]*model.AnswerRecord
}

func newFakeAnswers() *fakeAnswers {
	return &fakeAnswers{records: make(map[[2]uuid.UUID]*model.AnswerRecord)}
}

func (f *fakeAnswers) Upsert(_ context.Context, rec *model.AnswerRecord) error {
	key := [2]uuid.UUID{rec.AttemptID, rec.ExamQuestionID}
	if existing, ok := f.records[key]; ok {
		existing.AnswerOptionID = rec.AnswerOptionID
		existing.IsCorrect = rec.IsCorrect
		existing.Score = rec.Score
		rec.ID = existing.ID
		return nil
	}
	rec.ID = uuid.New()
	cp := *rec
	f.records[key] = &cp
	return nil
}

func (f *fakeAnswers) SumScores(_ context.Context, attemptID uuid.UUID) (int, error) {
	total := 0
	for _, rec := range f.records {
		if rec.AttemptID == attemptID {
			total += rec.Score
		}
	}
	return total, nil
}
