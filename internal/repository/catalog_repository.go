package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgate/examgate-backend/internal/model"
)

// CatalogRepository handles read-only access to the exam catalog: exams,
// questions, answer options and the weighted exam-question links. Catalog
// mutation is an administrative concern outside this service.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const examColumns = `id, name, category, description, question_count, passing_score, max_score, timer_seconds, is_active, created_at, updated_at`

func scanExam(row interface{ Scan(...any) error }) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Description, &e.QuestionCount,
		&e.PassingScore, &e.MaxScore, &e.TimerSeconds, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return e, nil
}

// GetActiveExamByID retrieves an exam that exists and is active. Inactive and
// missing exams are indistinguishable (model.ErrNotFound).
func (r *CatalogRepository) GetActiveExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+`
		 FROM exams
		 WHERE id = $1 AND is_active = TRUE`, id))
}

// GetExamByID retrieves an exam regardless of its active flag. Used by the
// completion engine, which must still score attempts against exams that were
// deactivated mid-attempt.
func (r *CatalogRepository) GetExamByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+`
		 FROM exams
		 WHERE id = $1`, id))
}

// ListActiveExams retrieves all active exams, newest first.
func (r *CatalogRepository) ListActiveExams(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+`
		 FROM exams
		 WHERE is_active = TRUE
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Description, &e.QuestionCount,
			&e.PassingScore, &e.MaxScore, &e.TimerSeconds, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// GetExamQuestion retrieves an active exam question scoped to one exam.
// A question link belonging to another exam surfaces as model.ErrNotFound.
func (r *CatalogRepository) GetExamQuestion(ctx context.Context, id, examID uuid.UUID) (*model.ExamQuestion, error) {
	eq := &model.ExamQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, question_id, score, is_active, created_at, updated_at
		 FROM exam_questions
		 WHERE id = $1 AND exam_id = $2 AND is_active = TRUE`, id, examID,
	).Scan(&eq.ID, &eq.ExamID, &eq.QuestionID, &eq.Score, &eq.IsActive, &eq.CreatedAt, &eq.UpdatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return eq, nil
}

// GetAnswerOption retrieves an active answer option scoped to one question.
func (r *CatalogRepository) GetAnswerOption(ctx context.Context, id, questionID uuid.UUID) (*model.AnswerOption, error) {
	o := &model.AnswerOption{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_id, text, is_correct, is_active, created_at, updated_at
		 FROM answer_options
		 WHERE id = $1 AND question_id = $2 AND is_active = TRUE`, id, questionID,
	).Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return o, nil
}

// ListExamQuestions retrieves the active questions of an exam with their
// active answer options, in link creation order. Correctness flags are not
// part of the student-facing view.
func (r *CatalogRepository) ListExamQuestions(ctx context.Context, examID uuid.UUID) ([]model.ExamQuestionView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT eq.id, eq.score, q.id, q.text, q.category
		 FROM exam_questions eq
		 JOIN questions q ON eq.question_id = q.id
		 WHERE eq.exam_id = $1 AND eq.is_active = TRUE AND q.is_active = TRUE
		 ORDER BY eq.created_at ASC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []model.ExamQuestionView
	var questionIDs []uuid.UUID
	viewIdxByQuestion := make(map[uuid.UUID][]int)

	for rows.Next() {
		var v model.ExamQuestionView
		var questionID uuid.UUID
		if err := rows.Scan(&v.ID, &v.Score, &questionID, &v.QuestionText, &v.Category); err != nil {
			return nil, err
		}
		viewIdxByQuestion[questionID] = append(viewIdxByQuestion[questionID], len(views))
		questionIDs = append(questionIDs, questionID)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT id, question_id, text
		 FROM answer_options
		 WHERE question_id = ANY($1) AND is_active = TRUE
		 ORDER BY created_at ASC`, questionIDs)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var opt model.AnswerOptionView
		var questionID uuid.UUID
		if err := optRows.Scan(&opt.ID, &questionID, &opt.Text); err != nil {
			return nil, err
		}
		for _, idx := range viewIdxByQuestion[questionID] {
			views[idx].Options = append(views[idx].Options, opt)
		}
	}
	return views, optRows.Err()
}
