package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgate/examgate-backend/internal/model"
)

// AttemptRepository handles attempt (student exam run) data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, student_id, exam_id, start_time, end_time, status, exam_result, total_score, max_exam_score, created_at, updated_at`

func scanAttempt(row interface{ Scan(...any) error }) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := row.Scan(&a.ID, &a.StudentID, &a.ExamID, &a.StartTime, &a.EndTime,
		&a.Status, &a.ExamResult, &a.TotalScore, &a.MaxExamScore, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return a, nil
}

// GetActiveByExamAndStudent retrieves the student's non-terminal attempt for
// an exam. At most one such attempt exists, enforced by a partial unique
// index on (student_id, exam_id) for non-done statuses.
func (r *AttemptRepository) GetActiveByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+`
		 FROM attempts
		 WHERE exam_id = $1 AND student_id = $2 AND status IN ($3, $4)`,
		examID, studentID, model.AttemptStatusPending, model.AttemptStatusInProgress))
}

// GetActiveByID retrieves an in-progress attempt owned by the student.
// Foreign, completed and missing attempts all surface as model.ErrNotFound.
func (r *AttemptRepository) GetActiveByID(ctx context.Context, attemptID, studentID uuid.UUID) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+`
		 FROM attempts
		 WHERE id = $1 AND student_id = $2 AND status = $3`,
		attemptID, studentID, model.AttemptStatusInProgress))
}

// Create inserts a new in-progress attempt. A concurrent insert for the same
// (student, exam) loses against the partial unique index and surfaces as
// model.ErrConflict; the caller refetches the winning row.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attempts (student_id, exam_id, start_time, status, total_score, max_exam_score)
		 VALUES ($1, $2, $3, $4, 0, $5)
		 ON CONFLICT (student_id, exam_id) WHERE status IN ('pending', 'in_progress') DO NOTHING
		 RETURNING id, start_time, status, total_score, created_at, updated_at`,
		a.StudentID, a.ExamID, a.StartTime, model.AttemptStatusInProgress, a.MaxExamScore,
	).Scan(&a.ID, &a.StartTime, &a.Status, &a.TotalScore, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		// DO NOTHING yields no row when a concurrent start won the race.
		mapped := mapScanErr(err)
		if mapped == model.ErrNotFound {
			return fmt.Errorf("attempt for exam %s: %w", a.ExamID, model.ErrConflict)
		}
		return mapped
	}
	return nil
}

// Complete transitions an attempt to its terminal state, stamping the final
// score, pass/fail result, end time and the re-snapshotted max exam score.
func (r *AttemptRepository) Complete(ctx context.Context, attemptID uuid.UUID, totalScore int, result model.ExamResult, maxExamScore int, endTime time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attempts
		 SET status = $1, total_score = $2, exam_result = $3, max_exam_score = $4, end_time = $5, updated_at = NOW()
		 WHERE id = $6`,
		model.AttemptStatusDone, totalScore, result, maxExamScore, endTime, attemptID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListByStudent retrieves all attempts for a student, newest first.
func (r *AttemptRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attemptColumns+`
		 FROM attempts
		 WHERE student_id = $1
		 ORDER BY start_time DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.StudentID, &a.ExamID, &a.StartTime, &a.EndTime,
			&a.Status, &a.ExamResult, &a.TotalScore, &a.MaxExamScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
