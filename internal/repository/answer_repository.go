package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgate/examgate-backend/internal/model"
)

// AnswerRepository handles answer record data access. Answer records are an
// upsert target: one row per (attempt, exam question), overwritten in place
// on resubmission. The unique constraint keeps concurrent submissions from
// producing duplicate rows that would double-count at completion.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Upsert inserts the answer record, or overwrites the selected option,
// correctness and score of the existing row for (attempt, exam question).
// The record keeps its original identity on overwrite; rec.ID is filled
// either way.
func (r *AnswerRepository) Upsert(ctx context.Context, rec *model.AnswerRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answer_records (attempt_id, exam_question_id, answer_option_id, is_correct, score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (attempt_id, exam_question_id)
		 DO UPDATE SET answer_option_id = EXCLUDED.answer_option_id,
		               is_correct = EXCLUDED.is_correct,
		               score = EXCLUDED.score
		 RETURNING id`,
		rec.AttemptID, rec.ExamQuestionID, rec.AnswerOptionID, rec.IsCorrect, rec.Score,
	).Scan(&rec.ID)
}

// SumScores returns the total of all answer record scores for an attempt.
// Unanswered questions contribute nothing.
func (r *AnswerRepository) SumScores(ctx context.Context, attemptID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(score), 0)
		 FROM answer_records
		 WHERE attempt_id = $1`, attemptID,
	).Scan(&total)
	return total, err
}

// ListByAttempt retrieves all answer records for an attempt.
func (r *AnswerRepository) ListByAttempt(ctx context.Context, attemptID uuid.UUID) ([]model.AnswerRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, exam_question_id, answer_option_id, is_correct, score
		 FROM answer_records
		 WHERE attempt_id = $1`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AnswerRecord
	for rows.Next() {
		var rec model.AnswerRecord
		if err := rows.Scan(&rec.ID, &rec.AttemptID, &rec.ExamQuestionID, &rec.AnswerOptionID, &rec.IsCorrect, &rec.Score); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
