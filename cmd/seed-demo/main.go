package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/config"
	"github.com/examgate/examgate-backend/internal/database"
	"github.com/examgate/examgate-backend/internal/logger"
	"github.com/examgate/examgate-backend/internal/model"
	"github.com/examgate/examgate-backend/internal/repository"
	"github.com/examgate/examgate-backend/internal/service"
)

// Seeds a handful of demo students plus one fully weighted exam so the API
// can be exercised end to end right after `migrate up`.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	studentService := service.NewStudentService(studentRepo)
	authService := service.NewAuthService(cfg, nil)

	fmt.Println("=== Seeding Demo Students ===")

	students := []struct {
		first, last, email string
	}{
		{"Alice", "Nguyen", "alice@example.com"},
		{"Bruno", "Costa", "bruno@example.com"},
		{"Chiara", "Rossi", "chiara@example.com"},
	}

	hash, err := authService.HashPassword("password123")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	for _, s := range students {
		student := &model.Student{
			FirstName:    s.first,
			LastName:     s.last,
			Email:        s.email,
			PasswordHash: hash,
		}
		if err := studentService.Create(ctx, student); err != nil {
			if errors.Is(err, model.ErrConflict) {
				fmt.Printf("Student %s already exists, skipping\n", s.email)
				continue
			}
			log.Fatal().Err(err).Str("email", s.email).Msg("Failed to create student")
		}
		fmt.Printf("Created student %s (%s)\n", s.email, student.ID)
	}

	fmt.Println("=== Seeding Demo Exam ===")

	var examID uuid.UUID
	err = pool.QueryRow(ctx,
		`SELECT id FROM exams WHERE name = $1`, "Go Fundamentals").Scan(&examID)
	if err == nil {
		fmt.Printf("Exam already exists (%s), nothing to do\n", examID)
		return
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO exams (name, category, description, question_count, passing_score, max_score, timer_seconds, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		 RETURNING id`,
		"Go Fundamentals", "programming",
		"Covers syntax, types, goroutines and the standard toolchain.",
		5, 70, 100, 1800,
	).Scan(&examID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}

	type option struct {
		text    string
		correct bool
	}
	questions := []struct {
		text    string
		score   int
		options []option
	}{
		{
			text:  "Which keyword starts a new goroutine?",
			score: 20,
			options: []option{
				{"go", true}, {"async", false}, {"spawn", false}, {"thread", false},
			},
		},
		{
			text:  "What is the zero value of a pointer type?",
			score: 20,
			options: []option{
				{"0", false}, {"nil", true}, {"undefined", false}, {"empty struct", false},
			},
		},
		{
			text:  "Which builtin grows a slice?",
			score: 20,
			options: []option{
				{"push", false}, {"extend", false}, {"append", true}, {"add", false},
			},
		},
		{
			text:  "How are errors conventionally returned?",
			score: 20,
			options: []option{
				{"as panics", false}, {"as the last return value", true},
				{"via global errno", false}, {"through channels", false},
			},
		},
		{
			text:  "Which construct multiplexes over channels?",
			score: 20,
			options: []option{
				{"switch", false}, {"select", true}, {"case", false}, {"poll", false},
			},
		},
	}

	for _, q := range questions {
		var questionID uuid.UUID
		err = pool.QueryRow(ctx,
			`INSERT INTO questions (text, category, is_active)
			 VALUES ($1, $2, TRUE)
			 RETURNING id`,
			q.text, "programming",
		).Scan(&questionID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create question")
		}

		for _, o := range q.options {
			if _, err := pool.Exec(ctx,
				`INSERT INTO answer_options (question_id, text, is_correct, is_active)
				 VALUES ($1, $2, $3, TRUE)`,
				questionID, o.text, o.correct,
			); err != nil {
				log.Fatal().Err(err).Msg("Failed to create answer option")
			}
		}

		if _, err := pool.Exec(ctx,
			`INSERT INTO exam_questions (exam_id, question_id, score)
			 VALUES ($1, $2, $3)`,
			examID, questionID, q.score,
		); err != nil {
			log.Fatal().Err(err).Msg("Failed to link question to exam")
		}
	}

	fmt.Printf("\nSeed completed! Exam %s with %d questions.\n", examID, len(questions))
}
