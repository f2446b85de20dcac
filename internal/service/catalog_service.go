package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/examgate/examgate-backend/internal/config"
	"github.com/examgate/examgate-backend/internal/model"
)

// CatalogStore provides the catalog reads behind the public listing surface.
type CatalogStore interface {
	ExamReader
	ListActiveExams(ctx context.Context) ([]model.Exam, error)
	ListExamQuestions(ctx context.Context, examID uuid.UUID) ([]model.ExamQuestionView, error)
}

// CatalogService serves read-only catalog views. The exam list is cached in
// Redis with a short TTL since the catalog only changes through admin tooling.
type CatalogService struct {
	store CatalogStore
	rdb   *redis.Client
	cfg   *config.Config
	log   zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store CatalogStore, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		store: store,
		rdb:   rdb,
		cfg:   cfg,
		log:   log.With().Str("component", "catalog_service").Logger(),
	}
}

// ListExams returns all active exams, newest first, via a Redis read-through
// cache. Cache failures fall back to the database.
func (s *CatalogService) ListExams(ctx context.Context) ([]model.Exam, error) {
	cacheKey := config.CacheKey.ExamListKey()

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var exams []model.Exam
		if jsonErr := json.Unmarshal([]byte(cached), &exams); jsonErr == nil {
			return exams, nil
		}
		// Unreadable cache entry; fall through to the database.
		s.rdb.Del(ctx, cacheKey)
	}

	exams, err := s.store.ListActiveExams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	if raw, jsonErr := json.Marshal(exams); jsonErr == nil {
		if setErr := s.rdb.Set(ctx, cacheKey, raw, s.cfg.ExamListCacheTTL).Err(); setErr != nil {
			s.log.Warn().Err(setErr).Msg("Failed to cache exam list")
		}
	}

	return exams, nil
}

// ListExamQuestions returns the active questions of an active exam with their
// options (correctness stripped). Missing and inactive exams are
// indistinguishable to the caller.
func (s *CatalogService) ListExamQuestions(ctx context.Context, examID uuid.UUID) ([]model.ExamQuestionView, error) {
	if _, err := s.store.GetActiveExamByID(ctx, examID); err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}
	return s.store.ListExamQuestions(ctx, examID)
}
