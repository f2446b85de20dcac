package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/model"
	"github.com/examgate/examgate-backend/internal/repository"
)

// StudentService handles student account lookups for the auth surface.
type StudentService struct {
	repo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// GetByEmail retrieves an active student by email address.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.repo.GetByEmail(ctx, email)
}

// GetByID retrieves an active student by ID.
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new student account with an already-hashed password.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	return s.repo.Create(ctx, student)
}
