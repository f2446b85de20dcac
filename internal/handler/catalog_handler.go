package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/model"
	"github.com/examgate/examgate-backend/internal/response"
	"github.com/examgate/examgate-backend/internal/service"
)

// CatalogHandler handles read-only exam catalog endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListExams godoc
// GET /api/v1/exams
// Returns all active exams, newest first.
func (h *CatalogHandler) ListExams(c *gin.Context) {
	exams, err := h.catalogService.ListExams(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if exams == nil {
		exams = []model.Exam{}
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ListExamQuestions godoc
// GET /api/v1/student/exams/:exam_id/questions
// Returns the active questions and options of an active exam. Correct answers
// are never exposed here.
func (h *CatalogHandler) ListExamQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.catalogService.ListExamQuestions(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.ExamQuestionView{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
