package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/examgate/examgate-backend/internal/middleware"
	"github.com/examgate/examgate-backend/internal/model"
	"github.com/examgate/examgate-backend/internal/response"
	"github.com/examgate/examgate-backend/internal/service"
	"github.com/examgate/examgate-backend/internal/validator"
)

// AttemptHandler handles the exam-taking flow: starting an attempt,
// submitting answers and completing the attempt.
type AttemptHandler struct {
	attemptService    *service.AttemptService
	answerService     *service.AnswerService
	completionService *service.CompletionService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(
	attemptService *service.AttemptService,
	answerService *service.AnswerService,
	completionService *service.CompletionService,
) *AttemptHandler {
	return &AttemptHandler{
		attemptService:    attemptService,
		answerService:     answerService,
		completionService: completionService,
	}
}

// StartAttempt godoc
// POST /api/v1/student/attempts
// Starts an exam for the student, or resumes the existing active attempt
// (idempotent; no score reset on resume).
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.StartOrResume(c.Request.Context(), claims.StudentID, req.ExamID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// ListAttempts godoc
// GET /api/v1/student/attempts
// Returns the student's attempt history, newest first.
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attempts, err := h.attemptService.ListByStudent(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if attempts == nil {
		attempts = []model.Attempt{}
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

// SubmitAnswer godoc
// POST /api/v1/student/attempts/:attempt_id/answers
// Records (or replaces) the student's answer for one exam question within an
// active attempt. The active-attempt gate runs before any lookup, so
// submissions to completed or foreign attempts are a plain 404.
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()

	attempt, err := h.attemptService.RequireActive(ctx, claims.StudentID, attemptID)
	if err != nil {
		failDomain(c, err)
		return
	}

	examQuestion, err := h.answerService.GetExamQuestion(ctx, attempt, req.ExamQuestionID)
	if err != nil {
		failDomain(c, err)
		return
	}

	option, err := h.answerService.GetAnswerOption(ctx, examQuestion, req.AnswerID)
	if err != nil {
		failDomain(c, err)
		return
	}

	record, err := h.answerService.Submit(ctx, attempt, examQuestion, option)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"answer": record})
}

// CompleteAttempt godoc
// POST /api/v1/student/attempts/:attempt_id/complete
// Finalizes an active attempt and returns the pass/fail summary. A second
// completion fails with 404 because the attempt is no longer in progress.
func (h *AttemptHandler) CompleteAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ctx := c.Request.Context()

	attempt, err := h.attemptService.RequireActive(ctx, claims.StudentID, attemptID)
	if err != nil {
		failDomain(c, err)
		return
	}

	result, err := h.completionService.Complete(ctx, attempt)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// failDomain maps the two domain error kinds onto transport codes; anything
// else is an internal error.
func failDomain(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, model.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
