package handler

import (
	"errors"
	"net/http"

	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/cursolivre/cursolivre-backend/internal/response"
	"github.com/cursolivre/cursolivre-backend/internal/service"
	"github.com/cursolivre/cursolivre-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EnrollmentHandler handles the admin enrollment review workflow.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// ListAll godoc
// GET /api/v1/admin/matriculas
// Returns every enrollment with resolved user and course summaries.
func (h *EnrollmentHandler) ListAll(c *gin.Context) {
	enrollments, err := h.enrollmentService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"matriculas": enrollments})
}

// ListPending godoc
// GET /api/v1/admin/matriculas/solicitacoes
// Returns enrollments awaiting a decision, oldest first.
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	enrollments, err := h.enrollmentService.ListPending(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"matriculas": enrollments})
}

// SetStatus godoc
// PATCH /api/v1/admin/matriculas/:id
// Moves an enrollment to aprovado or rejeitado. Pendente is not an
// accepted target; decisions can be changed to the other decision.
func (h *EnrollmentHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetEnrollmentStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matricula": enrollment})
}

// Approve godoc
// PATCH /api/v1/admin/matriculas/:id/aprovar
// Shortcut for approving an enrollment.
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	enrollment, err := h.enrollmentService.Approve(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matricula": enrollment})
}

// Delete godoc
// DELETE /api/v1/admin/matriculas/:id
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.enrollmentService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *EnrollmentHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotADecision):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTransition)
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrInvalidReference):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidReference)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
