package handler

import (
	"errors"
	"net/http"

	"github.com/cursolivre/cursolivre-backend/internal/middleware"
	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/cursolivre/cursolivre-backend/internal/response"
	"github.com/cursolivre/cursolivre-backend/internal/service"
	"github.com/cursolivre/cursolivre-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler serves the student-facing course catalog and
// enrollment requests.
type CatalogHandler struct {
	courseService     *service.CourseService
	enrollmentService *service.EnrollmentService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CatalogHandler {
	return &CatalogHandler{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// CatalogCourse is a course as seen by a student: module content is
// withheld until the enrollment is approved.
type CatalogCourse struct {
	ID          uuid.UUID      `json:"_id"`
	Title       string         `json:"titulo"`
	Description string         `json:"descricao"`
	Modules     []model.Module `json:"modulos,omitempty"`
	ModuleCount int            `json:"totalModulos"`
	Status      string         `json:"situacao"`
}

// List godoc
// GET /api/v1/cursos
// Lists the catalog with the caller's enrollment status per course.
func (h *CatalogHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	enrollments, err := h.enrollmentService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	statusByCourse := make(map[uuid.UUID]model.EnrollmentStatus, len(enrollments))
	for _, e := range enrollments {
		statusByCourse[e.CourseID] = e.Status
	}

	out := make([]CatalogCourse, 0, len(courses))
	for i := range courses {
		out = append(out, buildCatalogCourse(&courses[i], statusByCourse[courses[i].ID]))
	}

	response.Success(c, http.StatusOK, gin.H{"cursos": out})
}

// Get godoc
// GET /api/v1/cursos/:id
// Returns one course; modules are included only for approved students.
func (h *CatalogHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var status model.EnrollmentStatus
	if enrollment, err := h.enrollmentService.StatusFor(c.Request.Context(), claims.UserID, id); err == nil && enrollment != nil {
		status = enrollment.Status
	}

	response.Success(c, http.StatusOK, gin.H{"curso": buildCatalogCourse(course, status)})
}

// Enroll godoc
// POST /api/v1/matriculas
// Requests enrollment in a course. The user comes from the token; a
// second request for the same course answers 409.
func (h *CatalogHandler) Enroll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Create(c.Request.Context(), claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		case errors.Is(err, service.ErrInvalidReference):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidReference)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"matricula": enrollment})
}

// MyEnrollments godoc
// GET /api/v1/matriculas/me
// Lists the caller's enrollments with course summaries.
func (h *CatalogHandler) MyEnrollments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	enrollments, err := h.enrollmentService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matriculas": enrollments})
}

func buildCatalogCourse(course *model.Course, status model.EnrollmentStatus) CatalogCourse {
	out := CatalogCourse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Desc,
		ModuleCount: len(course.Modules),
		Status:      "nenhuma",
	}
	if status != "" {
		out.Status = string(status)
	}
	if status == model.EnrollmentApproved {
		out.Modules = course.Modules
	}
	return out
}
