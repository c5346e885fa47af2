package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/handler"
	"github.com/cursolivre/cursolivre-backend/internal/service"
)

func testRouter() *gin.Engine {
	cfg := &config.Config{GinMode: gin.TestMode}
	authService := service.NewAuthService(cfg)
	handlers := &Handlers{
		Auth:       handler.NewAuthHandler(authService, nil, nil),
		Catalog:    handler.NewCatalogHandler(nil, nil),
		Course:     handler.NewCourseHandler(nil),
		Exam:       handler.NewExamHandler(nil),
		Enrollment: handler.NewEnrollmentHandler(nil),
		User:       handler.NewUserHandler(nil),
		WS:         handler.NewWSHandler(nil, zerolog.Nop(), nil),
	}
	return SetupRouter(authService, handlers, cfg)
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	r := testRouter()

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/admin/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/auth/admin/me",
		"GET /api/v1/cursos",
		"GET /api/v1/cursos/:id",
		"POST /api/v1/matriculas",
		"GET /api/v1/matriculas/me",
		"GET /api/v1/admin/cursos",
		"POST /api/v1/admin/cursos",
		"GET /api/v1/admin/cursos/:id",
		"PUT /api/v1/admin/cursos/:id",
		"DELETE /api/v1/admin/cursos/:id",
		"GET /api/v1/admin/provas",
		"POST /api/v1/admin/provas",
		"GET /api/v1/admin/provas/:id",
		"PUT /api/v1/admin/provas/:id",
		"DELETE /api/v1/admin/provas/:id",
		"PUT /api/v1/admin/provas/:id/questoes",
		"POST /api/v1/admin/provas/:id/questoes",
		"DELETE /api/v1/admin/provas/:id/questoes/:pos",
		"GET /api/v1/admin/matriculas",
		"GET /api/v1/admin/matriculas/solicitacoes",
		"PATCH /api/v1/admin/matriculas/:id",
		"PATCH /api/v1/admin/matriculas/:id/aprovar",
		"DELETE /api/v1/admin/matriculas/:id",
		"GET /api/v1/admin/users",
		"GET /api/v1/admin/users/:id",
		"GET /ws/v1/admin/enrollments/stream",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "route not registered: %s", want)
	}
}
