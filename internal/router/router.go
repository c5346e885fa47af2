package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/handler"
	"github.com/cursolivre/cursolivre-backend/internal/middleware"
	"github.com/cursolivre/cursolivre-backend/internal/response"
	"github.com/cursolivre/cursolivre-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Catalog    *handler.CatalogHandler
	Course     *handler.CourseHandler
	Exam       *handler.ExamHandler
	Enrollment *handler.EnrollmentHandler
	User       *handler.UserHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.UserLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.GetUserProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Student Group (User JWT) ───────────────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(middleware.RequireUserJWT(authService))
	{
		userAPI.GET("/cursos", handlers.Catalog.List)
		userAPI.GET("/cursos/:id", handlers.Catalog.Get)
		userAPI.POST("/matriculas", handlers.Catalog.Enroll)
		userAPI.GET("/matriculas/me", handlers.Catalog.MyEnrollments)
	}

	// ─── 3. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/enrollments/stream", handlers.WS.EnrollmentStream)
	}

	// ─── 4. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Course management
		adminAPI.GET("/cursos", handlers.Course.List)
		adminAPI.POST("/cursos", handlers.Course.Create)
		adminAPI.GET("/cursos/:id", handlers.Course.Get)
		adminAPI.PUT("/cursos/:id", handlers.Course.Update)
		adminAPI.DELETE("/cursos/:id", handlers.Course.Delete)

		// Exam management
		adminAPI.GET("/provas", handlers.Exam.List)
		adminAPI.POST("/provas", handlers.Exam.Create)
		adminAPI.GET("/provas/:id", handlers.Exam.Get)
		adminAPI.PUT("/provas/:id", handlers.Exam.Update)
		adminAPI.DELETE("/provas/:id", handlers.Exam.Delete)
		adminAPI.PUT("/provas/:id/questoes", handlers.Exam.ReplaceQuestions)
		adminAPI.POST("/provas/:id/questoes", handlers.Exam.AddQuestion)
		adminAPI.DELETE("/provas/:id/questoes/:pos", handlers.Exam.RemoveQuestion)

		// Enrollment review workflow
		adminAPI.GET("/matriculas", handlers.Enrollment.ListAll)
		adminAPI.GET("/matriculas/solicitacoes", handlers.Enrollment.ListPending)
		adminAPI.PATCH("/matriculas/:id", handlers.Enrollment.SetStatus)
		adminAPI.PATCH("/matriculas/:id/aprovar", handlers.Enrollment.Approve)
		adminAPI.DELETE("/matriculas/:id", handlers.Enrollment.Delete)

		// Registered users
		adminAPI.GET("/users", handlers.User.List)
		adminAPI.GET("/users/:id", handlers.User.Get)
	}

	return router
}
