package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/database"
	"github.com/cursolivre/cursolivre-backend/internal/logger"
	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/cursolivre/cursolivre-backend/internal/service"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

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

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService)
	courseService := service.NewCourseService(courseRepo, rdb, cfg, log)
	examService := service.NewExamService(examRepo, courseRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, rdb, log)

	fmt.Println("=== Seeding demo data ===")

	// ─── Users ─────────────────────────────────────────────────────────
	userNames := []struct{ name, email string }{
		{"Mariana Alves", "mariana@example.com"},
		{"Pedro Cardoso", "pedro@example.com"},
		{"Luiza Ferreira", "luiza@example.com"},
	}

	users := make([]*model.User, 0, len(userNames))
	for _, u := range userNames {
		user, err := userService.Register(ctx, &model.RegisterRequest{
			Name:     u.name,
			Email:    u.email,
			Password: "senha123",
		})
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				fmt.Printf("User %s already exists, skipping\n", u.email)
				continue
			}
			log.Fatal().Err(err).Str("email", u.email).Msg("Failed to seed user")
		}
		users = append(users, user)
	}
	fmt.Printf("Created %d users\n", len(users))

	// ─── Courses ───────────────────────────────────────────────────────
	goCourse, err := courseService.Create(ctx, &model.CreateCourseRequest{
		Title:    "Introdução a Go",
		Desc:     "Fundamentos da linguagem Go para iniciantes.",
		Category: "programacao",
		Duration: intPtr(40),
		Price:    floatPtr(199.90),
		Modules: []model.ModuleRequest{
			{Title: "Instalação e ambiente", Order: 0},
			{Title: "Tipos e funções", Order: 1},
			{Title: "Concorrência", Order: 2},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed course")
	}

	sqlCourse, err := courseService.Create(ctx, &model.CreateCourseRequest{
		Title:    "SQL na prática",
		Desc:     "Modelagem e consultas em PostgreSQL.",
		Category: "banco-de-dados",
		Duration: intPtr(24),
		Price:    floatPtr(149.90),
		Modules: []model.ModuleRequest{
			{Title: "Modelagem relacional", Order: 0},
			{Title: "Consultas e joins", Order: 1},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed course")
	}
	fmt.Println("Created 2 courses")

	// ─── Exams ─────────────────────────────────────────────────────────
	_, err = examService.Create(ctx, &model.CreateExamRequest{
		Title:    "Avaliação final de Go",
		CourseID: &goCourse.ID,
		Questions: []model.QuestionRequest{
			{
				Text:  "Qual palavra-chave inicia uma goroutine?",
				Type:  string(model.QuestionTypeMultipleChoice),
				Score: floatPtr(2),
				Options: []model.OptionRequest{
					{Text: "go", Correct: true},
					{Text: "async"},
					{Text: "spawn"},
				},
			},
			{
				Text:  "Slices em Go têm tamanho fixo.",
				Type:  string(model.QuestionTypeTrueFalse),
				Score: floatPtr(3),
				Options: []model.OptionRequest{
					{Text: "Verdadeiro"},
					{Text: "Falso", Correct: true},
				},
			},
			{
				Text:  "Explique quando usar canais em vez de mutexes.",
				Type:  string(model.QuestionTypeEssay),
				Score: floatPtr(1.5),
			},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed exam")
	}
	fmt.Println("Created 1 exam")

	// ─── Enrollments ───────────────────────────────────────────────────
	enrolled := 0
	for _, user := range users {
		if _, err := enrollmentService.Create(ctx, user.ID, goCourse.ID); err != nil {
			fmt.Printf("Enrollment for user %d failed: %v\n", user.ID, err)
			continue
		}
		enrolled++
	}
	if len(users) > 0 {
		if _, err := enrollmentService.Create(ctx, users[0].ID, sqlCourse.ID); err == nil {
			enrolled++
		}
	}

	fmt.Printf("\nSeed completed! %d enrollments created, all pending review.\n", enrolled)
}
