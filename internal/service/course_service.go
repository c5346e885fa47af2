package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CourseService handles course business logic and catalog caching.
// The full catalog listing is cached in Redis and invalidated on every
// course write, so the user-facing catalog rarely hits PostgreSQL.
type CourseService struct {
	courseRepo *repository.CourseRepository
	rdb        *redis.Client
	ttl        time.Duration
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		rdb:        rdb,
		ttl:        cfg.CatalogCacheTTL,
		log:        log.With().Str("component", "course_service").Logger(),
	}
}

// GetByID retrieves a course with its modules.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves all courses, newest first, serving from the Redis
// catalog cache when warm. A cache failure falls back to PostgreSQL.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	key := config.CacheKey.CourseCatalogKey()

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var courses []model.Course
		if err := json.Unmarshal(cached, &courses); err == nil {
			return courses, nil
		}
		s.log.Warn().Msg("Corrupt catalog cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Catalog cache read failed")
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	if encoded, err := json.Marshal(courses); err == nil {
		if err := s.rdb.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Catalog cache write failed")
		}
	}

	return courses, nil
}

// Create validates and inserts a new course with its modules.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:    req.Title,
		Desc:     req.Desc,
		Category: req.Category,
		Image:    req.Image,
		Active:   true,
		Modules:  model.ModulesFromRequests(req.Modules),
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Str("course_id", course.ID.String()).Str("titulo", course.Title).Msg("Course created")
	return course, nil
}

// Update merges the provided fields over the existing course and
// persists the result. Omitted fields keep their stored value.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.ApplyUpdate(req)

	if err := s.courseRepo.Update(ctx, course, req.Modules != nil); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return s.courseRepo.GetByID(ctx, id)
}

// Delete removes a course and, by cascade, its modules.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.log.Info().Str("course_id", id.String()).Msg("Course deleted")
	return nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.CourseCatalogKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
