package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	// ErrAlreadyEnrolled signals a second enrollment request for a
	// (user, course) pair that already has one, whatever its status.
	ErrAlreadyEnrolled = errors.New("enrollment already exists for this pair")
	// ErrInvalidReference signals the user or course does not exist.
	ErrInvalidReference = errors.New("enrollment references a nonexistent user or course")
	// ErrNotADecision signals a status other than aprovado/rejeitado.
	// Nothing re-opens a decided enrollment back to pendente.
	ErrNotADecision = errors.New("status must be aprovado or rejeitado")
)

// EnrollmentEventType tags the enrollment lifecycle events published to
// the admin live feed.
type EnrollmentEventType string

const (
	EnrollmentEventCreated EnrollmentEventType = "created"
	EnrollmentEventDecided EnrollmentEventType = "decided"
	EnrollmentEventRemoved EnrollmentEventType = "removed"
)

// EnrollmentEvent is the payload published on the enrollment events
// channel and forwarded to connected admin dashboards.
type EnrollmentEvent struct {
	Type       EnrollmentEventType `json:"type"`
	Enrollment *model.Enrollment   `json:"matricula"`
}

// EnrollmentService coordinates the enrollment workflow: creation with
// the at-most-one-per-pair rule, administrator decisions, and the
// resolved listings the dashboards consume.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, rdb *redis.Client, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Create requests enrollment of a user into a course. The new request
// starts pendente. The store's unique index makes the duplicate check
// atomic: a pair with any existing enrollment is rejected, and two
// concurrent requests cannot both insert.
func (s *EnrollmentService) Create(ctx context.Context, userID int, courseID uuid.UUID) (*model.Enrollment, error) {
	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEnrollment):
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, repository.ErrBrokenReference):
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	s.publish(ctx, EnrollmentEventCreated, enrollment)
	s.log.Info().
		Int("user_id", userID).
		Str("course_id", courseID.String()).
		Msg("Enrollment requested")
	return enrollment, nil
}

// SetStatus decides an enrollment: aprovado or rejeitado, from any
// current state. Administrators may re-decide (correcting a rejection),
// but no operation moves an enrollment back to pendente.
func (s *EnrollmentService) SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus) (*model.Enrollment, error) {
	if !status.IsDecision() {
		return nil, ErrNotADecision
	}

	enrollment, err := s.enrollmentRepo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EnrollmentEventDecided, enrollment)
	s.log.Info().
		Str("enrollment_id", id.String()).
		Str("status", string(status)).
		Msg("Enrollment decided")
	return enrollment, nil
}

// Approve is the shortcut decision used by the one-click approve action.
func (s *EnrollmentService) Approve(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	return s.SetStatus(ctx, id, model.EnrollmentApproved)
}

// Delete removes an enrollment record entirely (administrative cleanup;
// the user may then request the course again).
func (s *EnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EnrollmentEventRemoved, enrollment)
	return nil
}

// ListAll returns every enrollment resolved with user and course summaries.
func (s *EnrollmentService) ListAll(ctx context.Context) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListAll(ctx)
}

// ListPending returns the requests awaiting a decision, resolved with
// user name/email and course title.
func (s *EnrollmentService) ListPending(ctx context.Context) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListPending(ctx)
}

// ListByUser returns a user's enrollments resolved with course title and
// description, which the catalog uses to derive per-course UI state.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID int) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

// StatusFor returns the enrollment a user holds for a course, or nil
// when none exists. Content access requires an aprovado record.
func (s *EnrollmentService) StatusFor(ctx context.Context, userID int, courseID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return enrollment, nil
}

// publish pushes an enrollment event to the admin live feed channel.
// Feed delivery is best effort; the workflow result never depends on it.
func (s *EnrollmentService) publish(ctx context.Context, eventType EnrollmentEventType, enrollment *model.Enrollment) {
	payload, err := json.Marshal(EnrollmentEvent{Type: eventType, Enrollment: enrollment})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.EnrollmentEventsChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Enrollment event publish failed")
	}
}
