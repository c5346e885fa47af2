package repository

import (
	"context"
	"errors"

	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Enrollment-specific data errors.
var (
	// ErrDuplicateEnrollment signals the (user, course) pair already has
	// an enrollment, whatever its status. Raised by the unique compound
	// index, so concurrent requests cannot both slip through.
	ErrDuplicateEnrollment = errors.New("enrollment already exists for this user and course")
	// ErrBrokenReference signals the user or course the enrollment points
	// at does not exist.
	ErrBrokenReference = errors.New("enrollment references a nonexistent user or course")
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create inserts a new pending enrollment. Duplicates and broken
// references surface as typed errors via the store's constraints.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (user_id, course_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		e.UserID, e.CourseID, model.EnrollmentPending,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateEnrollment
			case "23503":
				return ErrBrokenReference
			}
		}
		return err
	}
	e.Status = model.EnrollmentPending
	return nil
}

// GetByID retrieves an enrollment by its UUID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, status, created_at, updated_at
		 FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetByUserAndCourse retrieves the enrollment for a (user, course) pair,
// or ErrNotFound when the user never requested that course.
func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID int, courseID uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, status, created_at, updated_at
		 FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// SetStatus overwrites an enrollment's status.
func (r *EnrollmentRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`UPDATE enrollments SET status = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING id, user_id, course_id, status, created_at, updated_at`,
		status, id,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes an enrollment by its UUID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const resolvedColumns = `e.id, e.user_id, e.course_id, e.status, e.created_at, e.updated_at,
	u.id, u.name, u.email, c.id, c.titulo, c.descricao`

func scanResolved(rows pgx.Rows) ([]model.Enrollment, error) {
	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		var user model.UserSummary
		var course model.CourseSummary
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
			&user.ID, &user.Name, &user.Email, &course.ID, &course.Title, &course.Desc); err != nil {
			return nil, err
		}
		e.User = &user
		e.Course = &course
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ListAll retrieves every enrollment resolved with user and course
// summaries, newest first.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resolvedColumns+`
		 FROM enrollments e
		 JOIN users u ON u.id = e.user_id
		 JOIN courses c ON c.id = e.course_id
		 ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResolved(rows)
}

// ListPending retrieves enrollments awaiting a decision, resolved with
// user and course summaries, oldest request first.
func (r *EnrollmentRepository) ListPending(ctx context.Context) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resolvedColumns+`
		 FROM enrollments e
		 JOIN users u ON u.id = e.user_id
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.status = $1
		 ORDER BY e.created_at`, model.EnrollmentPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResolved(rows)
}

// ListByUser retrieves a user's enrollments resolved with course title
// and description, for the user-facing catalog.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.user_id, e.course_id, e.status, e.created_at, e.updated_at,
		        c.id, c.titulo, c.descricao
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		var course model.CourseSummary
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
			&course.ID, &course.Title, &course.Desc); err != nil {
			return nil, err
		}
		e.Course = &course
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
