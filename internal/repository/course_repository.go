package repository

import (
	"context"
	"errors"

	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a referenced identifier has no record.
var ErrNotFound = errors.New("record not found")

// CourseRepository handles course and module data access. Modules live in
// a child table with ON DELETE CASCADE, so removing a course removes them.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, titulo, descricao, categoria, duracao, preco, imagem, ativo, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.Desc, &c.Category, &c.Duration,
		&c.Price, &c.Image, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a course with its modules.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c, err := scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	modules, err := r.modulesFor(ctx, []uuid.UUID{c.ID})
	if err != nil {
		return nil, err
	}
	c.Modules = modules[c.ID]
	if c.Modules == nil {
		c.Modules = []model.Module{}
	}
	return c, nil
}

// List retrieves all courses with their modules, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	var ids []uuid.UUID
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Desc, &c.Category, &c.Duration,
			&c.Price, &c.Image, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return courses, nil
	}

	modules, err := r.modulesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Modules = modules[courses[i].ID]
		if courses[i].Modules == nil {
			courses[i].Modules = []model.Module{}
		}
	}
	return courses, nil
}

// modulesFor loads modules for a set of courses in one query, keyed by
// course, in display order (ordem, then insertion position for ties).
func (r *CourseRepository) modulesFor(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]model.Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT course_id, id, titulo, descricao, ordem, conteudo
		 FROM course_modules WHERE course_id = ANY($1)
		 ORDER BY ordem, position`, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := make(map[uuid.UUID][]model.Module)
	for rows.Next() {
		var courseID uuid.UUID
		var m model.Module
		if err := rows.Scan(&courseID, &m.ID, &m.Title, &m.Desc, &m.Order, &m.Content); err != nil {
			return nil, err
		}
		modules[courseID] = append(modules[courseID], m)
	}
	return modules, rows.Err()
}

// Create inserts a course and its modules in one transaction.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO courses (titulo, descricao, categoria, duracao, preco, imagem, ativo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Desc, c.Category, c.Duration, c.Price, c.Image, c.Active,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertModules(ctx, tx, c.ID, c.Modules); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update persists the merged course record. The module list is replaced
// only when replaceModules is set; a partial update that omits modulos
// leaves the stored modules untouched.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course, replaceModules bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE courses
		 SET titulo = $1, descricao = $2, categoria = $3, duracao = $4,
		     preco = $5, imagem = $6, ativo = $7, updated_at = NOW()
		 WHERE id = $8`,
		c.Title, c.Desc, c.Category, c.Duration, c.Price, c.Image, c.Active, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if replaceModules {
		if _, err := tx.Exec(ctx,
			`DELETE FROM course_modules WHERE course_id = $1`, c.ID); err != nil {
			return err
		}
		if err := insertModules(ctx, tx, c.ID, c.Modules); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a course; the modules cascade with it.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a course record exists.
func (r *CourseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func insertModules(ctx context.Context, tx pgx.Tx, courseID uuid.UUID, modules []model.Module) error {
	for i := range modules {
		err := tx.QueryRow(ctx,
			`INSERT INTO course_modules (course_id, titulo, descricao, ordem, conteudo, position)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			courseID, modules[i].Title, modules[i].Desc, modules[i].Order, modules[i].Content, i,
		).Scan(&modules[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}
