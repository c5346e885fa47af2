package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamRepository handles exam and question data access.
//
// pontuacao_total is a cached aggregate: every write that touches the
// question list recomputes it from the questions inside the same
// transaction. It is never written from a caller-supplied value.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `e.id, e.titulo, e.descricao, e.course_id, e.tempo_limite,
	e.pontuacao_total, e.ativo, e.created_at, e.updated_at, COALESCE(c.titulo, '')`

// GetByID retrieves an exam with its questions, resolving the linked
// course title when present.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+`
		 FROM exams e LEFT JOIN courses c ON c.id = e.course_id
		 WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Desc, &e.CourseID, &e.TimeLimit,
		&e.TotalScore, &e.Active, &e.CreatedAt, &e.UpdatedAt, &e.CourseTitle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questions, err := r.questionsFor(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Questions = questions
	return e, nil
}

// List retrieves all exams with their questions, newest first.
func (r *ExamRepository) List(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+`
		 FROM exams e LEFT JOIN courses c ON c.id = e.course_id
		 ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Desc, &e.CourseID, &e.TimeLimit,
			&e.TotalScore, &e.Active, &e.CreatedAt, &e.UpdatedAt, &e.CourseTitle); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exams {
		questions, err := r.questionsFor(ctx, exams[i].ID)
		if err != nil {
			return nil, err
		}
		exams[i].Questions = questions
	}
	return exams, nil
}

// questionsFor loads an exam's questions in list order.
func (r *ExamRepository) questionsFor(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, enunciado, tipo, pontuacao, alternativas, ordem
		 FROM exam_questions WHERE exam_id = $1
		 ORDER BY ordem`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.Score, &options, &q.Order); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal alternativas: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts an exam and its questions; the total score is computed
// from the question list inside the transaction.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	e.TotalScore = model.TotalScore(e.Questions)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (titulo, descricao, course_id, tempo_limite, pontuacao_total, ativo)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Desc, e.CourseID, e.TimeLimit, e.TotalScore, e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertQuestions(ctx, tx, e.ID, e.Questions); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update persists the merged exam record. When replaceQuestions is set
// the stored question list is swapped for e.Questions and the total score
// recomputed in the same transaction; otherwise the stored questions and
// total stay as they are.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam, replaceQuestions bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if replaceQuestions {
		e.TotalScore = model.TotalScore(e.Questions)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE exams
		 SET titulo = $1, descricao = $2, course_id = $3, tempo_limite = $4,
		     pontuacao_total = $5, ativo = $6, updated_at = NOW()
		 WHERE id = $7`,
		e.Title, e.Desc, e.CourseID, e.TimeLimit, e.TotalScore, e.Active, e.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if replaceQuestions {
		if _, err := tx.Exec(ctx,
			`DELETE FROM exam_questions WHERE exam_id = $1`, e.ID); err != nil {
			return err
		}
		if err := insertQuestions(ctx, tx, e.ID, e.Questions); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceQuestions swaps an exam's question list and recomputes the
// total score, all inside one transaction.
func (r *ExamRepository) ReplaceQuestions(ctx context.Context, examID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	total := model.TotalScore(questions)

	tag, err := tx.Exec(ctx,
		`UPDATE exams SET pontuacao_total = $1, updated_at = NOW() WHERE id = $2`,
		total, examID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM exam_questions WHERE exam_id = $1`, examID); err != nil {
		return err
	}
	if err := insertQuestions(ctx, tx, examID, questions); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes an exam; the questions cascade with it.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertQuestions(ctx context.Context, tx pgx.Tx, examID uuid.UUID, questions []model.Question) error {
	for i := range questions {
		options := questions[i].Options
		if options == nil {
			options = []model.Option{}
		}
		encoded, err := json.Marshal(options)
		if err != nil {
			return fmt.Errorf("marshal alternativas: %w", err)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO exam_questions (exam_id, enunciado, tipo, pontuacao, alternativas, ordem)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			examID, questions[i].Text, questions[i].Type, questions[i].Score, encoded, i,
		).Scan(&questions[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}
