package service

import (
	"context"
	"errors"

	"github.com/cursolivre/cursolivre-backend/internal/model"
	"github.com/cursolivre/cursolivre-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	// ErrCourseReference signals the cursoId on an exam payload does not
	// match any course.
	ErrCourseReference = errors.New("exam references a nonexistent course")
	// ErrPositionOutOfRange signals an add/remove position beyond the
	// question list bounds.
	ErrPositionOutOfRange = errors.New("question position out of range")
)

// ExamService handles exam business logic. Every path that touches the
// question list goes through the repository's transactional recompute,
// so the stored total score can never drift from its questions.
type ExamService struct {
	examRepo   *repository.ExamRepository
	courseRepo *repository.CourseRepository
	log        zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, courseRepo *repository.CourseRepository, log zerolog.Logger) *ExamService {
	return &ExamService{
		examRepo:   examRepo,
		courseRepo: courseRepo,
		log:        log.With().Str("component", "exam_service").Logger(),
	}
}

// GetByID retrieves an exam with its questions.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// List retrieves all exams, newest first.
func (s *ExamService) List(ctx context.Context) ([]model.Exam, error) {
	exams, err := s.examRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// Create validates and inserts a new exam. The total score is derived
// from the questions; any client-sent total is ignored.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	if err := s.checkCourseRef(ctx, req.CourseID); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:     req.Title,
		Desc:      req.Desc,
		CourseID:  req.CourseID,
		Active:    true,
		Questions: model.QuestionsFromRequests(req.Questions),
	}
	if req.TimeLimit != nil {
		exam.TimeLimit = *req.TimeLimit
	}

	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.warnUnpublishable(exam)
	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Float64("pontuacao_total", exam.TotalScore).
		Msg("Exam created")
	return s.examRepo.GetByID(ctx, exam.ID)
}

// Update merges the provided fields over the existing exam. Supplying
// questoes replaces the list and recomputes the total.
func (s *ExamService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CourseID != nil {
		if err := s.checkCourseRef(ctx, req.CourseID); err != nil {
			return nil, err
		}
	}

	exam.ApplyUpdate(req)

	if err := s.examRepo.Update(ctx, exam, req.Questions != nil); err != nil {
		return nil, err
	}

	s.warnUnpublishable(exam)
	return s.examRepo.GetByID(ctx, id)
}

// ReplaceQuestions swaps the whole question list.
func (s *ExamService) ReplaceQuestions(ctx context.Context, examID uuid.UUID, reqs []model.QuestionRequest) (*model.Exam, error) {
	questions := model.QuestionsFromRequests(reqs)
	if err := s.examRepo.ReplaceQuestions(ctx, examID, questions); err != nil {
		return nil, err
	}

	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	s.warnUnpublishable(exam)
	return exam, nil
}

// AddQuestion inserts one question at the given position (append when
// nil), expressed as a replace of the whole list so the same
// transactional recompute applies.
func (s *ExamService) AddQuestion(ctx context.Context, examID uuid.UUID, req *model.AddQuestionRequest) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	inserted := model.QuestionsFromRequests([]model.QuestionRequest{req.Question})[0]

	pos := len(exam.Questions)
	if req.Position != nil {
		pos = *req.Position
		if pos > len(exam.Questions) {
			return nil, ErrPositionOutOfRange
		}
	}

	questions := make([]model.Question, 0, len(exam.Questions)+1)
	questions = append(questions, exam.Questions[:pos]...)
	questions = append(questions, inserted)
	questions = append(questions, exam.Questions[pos:]...)

	if err := s.examRepo.ReplaceQuestions(ctx, examID, questions); err != nil {
		return nil, err
	}
	return s.examRepo.GetByID(ctx, examID)
}

// RemoveQuestion removes the question at the given position, expressed
// as a replace of the whole list.
func (s *ExamService) RemoveQuestion(ctx context.Context, examID uuid.UUID, pos int) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	if pos < 0 || pos >= len(exam.Questions) {
		return nil, ErrPositionOutOfRange
	}

	questions := make([]model.Question, 0, len(exam.Questions)-1)
	questions = append(questions, exam.Questions[:pos]...)
	questions = append(questions, exam.Questions[pos+1:]...)

	if err := s.examRepo.ReplaceQuestions(ctx, examID, questions); err != nil {
		return nil, err
	}
	return s.examRepo.GetByID(ctx, examID)
}

// Delete removes an exam and, by cascade, its questions.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.examRepo.Delete(ctx, id)
}

func (s *ExamService) checkCourseRef(ctx context.Context, courseID *uuid.UUID) error {
	if courseID == nil {
		return nil
	}
	exists, err := s.courseRepo.Exists(ctx, *courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseReference
	}
	return nil
}

// warnUnpublishable logs choice questions saved without options. The
// store accepts them; the authoring surface is expected to warn before
// treating the exam as publishable.
func (s *ExamService) warnUnpublishable(exam *model.Exam) {
	if positions := model.UnpublishableQuestions(exam.Questions); len(positions) > 0 {
		s.log.Warn().
			Str("exam_id", exam.ID.String()).
			Ints("positions", positions).
			Msg("Choice questions saved without alternativas")
	}
}
