package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeEssay          QuestionType = "essay"
)

// IsChoice reports whether the type is answered by picking an option.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}

// Exam represents an exam with its ordered question list.
// TotalScore is derived from the questions and never authored directly.
type Exam struct {
	ID         uuid.UUID  `json:"_id"`
	Title      string     `json:"titulo"`
	Desc       string     `json:"descricao,omitempty"`
	CourseID   *uuid.UUID `json:"cursoId,omitempty"`
	TimeLimit  int        `json:"tempoLimite"` // minutes
	TotalScore float64    `json:"pontuacaoTotal"`
	Active     bool       `json:"ativo"`
	Questions  []Question `json:"questoes"`
	// CourseTitle is resolved from the linked course on reads; empty
	// when the exam is not linked.
	CourseTitle string    `json:"cursoTitulo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Question is a scored unit within an exam.
type Question struct {
	ID      uuid.UUID    `json:"_id"`
	Text    string       `json:"enunciado"`
	Type    QuestionType `json:"tipo"`
	Score   float64      `json:"pontuacao"`
	Options []Option     `json:"alternativas"`
	Order   int          `json:"ordem"`
}

// Option is a selectable answer belonging to a choice question.
type Option struct {
	Text    string `json:"texto"`
	Correct bool   `json:"correta"`
}

// OptionRequest is an embedded option in a question payload.
type OptionRequest struct {
	Text    string `json:"texto" binding:"required"`
	Correct bool   `json:"correta"`
}

// QuestionRequest is an embedded question in an exam payload.
// Score defaults to 1 when omitted.
type QuestionRequest struct {
	Text    string          `json:"enunciado" binding:"required"`
	Type    string          `json:"tipo" binding:"required,oneof=multiple_choice true_false essay"`
	Score   *float64        `json:"pontuacao" binding:"omitempty,min=0"`
	Options []OptionRequest `json:"alternativas" binding:"omitempty,dive"`
}

// CreateExamRequest is the payload for creating an exam. A client-sent
// pontuacaoTotal is ignored: the total is always recomputed.
type CreateExamRequest struct {
	Title     string            `json:"titulo" binding:"required,max=200"`
	Desc      string            `json:"descricao" binding:"omitempty,max=1000"`
	CourseID  *uuid.UUID        `json:"cursoId" binding:"omitempty"`
	TimeLimit *int              `json:"tempoLimite" binding:"omitempty,min=0"`
	Questions []QuestionRequest `json:"questoes" binding:"omitempty,dive"`
}

// UpdateExamRequest is the payload for partially updating exam metadata.
type UpdateExamRequest struct {
	Title     *string            `json:"titulo" binding:"omitempty,min=1,max=200"`
	Desc      *string            `json:"descricao" binding:"omitempty,max=1000"`
	CourseID  *uuid.UUID         `json:"cursoId" binding:"omitempty"`
	TimeLimit *int               `json:"tempoLimite" binding:"omitempty,min=0"`
	Active    *bool              `json:"ativo" binding:"omitempty"`
	Questions *[]QuestionRequest `json:"questoes" binding:"omitempty,dive"`
}

// ReplaceQuestionsRequest is the payload for replacing an exam's question list.
type ReplaceQuestionsRequest struct {
	Questions []QuestionRequest `json:"questoes" binding:"required,dive"`
}

// AddQuestionRequest inserts a single question at a position within the
// list. A nil position appends.
type AddQuestionRequest struct {
	Position *int            `json:"posicao" binding:"omitempty,min=0"`
	Question QuestionRequest `json:"questao" binding:"required"`
}

// ApplyUpdate merges the provided fields over the exam record.
func (e *Exam) ApplyUpdate(req *UpdateExamRequest) {
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Desc != nil {
		e.Desc = *req.Desc
	}
	if req.CourseID != nil {
		e.CourseID = req.CourseID
	}
	if req.TimeLimit != nil {
		e.TimeLimit = *req.TimeLimit
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	if req.Questions != nil {
		e.Questions = QuestionsFromRequests(*req.Questions)
	}
}

// QuestionsFromRequests normalizes question payloads into entities:
// the list order becomes the stored order, a missing pontuacao defaults
// to 1, and essay questions carry no options.
func QuestionsFromRequests(reqs []QuestionRequest) []Question {
	questions := make([]Question, len(reqs))
	for i, q := range reqs {
		score := 1.0
		if q.Score != nil {
			score = *q.Score
		}

		qt := QuestionType(q.Type)
		var options []Option
		if qt.IsChoice() {
			options = make([]Option, len(q.Options))
			for j, opt := range q.Options {
				options[j] = Option{Text: opt.Text, Correct: opt.Correct}
			}
		}

		questions[i] = Question{
			Text:    q.Text,
			Type:    qt,
			Score:   score,
			Options: options,
			Order:   i,
		}
	}
	return questions
}

// TotalScore sums the point values of a question list. A missing score
// counts as zero; an empty list totals zero.
func TotalScore(questions []Question) float64 {
	var total float64
	for _, q := range questions {
		total += q.Score
	}
	return total
}

// UnpublishableQuestions returns the positions of choice questions that
// have no options. The store does not reject them; the authoring surface
// uses this to warn before an exam is treated as publishable.
func UnpublishableQuestions(questions []Question) []int {
	var positions []int
	for i, q := range questions {
		if q.Type.IsChoice() && len(q.Options) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}
