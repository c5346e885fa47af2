package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestTotalScore(t *testing.T) {
	t.Run("empty list totals zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalScore(nil))
		assert.Equal(t, 0.0, TotalScore([]Question{}))
	})

	t.Run("sums fractional point values", func(t *testing.T) {
		questions := []Question{
			{Score: 2},
			{Score: 3},
			{Score: 1.5},
		}
		assert.Equal(t, 6.5, TotalScore(questions))
	})

	t.Run("zero-score questions count as zero", func(t *testing.T) {
		questions := []Question{{Score: 0}, {Score: 4}}
		assert.Equal(t, 4.0, TotalScore(questions))
	})
}

func TestQuestionsFromRequests(t *testing.T) {
	t.Run("missing pontuacao defaults to one", func(t *testing.T) {
		qs := QuestionsFromRequests([]QuestionRequest{
			{Text: "Quanto é 2+2?", Type: "multiple_choice"},
			{Text: "Explique.", Type: "essay", Score: floatPtr(3)},
		})
		assert.Equal(t, 1.0, qs[0].Score)
		assert.Equal(t, 3.0, qs[1].Score)
	})

	t.Run("list order becomes stored order", func(t *testing.T) {
		qs := QuestionsFromRequests([]QuestionRequest{
			{Text: "a", Type: "essay"},
			{Text: "b", Type: "essay"},
			{Text: "c", Type: "essay"},
		})
		for i, q := range qs {
			assert.Equal(t, i, q.Order)
		}
	})

	t.Run("essay questions never keep options", func(t *testing.T) {
		qs := QuestionsFromRequests([]QuestionRequest{
			{
				Text: "Disserte sobre o tema.",
				Type: "essay",
				Options: []OptionRequest{
					{Text: "não deveria estar aqui", Correct: true},
				},
			},
		})
		assert.Empty(t, qs[0].Options)
	})

	t.Run("choice options carry text and correctness", func(t *testing.T) {
		qs := QuestionsFromRequests([]QuestionRequest{
			{
				Text: "Verdadeiro ou falso?",
				Type: "true_false",
				Options: []OptionRequest{
					{Text: "Verdadeiro", Correct: true},
					{Text: "Falso"},
				},
			},
		})
		assert.Len(t, qs[0].Options, 2)
		assert.True(t, qs[0].Options[0].Correct)
		assert.False(t, qs[0].Options[1].Correct)
	})
}

func TestUnpublishableQuestions(t *testing.T) {
	questions := []Question{
		{Type: QuestionTypeMultipleChoice, Options: []Option{{Text: "a"}}},
		{Type: QuestionTypeTrueFalse}, // no options
		{Type: QuestionTypeEssay},     // fine without options
		{Type: QuestionTypeMultipleChoice},
	}
	assert.Equal(t, []int{1, 3}, UnpublishableQuestions(questions))

	assert.Nil(t, UnpublishableQuestions(nil))
}

func TestExamApplyUpdate(t *testing.T) {
	title := "Prova atualizada"
	active := false

	exam := &Exam{
		Title:     "Prova original",
		Desc:      "descrição",
		TimeLimit: 60,
		Active:    true,
		Questions: []Question{{Text: "antiga", Type: QuestionTypeEssay, Score: 2}},
	}

	exam.ApplyUpdate(&UpdateExamRequest{Title: &title, Active: &active})

	assert.Equal(t, "Prova atualizada", exam.Title)
	assert.False(t, exam.Active)
	// Untouched fields keep their stored value.
	assert.Equal(t, "descrição", exam.Desc)
	assert.Equal(t, 60, exam.TimeLimit)
	assert.Len(t, exam.Questions, 1)

	// Providing questoes replaces the list entirely.
	exam.ApplyUpdate(&UpdateExamRequest{
		Questions: &[]QuestionRequest{
			{Text: "nova", Type: "essay"},
			{Text: "outra", Type: "essay"},
		},
	})
	assert.Len(t, exam.Questions, 2)
	assert.Equal(t, "nova", exam.Questions[0].Text)
}

func TestQuestionTypeIsChoice(t *testing.T) {
	assert.True(t, QuestionTypeMultipleChoice.IsChoice())
	assert.True(t, QuestionTypeTrueFalse.IsChoice())
	assert.False(t, QuestionTypeEssay.IsChoice())
}
