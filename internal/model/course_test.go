package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCourseApplyUpdate(t *testing.T) {
	course := &Course{
		Title:    "Go do zero",
		Desc:     "Curso introdutório",
		Category: "programação",
		Duration: 40,
		Price:    99.9,
		Active:   true,
		Modules: []Module{
			{Title: "Introdução", Order: 0},
		},
	}

	t.Run("omitted titulo preserves existing title", func(t *testing.T) {
		course.ApplyUpdate(&UpdateCourseRequest{Desc: strPtr("Atualizado")})
		assert.Equal(t, "Go do zero", course.Title)
		assert.Equal(t, "Atualizado", course.Desc)
	})

	t.Run("provided fields overwrite", func(t *testing.T) {
		price := 0.0
		course.ApplyUpdate(&UpdateCourseRequest{
			Title: strPtr("Go avançado"),
			Price: &price,
		})
		assert.Equal(t, "Go avançado", course.Title)
		assert.Equal(t, 0.0, course.Price)
		assert.Equal(t, 40, course.Duration)
	})

	t.Run("omitted modulos keeps module list", func(t *testing.T) {
		course.ApplyUpdate(&UpdateCourseRequest{Category: strPtr("golang")})
		assert.Len(t, course.Modules, 1)
	})

	t.Run("provided modulos replaces module list", func(t *testing.T) {
		course.ApplyUpdate(&UpdateCourseRequest{
			Modules: &[]ModuleRequest{
				{Title: "Estruturas", Order: 1},
				{Title: "Concorrência", Order: 2, Content: "goroutines e canais"},
			},
		})
		assert.Len(t, course.Modules, 2)
		assert.Equal(t, "Concorrência", course.Modules[1].Title)
		assert.Equal(t, "goroutines e canais", course.Modules[1].Content)
	})
}

func TestModulesFromRequests(t *testing.T) {
	modules := ModulesFromRequests([]ModuleRequest{
		{Title: "Um", Order: 2},
		{Title: "Dois"}, // ordem defaults to 0, duplicates allowed
		{Title: "Três"},
	})
	assert.Len(t, modules, 3)
	assert.Equal(t, 2, modules[0].Order)
	assert.Equal(t, 0, modules[1].Order)
	assert.Equal(t, 0, modules[2].Order)
}
