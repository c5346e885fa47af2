package handler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cursolivre/cursolivre-backend/internal/model"
)

func catalogFixtureCourse() *model.Course {
	return &model.Course{
		ID:    uuid.New(),
		Title: "Curso de Go",
		Desc:  "Fundamentos da linguagem",
		Modules: []model.Module{
			{Title: "Ambiente", Order: 0},
			{Title: "Tipos", Order: 1},
		},
	}
}

func TestBuildCatalogCourseWithoutEnrollment(t *testing.T) {
	course := catalogFixtureCourse()

	view := buildCatalogCourse(course, "")

	assert.Equal(t, course.ID, view.ID)
	assert.Equal(t, "Curso de Go", view.Title)
	assert.Equal(t, "Fundamentos da linguagem", view.Description)
	assert.Equal(t, "nenhuma", view.Status)
	assert.Equal(t, 2, view.ModuleCount)
	assert.Nil(t, view.Modules)
}

func TestBuildCatalogCourseHidesModulesWhilePending(t *testing.T) {
	view := buildCatalogCourse(catalogFixtureCourse(), model.EnrollmentPending)

	assert.Equal(t, "pendente", view.Status)
	assert.Nil(t, view.Modules)
	assert.Equal(t, 2, view.ModuleCount)
}

func TestBuildCatalogCourseShowsModulesWhenApproved(t *testing.T) {
	view := buildCatalogCourse(catalogFixtureCourse(), model.EnrollmentApproved)

	assert.Equal(t, "aprovado", view.Status)
	assert.Len(t, view.Modules, 2)
}

func TestBuildCatalogCourseRejectedStaysHidden(t *testing.T) {
	view := buildCatalogCourse(catalogFixtureCourse(), model.EnrollmentRejected)

	assert.Equal(t, "rejeitado", view.Status)
	assert.Nil(t, view.Modules)
}
