package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a course with its ordered content modules.
type Course struct {
	ID        uuid.UUID `json:"_id"`
	Title     string    `json:"titulo"`
	Desc      string    `json:"descricao,omitempty"`
	Category  string    `json:"categoria,omitempty"`
	Duration  int       `json:"duracao"` // hours
	Price     float64   `json:"preco"`
	Image     string    `json:"imagem,omitempty"`
	Active    bool      `json:"ativo"`
	Modules   []Module  `json:"modulos"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Module is a content unit owned by a course. Modules have no identity
// outside their course: deleting the course removes them.
type Module struct {
	ID      uuid.UUID `json:"_id"`
	Title   string    `json:"titulo"`
	Desc    string    `json:"descricao,omitempty"`
	Order   int       `json:"ordem"`
	Content string    `json:"conteudo,omitempty"`
}

// CourseSummary carries the course display fields resolved into
// enrollment listings.
type CourseSummary struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"titulo"`
	Desc  string    `json:"descricao,omitempty"`
}

// ModuleRequest is an embedded module in a course payload.
type ModuleRequest struct {
	Title   string `json:"titulo" binding:"required,max=200"`
	Desc    string `json:"descricao" binding:"omitempty,max=1000"`
	Order   int    `json:"ordem" binding:"omitempty,min=0"`
	Content string `json:"conteudo" binding:"omitempty"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title    string          `json:"titulo" binding:"required,max=200"`
	Desc     string          `json:"descricao" binding:"omitempty,max=2000"`
	Category string          `json:"categoria" binding:"omitempty,max=100"`
	Duration *int            `json:"duracao" binding:"omitempty,min=0"`
	Price    *float64        `json:"preco" binding:"omitempty,min=0"`
	Image    string          `json:"imagem" binding:"omitempty,max=500"`
	Modules  []ModuleRequest `json:"modulos" binding:"omitempty,dive"`
}

// UpdateCourseRequest is the payload for partially updating a course.
// Omitted fields keep their stored value; providing "modulos" replaces
// the whole module list.
type UpdateCourseRequest struct {
	Title    *string          `json:"titulo" binding:"omitempty,min=1,max=200"`
	Desc     *string          `json:"descricao" binding:"omitempty,max=2000"`
	Category *string          `json:"categoria" binding:"omitempty,max=100"`
	Duration *int             `json:"duracao" binding:"omitempty,min=0"`
	Price    *float64         `json:"preco" binding:"omitempty,min=0"`
	Image    *string          `json:"imagem" binding:"omitempty,max=500"`
	Active   *bool            `json:"ativo" binding:"omitempty"`
	Modules  *[]ModuleRequest `json:"modulos" binding:"omitempty,dive"`
}

// ApplyUpdate merges the provided fields over the course record.
// Update is a merge, not a replace: nil pointers leave the field alone.
func (c *Course) ApplyUpdate(req *UpdateCourseRequest) {
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Desc != nil {
		c.Desc = *req.Desc
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	if req.Price != nil {
		c.Price = *req.Price
	}
	if req.Image != nil {
		c.Image = *req.Image
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if req.Modules != nil {
		c.Modules = ModulesFromRequests(*req.Modules)
	}
}

// ModulesFromRequests converts module payloads into module entities.
func ModulesFromRequests(reqs []ModuleRequest) []Module {
	modules := make([]Module, len(reqs))
	for i, m := range reqs {
		modules[i] = Module{
			Title:   m.Title,
			Desc:    m.Desc,
			Order:   m.Order,
			Content: m.Content,
		}
	}
	return modules
}
