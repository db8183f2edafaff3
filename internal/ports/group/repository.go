package group

import (
	"context"

	"yatube/internal/core/group"
)

// GroupRepository stores and loads groups.
type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	FindByID(ctx context.Context, id uint) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	// List returns every group when limit < 0.
	List(ctx context.Context, limit, offset int) ([]*group.Group, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type GroupDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func NewGroupDTO(g *group.Group) *GroupDTO {
	return &GroupDTO{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
