package post

import (
	"context"
	"io"
	"time"

	"yatube/internal/core/outbox"
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"

	"github.com/gofrs/uuid"
)

// MediaURL prefixes stored image paths in responses.
const MediaURL = "/media/"

// Filter narrows a post listing. Nil fields do not filter.
type Filter struct {
	GroupID    *uint
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID // posts by authors this user follows
}

// PostRepository stores and loads posts. Write methods take an optional
// outbox event which is stored in the same transaction as the write.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post, ev *outbox.Event) (*post.Post, error)
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	// List orders by created, newest first. limit < 0 returns every match.
	List(ctx context.Context, f Filter, limit, offset int) ([]*post.Post, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, p *post.Post, ev *outbox.Event) error
	Delete(ctx context.Context, id uint, ev *outbox.Event) error
}

// ListingCache fronts the page-numbered listing of all posts. Get reports the
// cache generation it looked at; Set stores under that generation, so a page
// read before an Invalidate can never be served after it.
type ListingCache interface {
	Get(ctx context.Context, page int) (p *PageDTO, gen uint64, ok bool, err error)
	Set(ctx context.Context, page int, gen uint64, p *PageDTO) error
	Invalidate(ctx context.Context) error
}

// ImageStorage keeps uploaded post images and returns their relative path.
type ImageStorage interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, rel string) error
}

// Upload is an image sent along with a post.
type Upload struct {
	Filename string
	Content  io.Reader
}

// PostInput carries the writable fields of a post. Nil fields are left
// untouched by a partial update; SetGroup distinguishes "group": null from an
// absent group.
type PostInput struct {
	Text     *string
	GroupID  *uint
	SetGroup bool
	Image    *Upload
}

type PostDTO struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	AuthorID   string    `json:"-"`
	GroupID    *uint     `json:"group"`
	GroupSlug  string    `json:"-"`
	GroupTitle string    `json:"-"`
	Image      *string   `json:"image"`
	Created    time.Time `json:"created"`
}

// PageDTO is one page of a web listing.
type PageDTO struct {
	Posts []*PostDTO      `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// NewPostDTO expects Author and Group to be preloaded.
func NewPostDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:       p.ID,
		Text:     p.Text,
		Author:   p.Author.Username,
		AuthorID: p.AuthorID.String(),
		GroupID:  p.GroupID,
		Created:  p.Created,
	}
	if p.Group != nil {
		dto.GroupSlug = p.Group.Slug
		dto.GroupTitle = p.Group.Title
	}
	if p.Image != "" {
		url := MediaURL + p.Image
		dto.Image = &url
	}
	return dto
}

func NewPostDTOs(posts []*post.Post) []*PostDTO {
	out := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}
