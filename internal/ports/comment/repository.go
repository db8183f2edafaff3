package comment

import (
	"context"
	"time"

	"yatube/internal/core/comment"
)

// CommentRepository stores and loads comments.
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id uint) (*comment.Comment, error)
	// ListByPost orders by created, newest first. limit < 0 returns every comment.
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*comment.Comment, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	Update(ctx context.Context, c *comment.Comment) error
	Delete(ctx context.Context, id uint) error
}

type CommentDTO struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// NewCommentDTO expects Author to be preloaded.
func NewCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:      c.ID,
		Author:  c.Author.Username,
		Post:    c.PostID,
		Text:    c.Text,
		Created: c.Created,
	}
}

func NewCommentDTOs(comments []*comment.Comment) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentDTO(c))
	}
	return out
}
