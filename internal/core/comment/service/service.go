package commentapp

import (
	"context"
	"strings"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/access"
	"yatube/internal/core/apperr"
	commentEntity "yatube/internal/core/comment"
	"yatube/internal/core/pagination"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"

	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	now               func() time.Time
}

func NewCommentService(repo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: repo,
		PostRepository:    postRepo,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) CreateComment(ctx context.Context, userID string, postID uint, text string) (*commentPort.CommentDTO, error) {
	actor, err := access.ActorID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Invalid("text", "this field may not be blank")
	}

	c := &commentEntity.Comment{
		PostID:   postID,
		AuthorID: actor,
		Text:     text,
		Created:  s.now(),
	}
	if _, err := s.CommentRepository.Create(ctx, c); err != nil {
		return nil, err
	}
	config.Logger.Info("Comment created", zap.Uint("postID", postID), zap.Uint("commentID", c.ID))

	return s.GetComment(ctx, postID, c.ID)
}

// ListComments returns the comments of a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, w pagination.Window) ([]*commentPort.CommentDTO, int64, error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	count, err := s.CommentRepository.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	comments, err := s.CommentRepository.ListByPost(ctx, postID, w.Limit, w.Offset)
	if err != nil {
		return nil, 0, err
	}
	return commentPort.NewCommentDTOs(comments), count, nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*commentPort.CommentDTO, error) {
	c, err := s.find(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	return commentPort.NewCommentDTO(c), nil
}

// UpdateComment replaces the text. A nil text leaves the comment unchanged.
func (s *CommentService) UpdateComment(ctx context.Context, userID string, postID, commentID uint, text *string) (*commentPort.CommentDTO, error) {
	c, err := s.authorized(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	if text != nil {
		t := strings.TrimSpace(*text)
		if t == "" {
			return nil, apperr.Invalid("text", "this field may not be blank")
		}
		c.Text = t
		if err := s.CommentRepository.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return commentPort.NewCommentDTO(c), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID string, postID, commentID uint) error {
	c, err := s.authorized(ctx, userID, postID, commentID)
	if err != nil {
		return err
	}
	return s.CommentRepository.Delete(ctx, c.ID)
}

// find treats a comment addressed under another post as missing.
func (s *CommentService) find(ctx context.Context, postID, commentID uint) (*commentEntity.Comment, error) {
	c, err := s.CommentRepository.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, apperr.NotFound("comment")
	}
	return c, nil
}

func (s *CommentService) authorized(ctx context.Context, userID string, postID, commentID uint) (*commentEntity.Comment, error) {
	c, err := s.find(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	actor, _ := access.ActorID(userID)
	if err := access.Authorize(actor, c); err != nil {
		return nil, err
	}
	return c, nil
}
