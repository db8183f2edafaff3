package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/access"
	"yatube/internal/core/apperr"
	"yatube/internal/core/outbox"
	"yatube/internal/core/pagination"
	postEntity "yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	Images          postPort.ImageStorage
	Cache           postPort.ListingCache
	// RecordEvents stores an outbox event with every write. Only useful when
	// the outbox worker runs.
	RecordEvents bool
	now          func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	images postPort.ImageStorage,
	cache postPort.ListingCache,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		Images:          images,
		Cache:           cache,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost stores a post authored by the caller. Text is required.
func (s *PostService) CreatePost(ctx context.Context, userID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	actor, err := access.ActorID(userID)
	if err != nil {
		return nil, err
	}

	if in.Text == nil {
		return nil, apperr.Invalid("text", "this field is required")
	}
	p := &postEntity.Post{AuthorID: actor, Created: s.now()}
	saved, err := s.apply(ctx, p, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.PostRepository.Create(ctx, p, s.event(outbox.TypePostCreated, 0, actor)); err != nil {
		s.discard(ctx, saved)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	config.Logger.Info("Post created", zap.Uint("postID", p.ID), zap.String("author", userID))

	s.invalidate(ctx)
	return s.GetPost(ctx, p.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p), nil
}

// ListPosts is the API collection of every post, newest first.
func (s *PostService) ListPosts(ctx context.Context, w pagination.Window) ([]*postPort.PostDTO, int64, error) {
	count, err := s.PostRepository.Count(ctx, postPort.Filter{})
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.PostRepository.List(ctx, postPort.Filter{}, w.Limit, w.Offset)
	if err != nil {
		return nil, 0, err
	}
	return postPort.NewPostDTOs(posts), count, nil
}

// GetEditablePost returns the post only when the caller may change it.
func (s *PostService) GetEditablePost(ctx context.Context, userID string, id uint) (*postPort.PostDTO, error) {
	p, err := s.authorized(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p), nil
}

// UpdatePost changes the fields set in in. Author and created never change.
func (s *PostService) UpdatePost(ctx context.Context, userID string, id uint, in postPort.PostInput) (*postPort.PostDTO, error) {
	p, err := s.authorized(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	saved, err := s.apply(ctx, p, in)
	if err != nil {
		return nil, err
	}

	if err := s.PostRepository.Update(ctx, p, s.event(outbox.TypePostUpdated, p.ID, p.AuthorID)); err != nil {
		s.discard(ctx, saved)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	config.Logger.Info("Post updated", zap.Uint("postID", p.ID))

	s.invalidate(ctx)
	return s.GetPost(ctx, p.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID string, id uint) error {
	p, err := s.authorized(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.PostRepository.Delete(ctx, p.ID, s.event(outbox.TypePostDeleted, p.ID, p.AuthorID)); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	config.Logger.Info("Post deleted", zap.Uint("postID", p.ID))

	s.invalidate(ctx)
	return nil
}

// authorized loads the post first so a missing post is NotFound for everyone.
func (s *PostService) authorized(ctx context.Context, userID string, id uint) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	actor, _ := access.ActorID(userID)
	if err := access.Authorize(actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

// apply copies in onto p and returns the path of a newly stored image, if any.
func (s *PostService) apply(ctx context.Context, p *postEntity.Post, in postPort.PostInput) (string, error) {
	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return "", apperr.Invalid("text", "this field may not be blank")
		}
		p.Text = text
	}

	if in.GroupID != nil {
		if _, err := s.GroupRepository.FindByID(ctx, *in.GroupID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return "", apperr.Invalid("group", fmt.Sprintf(`invalid pk "%d" - object does not exist`, *in.GroupID))
			}
			return "", err
		}
		p.GroupID = in.GroupID
		p.Group = nil
	} else if in.SetGroup {
		p.GroupID = nil
		p.Group = nil
	}

	if in.Image == nil {
		return "", nil
	}
	if s.Images == nil {
		return "", apperr.Invalid("image", "image uploads are not enabled")
	}
	rel, err := s.Images.Save(ctx, in.Image.Filename, in.Image.Content)
	if err != nil {
		return "", err
	}
	p.Image = rel
	return rel, nil
}

// discard removes an image stored for a write that did not commit.
func (s *PostService) discard(ctx context.Context, rel string) {
	if rel == "" {
		return
	}
	if err := s.Images.Remove(ctx, rel); err != nil {
		config.Logger.Warn("Failed to remove orphaned image", zap.String("image", rel), zap.Error(err))
	}
}

func (s *PostService) event(eventType string, postID uint, authorID uuid.UUID) *outbox.Event {
	if !s.RecordEvents {
		return nil
	}
	return outbox.NewEvent(eventType, postID, authorID)
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		config.Logger.Warn("Failed to invalidate listing cache", zap.Error(err))
	}
}
