package feedapp

import (
	"context"
	"fmt"

	"yatube/internal/config"
	"yatube/internal/core/access"
	"yatube/internal/core/feed"
	"yatube/internal/core/pagination"
	commentPort "yatube/internal/ports/comment"
	feedPort "yatube/internal/ports/feed"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"go.uber.org/zap"
)

// FeedService builds the page-numbered listings of the web UI.
type FeedService struct {
	PostRepository     postPort.PostRepository
	GroupRepository    groupPort.GroupRepository
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	CommentRepository  commentPort.CommentRepository
	// Cache fronts the all scope only. Nil disables caching.
	Cache postPort.ListingCache
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	commentRepo commentPort.CommentRepository,
	cache postPort.ListingCache,
) *FeedService {
	return &FeedService{
		PostRepository:     postRepo,
		GroupRepository:    groupRepo,
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
		CommentRepository:  commentRepo,
		Cache:              cache,
	}
}

// List returns one page of posts in scope, newest first. Unknown groups and
// authors are NotFound; the following scope needs a valid user id.
func (s *FeedService) List(ctx context.Context, scope feed.Scope, token string) (*postPort.PageDTO, error) {
	filter, err := s.filter(ctx, scope)
	if err != nil {
		return nil, err
	}

	if scope.Kind == feed.ScopeAll && s.Cache != nil {
		return s.cachedAll(ctx, token)
	}
	return s.page(ctx, filter, token)
}

func (s *FeedService) ListGroup(ctx context.Context, slug, token string) (*feedPort.GroupPage, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, postPort.Filter{GroupID: &g.ID}, token)
	if err != nil {
		return nil, err
	}
	return &feedPort.GroupPage{Group: groupPort.NewGroupDTO(g), PageDTO: page}, nil
}

// Profile lists an author's posts. viewerID may be empty.
func (s *FeedService) Profile(ctx context.Context, viewerID, username, token string) (*feedPort.ProfilePage, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, postPort.Filter{AuthorID: &author.ID}, token)
	if err != nil {
		return nil, err
	}

	profile := &feedPort.ProfilePage{
		Author:    userPort.NewUserDTO(author),
		PostCount: page.Page.Count,
		PageDTO:   page,
	}
	profile.Author.Email = ""
	if viewer, err := access.ActorID(viewerID); err == nil {
		following, err := s.FollowerRepository.IsFollowing(ctx, viewer, author.ID)
		if err != nil {
			return nil, err
		}
		profile.Following = following
	}
	return profile, nil
}

// FollowFeed lists posts by the authors userID follows.
func (s *FeedService) FollowFeed(ctx context.Context, userID, token string) (*postPort.PageDTO, error) {
	return s.List(ctx, feed.Following(userID), token)
}

// PostDetail returns the post, its author's post count and its comments.
func (s *FeedService) PostDetail(ctx context.Context, id uint) (*feedPort.PostDetail, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.PostRepository.Count(ctx, postPort.Filter{AuthorID: &p.AuthorID})
	if err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.ListByPost(ctx, p.ID, -1, 0)
	if err != nil {
		return nil, err
	}
	return &feedPort.PostDetail{
		Post:        postPort.NewPostDTO(p),
		AuthorPosts: count,
		Comments:    commentPort.NewCommentDTOs(comments),
	}, nil
}

func (s *FeedService) filter(ctx context.Context, scope feed.Scope) (postPort.Filter, error) {
	switch scope.Kind {
	case feed.ScopeAll:
		return postPort.Filter{}, nil
	case feed.ScopeGroup:
		g, err := s.GroupRepository.FindBySlug(ctx, scope.Key)
		if err != nil {
			return postPort.Filter{}, err
		}
		return postPort.Filter{GroupID: &g.ID}, nil
	case feed.ScopeAuthor:
		u, err := s.UserRepository.FindByUsername(ctx, scope.Key)
		if err != nil {
			return postPort.Filter{}, err
		}
		return postPort.Filter{AuthorID: &u.ID}, nil
	case feed.ScopeFollowing:
		id, err := access.ActorID(scope.Key)
		if err != nil {
			return postPort.Filter{}, err
		}
		return postPort.Filter{FollowerID: &id}, nil
	default:
		return postPort.Filter{}, fmt.Errorf("unknown feed scope %q", scope.Kind)
	}
}

// cachedAll keys entries by the requested page number, so a hit costs no
// query at all. A miss is stored under the generation seen before the query.
func (s *FeedService) cachedAll(ctx context.Context, token string) (*postPort.PageDTO, error) {
	number := pagination.ParseNumber(token)

	cached, gen, ok, err := s.Cache.Get(ctx, number)
	if err != nil {
		config.Logger.Warn("Listing cache read failed", zap.Int("page", number), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	page, err := s.page(ctx, postPort.Filter{}, token)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, number, gen, page); err != nil {
		config.Logger.Warn("Listing cache write failed", zap.Int("page", number), zap.Error(err))
	}
	return page, nil
}

func (s *FeedService) page(ctx context.Context, f postPort.Filter, token string) (*postPort.PageDTO, error) {
	count, err := s.PostRepository.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	page := pagination.Resolve(token, count, pagination.PageSize)

	posts, err := s.PostRepository.List(ctx, f, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return &postPort.PageDTO{Posts: postPort.NewPostDTOs(posts), Page: page}, nil
}
