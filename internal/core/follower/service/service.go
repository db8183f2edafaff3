package followerapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/config"
	"yatube/internal/core/access"
	"yatube/internal/core/apperr"
	followerEntity "yatube/internal/core/follower"
	"yatube/internal/core/pagination"
	followerPort "yatube/internal/ports/follower"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var (
	errSelfFollow    = apperr.Invalid("", "cannot follow yourself")
	errAlreadyFollow = apperr.Invalid("", "already following this author")
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
	}
}

// FollowUser creates the edge or fails with a validation error when the
// author is unknown, is the caller, or is already followed.
func (s *FollowerService) FollowUser(ctx context.Context, userID, authorUsername string) (*followerPort.FollowDTO, error) {
	actor, err := access.ActorID(userID)
	if err != nil {
		return nil, err
	}

	authorUsername = strings.TrimSpace(authorUsername)
	if authorUsername == "" {
		return nil, apperr.Invalid("following", "this field is required")
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Invalid("following", fmt.Sprintf("object with username=%s does not exist", authorUsername))
		}
		return nil, err
	}
	if author.ID == actor {
		config.Logger.Warn("Cannot follow yourself", zap.String("userID", userID))
		return nil, errSelfFollow
	}

	f, err := s.FollowerRepository.FollowUser(ctx, &followerEntity.Follow{UserID: actor, AuthorID: author.ID})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, errAlreadyFollow
		}
		return nil, err
	}

	follower, err := s.UserRepository.FindByID(ctx, actor)
	if err != nil {
		return nil, err
	}
	f.User = *follower
	f.Author = *author
	return followerPort.NewFollowDTO(f), nil
}

// FollowIfAbsent is get-or-create: following yourself or an author you
// already follow does nothing.
func (s *FollowerService) FollowIfAbsent(ctx context.Context, userID, authorUsername string) error {
	actor, err := access.ActorID(userID)
	if err != nil {
		return err
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.ID == actor {
		return nil
	}

	_, err = s.FollowerRepository.FollowUser(ctx, &followerEntity.Follow{UserID: actor, AuthorID: author.ID})
	if errors.Is(err, apperr.ErrConflict) {
		return nil
	}
	return err
}

// UnfollowUser removes the edge if there is one.
func (s *FollowerService) UnfollowUser(ctx context.Context, userID, authorUsername string) error {
	actor, err := access.ActorID(userID)
	if err != nil {
		return err
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.FollowerRepository.UnfollowUser(ctx, actor, author.ID)
}

// IsFollowing is false for an anonymous caller.
func (s *FollowerService) IsFollowing(ctx context.Context, userID string, authorID uuid.UUID) (bool, error) {
	actor, err := access.ActorID(userID)
	if err != nil {
		return false, nil
	}
	return s.FollowerRepository.IsFollowing(ctx, actor, authorID)
}

// ListFollowing returns the caller's own edges. search matches either
// username, case-insensitively.
func (s *FollowerService) ListFollowing(ctx context.Context, userID, search string, w pagination.Window) ([]*followerPort.FollowDTO, int64, error) {
	actor, err := access.ActorID(userID)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.FollowerRepository.CountFollowing(ctx, actor, search)
	if err != nil {
		return nil, 0, err
	}
	follows, err := s.FollowerRepository.ListFollowing(ctx, actor, search, w.Limit, w.Offset)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*followerPort.FollowDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, followerPort.NewFollowDTO(f))
	}
	return dtos, count, nil
}
