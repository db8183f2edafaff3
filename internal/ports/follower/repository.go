package follower

import (
	"context"

	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
)

// FollowerRepository stores follow edges.
type FollowerRepository interface {
	// FollowUser inserts the edge and returns apperr.ErrConflict if it exists.
	FollowUser(ctx context.Context, f *follower.Follow) (*follower.Follow, error)
	// UnfollowUser removes the edge; removing a missing edge is not an error.
	UnfollowUser(ctx context.Context, userID, authorID uuid.UUID) error
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	// ListFollowing returns userID's edges with both users preloaded, filtered
	// by a case-insensitive username substring when search is not empty.
	ListFollowing(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*follower.Follow, error)
	CountFollowing(ctx context.Context, userID uuid.UUID, search string) (int64, error)
}

type FollowDTO struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

func NewFollowDTO(f *follower.Follow) *FollowDTO {
	return &FollowDTO{
		User:      f.User.Username,
		Following: f.Author.Username,
	}
}
