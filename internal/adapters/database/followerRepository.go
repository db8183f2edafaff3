package database

import (
	"context"
	"strings"

	"yatube/internal/core/apperr"
	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase implements FollowerRepository on gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

// FollowUser checks and inserts in one transaction. The uniq_follow index
// still rejects a concurrent duplicate that slips past the check.
func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follow) (*follower.Follow, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&follower.Follow{}).
			Where("user_id = ? AND author_id = ?", f.UserID, f.AuthorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrConflict
		}
		return tx.Omit(clause.Associations).Create(f).Error
	})
	if err != nil {
		return nil, translate(err, "follow")
	}
	return f, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, userID, authorID uuid.UUID) error {
	return repo.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&follower.Follow{}).Error
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) ListFollowing(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*follower.Follow, error) {
	var follows []*follower.Follow
	q := repo.following(ctx, userID, search).
		Preload("User").
		Preload("Author").
		Order("follows.id")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

func (repo *FollowerRepositoryDatabase) CountFollowing(ctx context.Context, userID uuid.UUID, search string) (int64, error) {
	var count int64
	if err := repo.following(ctx, userID, search).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *FollowerRepositoryDatabase) following(ctx context.Context, userID uuid.UUID, search string) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&follower.Follow{}).Where("follows.user_id = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.
			Joins("JOIN users AS followers ON followers.id = follows.user_id").
			Joins("JOIN users AS authors ON authors.id = follows.author_id").
			Where("(LOWER(followers.username) LIKE ? OR LOWER(authors.username) LIKE ?)", like, like)
	}
	return q
}
