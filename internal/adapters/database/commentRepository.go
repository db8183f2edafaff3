package database

import (
	"context"

	"yatube/internal/core/comment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepositoryDatabase implements CommentRepository on gorm.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, translate(err, "comment")
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uint) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).Preload("Author").First(&c, id).Error; err != nil {
		return nil, translate(err, "comment")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	q := repo.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC").
		Order("id DESC")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	return repo.db.WithContext(ctx).Model(c).Omit(clause.Associations).Select("Text").Updates(c).Error
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	res := repo.db.WithContext(ctx).Delete(&comment.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "comment")
	}
	return nil
}
