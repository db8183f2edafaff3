package database

import (
	"context"

	"yatube/internal/core/follower"
	"yatube/internal/core/outbox"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post, ev *outbox.Event) (*post.Post, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		if ev != nil {
			ev.PostID = p.ID
			return tx.Create(ev).Error
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "post")
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, translate(err, "post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, f postPort.Filter, limit, offset int) ([]*post.Post, error) {
	var posts []*post.Post
	q := repo.filtered(ctx, f).
		Preload("Author").
		Preload("Group").
		Order("created DESC").
		Order("id DESC")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, f postPort.Filter) (int64, error) {
	var count int64
	if err := repo.filtered(ctx, f).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post, ev *outbox.Event) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Omit(clause.Associations).Select("Text", "GroupID", "Image").Updates(p).Error; err != nil {
			return translate(err, "post")
		}
		if ev != nil {
			return tx.Create(ev).Error
		}
		return nil
	})
}

// Delete removes the post. Its comments are removed by the ON DELETE CASCADE
// foreign key on comments.post_id.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uint, ev *outbox.Event) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&post.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "post")
		}
		if ev != nil {
			return tx.Create(ev).Error
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) filtered(ctx context.Context, f postPort.Filter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{})
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.FollowerID != nil {
		following := repo.db.Model(&follower.Follow{}).Select("author_id").Where("user_id = ?", *f.FollowerID)
		q = q.Where("author_id IN (?)", following)
	}
	return q
}
