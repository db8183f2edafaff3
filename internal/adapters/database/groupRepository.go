package database

import (
	"context"

	"yatube/internal/core/group"

	"gorm.io/gorm"
)

// GroupRepositoryDatabase implements GroupRepository on gorm.
type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, translate(err, "group")
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uint) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err, "group")
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translate(err, "group")
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context, limit, offset int) ([]*group.Group, error) {
	var groups []*group.Group
	q := repo.db.WithContext(ctx).Order("id")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *GroupRepositoryDatabase) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&group.Group{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the group; its posts keep existing with no group.
func (repo *GroupRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	res := repo.db.WithContext(ctx).Delete(&group.Group{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "group")
	}
	return nil
}
