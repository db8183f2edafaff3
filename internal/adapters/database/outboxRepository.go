package database

import (
	"context"
	"time"

	"yatube/internal/core/outbox"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// OutboxRepositoryDatabase reads the post_outbox table.
type OutboxRepositoryDatabase struct {
	db *gorm.DB
}

func NewOutboxRepositoryDatabase(db *gorm.DB) *OutboxRepositoryDatabase {
	return &OutboxRepositoryDatabase{db: db}
}

// GetPending returns the oldest pending events first.
func (repo *OutboxRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var events []*outbox.Event
	if err := repo.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *OutboxRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return repo.db.WithContext(ctx).Model(&outbox.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": outbox.StatusDone, "processed_at": &now}).Error
}
