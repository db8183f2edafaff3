package outbox

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	TypePostCreated = "post.created"
	TypePostUpdated = "post.updated"
	TypePostDeleted = "post.deleted"

	StatusPending = "pending"
	StatusDone    = "done"
)

// Event is a post change recorded in the same transaction as the change
// itself and published to the broker later by the outbox worker. PostID has no
// foreign key so deletions can be recorded too.
type Event struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	Type        string     `gorm:"type:varchar(32);not null"`
	PostID      uint       `gorm:"not null"`
	AuthorID    uuid.UUID  `gorm:"type:char(36);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Event) TableName() string { return "post_outbox" }

// NewEvent builds a pending event. The post id may be filled in later by the
// repository once the row exists.
func NewEvent(eventType string, postID uint, authorID uuid.UUID) *Event {
	return &Event{
		ID:       uuid.Must(uuid.NewV4()),
		Type:     eventType,
		PostID:   postID,
		AuthorID: authorID,
		Status:   StatusPending,
	}
}
