package comment

import (
	"time"

	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"not null;index"`
	Post     post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"` // comments go with their post
	AuthorID uuid.UUID `gorm:"type:char(36);not null;index"`
	Author   user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null;index"`
}

func (c *Comment) OwnerID() uuid.UUID { return c.AuthorID }
