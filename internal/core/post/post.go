package post

import (
	"time"

	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

type Post struct {
	ID       uint         `gorm:"primaryKey"`
	Text     string       `gorm:"type:text;not null"`
	AuthorID uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author   user.User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uint        `gorm:"index"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	// Image is a path relative to the media root, empty when absent.
	Image     string    `gorm:"type:varchar(255)"`
	Created   time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (p *Post) OwnerID() uuid.UUID { return p.AuthorID }
