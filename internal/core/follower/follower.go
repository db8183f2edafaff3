package follower

import (
	"time"

	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follow is a directed edge: User receives Author's posts in their feed.
// The pair is unique and a user can never follow themselves.
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow;index;check:no_self_follow,user_id <> author_id"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
