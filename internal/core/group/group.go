package group

// Group is a community posts can be filed under. Groups are managed from the
// admin CLI only.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null"`
	Slug        string `gorm:"type:varchar(50);uniqueIndex;not null"`
}
