package models

import "time"

// Repository is a named upload record: one file attached at creation,
// later edits may add files under the per-id subdirectory of the
// storage root. Not a version-control repository.
type Repository struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:191;not null"`
	Description string `gorm:"size:1024"`
	Filename    string `gorm:"size:255"`
	CreatedAt   time.Time
}
