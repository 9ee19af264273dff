package models

import "time"

// User is a signup record. Email is the login key; uniqueness is not
// enforced, duplicate emails are permitted and login returns the first
// account whose password matches.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:191;not null"`
	Email        string `gorm:"size:191;not null;index"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}
