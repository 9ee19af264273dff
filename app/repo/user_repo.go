package repo

import (
	"repohub/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(u *models.User) error { return r.db.Create(u).Error }

// FindByEmail returns every account registered under the email, oldest
// first. Duplicates are allowed at signup, so the caller picks a match.
func (r *UserRepository) FindByEmail(email string) ([]models.User, error) {
	var users []models.User
	return users, r.db.Where("email = ?", email).Order("id").Find(&users).Error
}
