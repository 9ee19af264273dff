package repo

import (
	"repohub/app/models"

	"gorm.io/gorm"
)

type RepositoryRepository struct{ db *gorm.DB }

func NewRepositoryRepository(db *gorm.DB) *RepositoryRepository {
	return &RepositoryRepository{db: db}
}

func (r *RepositoryRepository) Create(rec *models.Repository) error {
	return r.db.Create(rec).Error
}

func (r *RepositoryRepository) List() ([]models.Repository, error) {
	var recs []models.Repository
	return recs, r.db.Find(&recs).Error
}

func (r *RepositoryRepository) FindByID(id uint) (*models.Repository, error) {
	var rec models.Repository
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete is a no-op when the record is already gone.
func (r *RepositoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Repository{}, id).Error
}
