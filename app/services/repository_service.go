package services

import (
	"errors"
	"fmt"
	"io"

	"repohub/app/history"
	"repohub/app/models"
	"repohub/app/repo"
	"repohub/app/storage"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("repository not found")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

type RepositoryService struct {
	repos   *repo.RepositoryRepository
	store   *storage.Store
	changes *history.Log
}

func NewRepositoryService(repos *repo.RepositoryRepository, store *storage.Store, changes *history.Log) *RepositoryService {
	return &RepositoryService{repos: repos, store: store, changes: changes}
}

// Create saves the upload at the top level of the storage root under
// its sanitized name, then inserts the record. The two steps are not
// transactional; a failure after the save leaves an orphaned file.
func (s *RepositoryService) Create(name, description, rawFilename string, src io.Reader) (*models.Repository, error) {
	if !storage.AllowedExtension(rawFilename) {
		return nil, ErrExtensionNotAllowed
	}
	filename := storage.SanitizeFilename(rawFilename)
	if err := s.store.SaveUpload(filename, src); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	rec := &models.Repository{Name: name, Description: description, Filename: filename}
	if err := s.repos.Create(rec); err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return rec, nil
}

func (s *RepositoryService) List() ([]models.Repository, error) {
	return s.repos.List()
}

// Detail bundles everything the detail page shows: the record, the
// files under its per-id subdirectory, and its change history.
type Detail struct {
	Repo    *models.Repository
	Files   []string
	Changes []string
}

func (s *RepositoryService) Detail(id uint) (*Detail, error) {
	rec, err := s.repos.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find repository: %w", err)
	}
	files, err := s.store.ListFilesUnder(id)
	if err != nil {
		return nil, err
	}
	changes, err := s.changes.ForRepository(id)
	if err != nil {
		return nil, err
	}
	return &Detail{Repo: rec, Files: files, Changes: changes}, nil
}

// Delete removes the top-level upload file when present, then the
// record. A missing record is ErrNotFound; a missing file is not an
// error.
func (s *RepositoryService) Delete(id uint) error {
	rec, err := s.repos.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find repository: %w", err)
	}
	if rec.Filename != "" {
		if err := s.store.DeleteFile(rec.Filename); err != nil {
			return err
		}
	}
	if err := s.repos.Delete(id); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	return nil
}
