package services

import (
	"errors"
	"fmt"

	"repohub/app/models"
	"repohub/app/repo"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// Create registers a new account. Emails are not deduplicated; signup
// always succeeds for well-formed input.
func (s *UserService) Create(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate compares the password against every account registered
// under the email, oldest first, and returns the first match. A
// non-match is ErrInvalidCredentials, never a partial result.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	users, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) == nil {
			return &users[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}
