package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"package_features/internal/models"
	"package_features/internal/repository"
)

type UserService struct {
	repo repository.Users
}

func NewUserService(repo repository.Users) *UserService {
	return &UserService{repo: repo}
}

// Create registers a user with a bcrypt-hashed password. Emails are unique.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || in.Password == "" || username == "" {
		return nil, ErrMissingFields
	}
	status, err := statusOrDefault(in.Status)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Status:       status,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// List returns users, optionally restricted to one status.
func (s *UserService) List(ctx context.Context, status models.Status) ([]models.User, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update applies the non-nil fields of p. The stored password hash is kept
// unless a new non-empty password is supplied.
func (s *UserService) Update(ctx context.Context, id int, p UserPatch) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if email == "" {
			return nil, ErrMissingFields
		}
		if email != u.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, ErrEmailTaken
			}
		}
		u.Email = email
	}
	if p.Username != nil {
		username := strings.TrimSpace(*p.Username)
		if username == "" {
			return nil, ErrMissingFields
		}
		u.Username = username
	}
	if p.Password != nil && *p.Password != "" {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		u.PasswordHash = hash
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		u.Status = *p.Status
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// SoftDelete marks the user inactive; the record is kept.
func (s *UserService) SoftDelete(ctx context.Context, id int) (*models.User, error) {
	u, err := s.repo.SetStatus(ctx, id, models.StatusInactive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func statusOrDefault(s models.Status) (models.Status, error) {
	if s == "" {
		return models.StatusActive, nil
	}
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
