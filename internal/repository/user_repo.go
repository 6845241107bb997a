package repository

import (
	"context"
	"errors"
	"fmt"

	"package_features/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

// updatableUserColumns are overwritten by Update; id and created_at never change.
var updatableUserColumns = []string{"email", "username", "password", "status"}

// Create inserts a new user and fills its ID.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// List returns users ordered by id. An empty status returns every user.
func (r *UserRepository) List(ctx context.Context, status models.Status) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := make([]models.User, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.first(ctx, "select user by id", "id = ?", id)
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "select user by email", "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, op, cond string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %v: %w", op, arg, err)
	}
	return &u, nil
}

// Update overwrites the mutable columns of an existing user.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{ID: u.ID}).
		Select(updatableUserColumns).
		Updates(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user %d: %w", u.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus changes the status of a user and returns the updated row.
func (r *UserRepository) SetStatus(ctx context.Context, id int, status models.Status) (*models.User, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("set status of user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
