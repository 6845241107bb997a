package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"package_features/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by write operations targeting a missing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the users.email unique index rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
)

type Users interface {
	Create(ctx context.Context, u *models.User) error
	List(ctx context.Context, status models.Status) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	SetStatus(ctx context.Context, id int, status models.Status) (*models.User, error)
}

type Features interface {
	Create(ctx context.Context, f *models.PackageFeature) error
	List(ctx context.Context, status models.Status) ([]models.PackageFeature, error)
	GetByID(ctx context.Context, id int) (*models.PackageFeature, error)
	Update(ctx context.Context, f *models.PackageFeature) error
	SetStatus(ctx context.Context, id int, status models.Status) (*models.PackageFeature, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users     Users
	Features  Features
	EventRepo EventRepo
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Features:  NewFeatureRepository(db),
		EventRepo: NewEventRepository(db),
	}
}

// isUniqueViolation recognises unique-constraint failures from both dialects.
// gorm only translates errors for drivers it knows, so the sqlite message is matched too.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
