package service

import (
	"context"

	"package_features/internal/config"
	"package_features/internal/models"
	"package_features/internal/repository"
)

type Authorization interface {
	Login(ctx context.Context, email, password string) (string, Identity, error)
	IssueToken(id Identity) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// Users exposes user registration, lookup and profile changes.
type Users interface {
	Create(ctx context.Context, in UserInput) (*models.User, error)
	List(ctx context.Context, status models.Status) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int, p UserPatch) (*models.User, error)
	SoftDelete(ctx context.Context, id int) (*models.User, error)
}

// Features exposes the package feature catalogue.
type Features interface {
	Create(ctx context.Context, in FeatureInput) (*models.PackageFeature, error)
	List(ctx context.Context, status models.Status) ([]models.PackageFeature, error)
	GetByID(ctx context.Context, id int) (*models.PackageFeature, error)
	Update(ctx context.Context, id int, p FeaturePatch) (*models.PackageFeature, error)
	SoftDelete(ctx context.Context, id int) (*models.PackageFeature, error)
}

// EventLog exposes the append-only audit log with filtering access.
type EventLog interface {
	Record(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users    Users
	Features Features
	EventLog EventLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth config.AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth.JWTSecret, auth.TokenTTL),
		Users:         NewUserService(repos.Users),
		Features:      NewFeatureService(repos.Features),
		EventLog:      NewEventLogService(repos.EventRepo),
	}
}
