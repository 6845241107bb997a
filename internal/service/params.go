package service

import (
	"time"

	"package_features/internal/models"
)

// UserInput carries a registration request.
type UserInput struct {
	Email    string
	Password string
	Username string
	Status   models.Status // empty means active
}

// UserPatch carries a profile update; nil fields are left unchanged.
type UserPatch struct {
	Email    *string
	Password *string // re-hashed only when non-empty
	Username *string
	Status   *models.Status
}

type FeatureInput struct {
	Name        string
	Description string
}

// FeaturePatch overwrites every non-nil field, empty strings included.
type FeaturePatch struct {
	Name        *string
	Description *string
}

// LogFilter supports audit history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "" or one of the models.Event* constants
}
