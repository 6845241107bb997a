package service

import (
	"context"
	"errors"

	"package_features/internal/models"
	"package_features/internal/repository"
)

type FeatureService struct {
	repo repository.Features
}

func NewFeatureService(repo repository.Features) *FeatureService {
	return &FeatureService{repo: repo}
}

// Create stores a new active feature. Empty names are accepted.
func (s *FeatureService) Create(ctx context.Context, in FeatureInput) (*models.PackageFeature, error) {
	f := &models.PackageFeature{
		Name:        in.Name,
		Description: in.Description,
		Status:      models.StatusActive,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeatureService) List(ctx context.Context, status models.Status) ([]models.PackageFeature, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

func (s *FeatureService) GetByID(ctx context.Context, id int) (*models.PackageFeature, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFeatureNotFound
	}
	return f, nil
}

func (s *FeatureService) Update(ctx context.Context, id int, p FeaturePatch) (*models.PackageFeature, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if err := s.repo.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, err
	}
	return f, nil
}

// SoftDelete marks the feature inactive; the record is kept.
func (s *FeatureService) SoftDelete(ctx context.Context, id int) (*models.PackageFeature, error) {
	f, err := s.repo.SetStatus(ctx, id, models.StatusInactive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, err
	}
	return f, nil
}
