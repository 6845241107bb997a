package repository

import (
	"context"
	"errors"
	"fmt"

	"package_features/internal/models"

	"gorm.io/gorm"
)

type FeatureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

var _ Features = (*FeatureRepository)(nil)

func (r *FeatureRepository) Create(ctx context.Context, f *models.PackageFeature) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("insert feature %q: %w", f.Name, err)
	}
	return nil
}

// List returns features ordered by id. An empty status returns every feature.
func (r *FeatureRepository) List(ctx context.Context, status models.Status) ([]models.PackageFeature, error) {
	q := r.db.WithContext(ctx).Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := make([]models.PackageFeature, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	return out, nil
}

// GetByID returns (nil, nil) if the feature does not exist.
func (r *FeatureRepository) GetByID(ctx context.Context, id int) (*models.PackageFeature, error) {
	var f models.PackageFeature
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select feature %d: %w", id, err)
	}
	return &f, nil
}

// Update overwrites name and description, including empty values.
func (r *FeatureRepository) Update(ctx context.Context, f *models.PackageFeature) error {
	res := r.db.WithContext(ctx).
		Model(&models.PackageFeature{ID: f.ID}).
		Select("name", "description").
		Updates(f)
	if res.Error != nil {
		return fmt.Errorf("update feature %d: %w", f.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FeatureRepository) SetStatus(ctx context.Context, id int, status models.Status) (*models.PackageFeature, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PackageFeature{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("set status of feature %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}
