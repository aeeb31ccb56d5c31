package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// FeatureRepository is the site feature flag data access interface
type FeatureRepository interface {
	Create(ctx context.Context, feature *model.SiteFeature) error
	GetByID(ctx context.Context, id uint) (*model.SiteFeature, error)
	GetBySiteAndName(ctx context.Context, siteID uint, name string) (*model.SiteFeature, error)
	ListBySite(ctx context.Context, siteID uint) ([]model.SiteFeature, error)
	Update(ctx context.Context, feature *model.SiteFeature) error
	Delete(ctx context.Context, id uint) error
}

type featureRepo struct {
	db *gorm.DB
}

// NewFeatureRepo creates a FeatureRepository backed by gorm
func NewFeatureRepo(db *gorm.DB) FeatureRepository {
	return &featureRepo{db: db}
}

func (r *featureRepo) Create(ctx context.Context, feature *model.SiteFeature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

func (r *featureRepo) GetByID(ctx context.Context, id uint) (*model.SiteFeature, error) {
	var feature model.SiteFeature
	if err := r.db.WithContext(ctx).First(&feature, id).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *featureRepo) GetBySiteAndName(ctx context.Context, siteID uint, name string) (*model.SiteFeature, error) {
	var feature model.SiteFeature
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND feature = ?", siteID, name).
		First(&feature).Error
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *featureRepo) ListBySite(ctx context.Context, siteID uint) ([]model.SiteFeature, error) {
	features := []model.SiteFeature{}
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("feature").Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

func (r *featureRepo) Update(ctx context.Context, feature *model.SiteFeature) error {
	return r.db.WithContext(ctx).Save(feature).Error
}

func (r *featureRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.SiteFeature{}, id).Error
}
