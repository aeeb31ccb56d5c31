package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// SponsorRepository is the sponsor data access interface
type SponsorRepository interface {
	Create(ctx context.Context, sponsor *model.Sponsor) error
	GetByID(ctx context.Context, siteID, id uint) (*model.Sponsor, error)
	ListBySite(ctx context.Context, siteID uint, activeOnly bool) ([]model.Sponsor, error)
	Update(ctx context.Context, sponsor *model.Sponsor) error
	Delete(ctx context.Context, siteID, id uint) (bool, error)
}

type sponsorRepo struct {
	db *gorm.DB
}

// NewSponsorRepo creates a SponsorRepository backed by gorm
func NewSponsorRepo(db *gorm.DB) SponsorRepository {
	return &sponsorRepo{db: db}
}

func (r *sponsorRepo) Create(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *sponsorRepo) GetByID(ctx context.Context, siteID, id uint) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		First(&sponsor, id).Error
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *sponsorRepo) ListBySite(ctx context.Context, siteID uint, activeOnly bool) ([]model.Sponsor, error) {
	sponsors := []model.Sponsor{}
	q := r.db.WithContext(ctx).Where("site_id = ?", siteID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Order("id").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (r *sponsorRepo) Update(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Save(sponsor).Error
}

func (r *sponsorRepo) Delete(ctx context.Context, siteID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&model.Sponsor{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
