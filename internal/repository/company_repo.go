package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// CompanyRepository is the employer profile data access interface
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, siteID, id uint) (*model.Company, error)
	ListBySite(ctx context.Context, siteID uint) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, siteID, id uint) (bool, error)
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo creates a CompanyRepository backed by gorm
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, siteID, id uint) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) ListBySite(ctx context.Context, siteID uint) ([]model.Company, error) {
	companies := []model.Company{}
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepo) Delete(ctx context.Context, siteID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&model.Company{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
