package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// JobRepository is the job listing data access interface
type JobRepository interface {
	Create(ctx context.Context, job *model.JobListing) error
	GetByID(ctx context.Context, siteID, id uint) (*model.JobListing, error)
	ListBySite(ctx context.Context, siteID uint) ([]model.JobListing, error)
	// ListPublic returns ACTIVE listings whose company is active
	ListPublic(ctx context.Context, siteID uint) ([]model.JobListing, error)
	Update(ctx context.Context, job *model.JobListing) error
	Delete(ctx context.Context, siteID, id uint) (bool, error)
}

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo creates a JobRepository backed by gorm
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.JobListing) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, siteID, id uint) (*model.JobListing, error) {
	var job model.JobListing
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("site_id = ?", siteID).
		First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) ListBySite(ctx context.Context, siteID uint) ([]model.JobListing, error) {
	jobs := []model.JobListing{}
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("site_id = ?", siteID).
		Order("id").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) ListPublic(ctx context.Context, siteID uint) ([]model.JobListing, error) {
	jobs := []model.JobListing{}
	err := r.db.WithContext(ctx).
		Preload("Company").
		Joins("JOIN companies ON companies.id = job_listings.company_id").
		Where("job_listings.site_id = ? AND job_listings.status = ? AND companies.is_active = ?",
			siteID, model.JobStatusActive, true).
		Order("job_listings.id").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.JobListing) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, siteID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&model.JobListing{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
