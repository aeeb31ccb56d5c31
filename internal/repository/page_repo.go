package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// PageRepository is the page and blog post data access interface
type PageRepository interface {
	Create(ctx context.Context, page *model.Page) error
	GetByID(ctx context.Context, siteID, id uint) (*model.Page, error)
	GetBySlug(ctx context.Context, siteID uint, slug string) (*model.Page, error)
	ListBySite(ctx context.Context, siteID uint, kind string) ([]model.Page, error)
	Update(ctx context.Context, page *model.Page) error
	Delete(ctx context.Context, siteID, id uint) (bool, error)
}

type pageRepo struct {
	db *gorm.DB
}

// NewPageRepo creates a PageRepository backed by gorm
func NewPageRepo(db *gorm.DB) PageRepository {
	return &pageRepo{db: db}
}

func (r *pageRepo) Create(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *pageRepo) GetByID(ctx context.Context, siteID, id uint) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) GetBySlug(ctx context.Context, siteID uint, slug string) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND slug = ?", siteID, slug).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) ListBySite(ctx context.Context, siteID uint, kind string) ([]model.Page, error) {
	pages := []model.Page{}
	q := r.db.WithContext(ctx).Where("site_id = ?", siteID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Order("id").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *pageRepo) Update(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *pageRepo) Delete(ctx context.Context, siteID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&model.Page{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
