package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// MediaRepository is the media file metadata access interface
type MediaRepository interface {
	Create(ctx context.Context, file *model.MediaFile) error
	GetByID(ctx context.Context, siteID, id uint) (*model.MediaFile, error)
	ListBySite(ctx context.Context, siteID uint) ([]model.MediaFile, error)
	Delete(ctx context.Context, siteID, id uint) (bool, error)
}

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepo creates a MediaRepository backed by gorm
func NewMediaRepo(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(ctx context.Context, file *model.MediaFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *mediaRepo) GetByID(ctx context.Context, siteID, id uint) (*model.MediaFile, error) {
	var file model.MediaFile
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *mediaRepo) ListBySite(ctx context.Context, siteID uint) ([]model.MediaFile, error) {
	files := []model.MediaFile{}
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("id").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *mediaRepo) Delete(ctx context.Context, siteID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&model.MediaFile{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
