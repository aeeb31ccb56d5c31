package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// ContactRepository is the contact form and submission data access interface
type ContactRepository interface {
	CreateForm(ctx context.Context, form *model.ContactForm) error
	GetFormBySite(ctx context.Context, siteID uint) (*model.ContactForm, error)
	UpdateForm(ctx context.Context, form *model.ContactForm) error

	CreateSubmission(ctx context.Context, submission *model.ContactSubmission) error
	GetSubmission(ctx context.Context, siteID, id uint) (*model.ContactSubmission, error)
	ListSubmissions(ctx context.Context, siteID uint, includeArchived bool) ([]model.ContactSubmission, error)
	UpdateSubmissionFlags(ctx context.Context, siteID, id uint, isRead, isArchived *bool) (bool, error)
	DeleteSubmission(ctx context.Context, siteID, id uint) (bool, error)
}

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepo creates a ContactRepository backed by gorm
func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) CreateForm(ctx context.Context, form *model.ContactForm) error {
	// Fields are created in the same transaction via the association
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *contactRepo) GetFormBySite(ctx context.Context, siteID uint) (*model.ContactForm, error) {
	var form model.ContactForm
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Where("site_id = ?", siteID).
		First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *contactRepo) UpdateForm(ctx context.Context, form *model.ContactForm) error {
	// Save only upserts the field association, so the prior field rows have
	// to go first or every edit accumulates them.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", form.ID).Delete(&model.ContactFormField{}).Error; err != nil {
			return err
		}
		return tx.Save(form).Error
	})
}

func (r *contactRepo) CreateSubmission(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactRepo) GetSubmission(ctx context.Context, siteID, id uint) (*model.ContactSubmission, error) {
	var submission model.ContactSubmission
	err := r.db.WithContext(ctx).
		Preload("Data").
		Where("site_id = ?", siteID).
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *contactRepo) ListSubmissions(ctx context.Context, siteID uint, includeArchived bool) ([]model.ContactSubmission, error) {
	submissions := []model.ContactSubmission{}
	q := r.db.WithContext(ctx).
		Preload("Data").
		Where("site_id = ?", siteID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	if err := q.Order("created_at desc").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *contactRepo) UpdateSubmissionFlags(ctx context.Context, siteID, id uint, isRead, isArchived *bool) (bool, error) {
	updates := map[string]interface{}{}
	if isRead != nil {
		updates["is_read"] = *isRead
	}
	if isArchived != nil {
		updates["is_archived"] = *isArchived
	}
	if len(updates) == 0 {
		return true, nil
	}

	result := r.db.WithContext(ctx).Model(&model.ContactSubmission{}).
		Where("site_id = ? AND id = ?", siteID, id).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *contactRepo) DeleteSubmission(ctx context.Context, siteID, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("site_id = ?", siteID).Delete(&model.ContactSubmission{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("submission_id = ?", id).Delete(&model.ContactSubmissionData{}).Error
	})
	return deleted, err
}
