package repository

import (
	"context"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// SiteRepository is the site directory and membership data access interface
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	GetByID(ctx context.Context, id uint) (*model.Site, error)
	List(ctx context.Context) ([]model.Site, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Site, error)
	Update(ctx context.Context, site *model.Site) error
	// Delete removes the site and everything it owns
	Delete(ctx context.Context, id uint) error

	IsMember(ctx context.Context, siteID, userID uint) (bool, error)
	AddMember(ctx context.Context, siteID, userID uint) error
	RemoveMember(ctx context.Context, siteID, userID uint) (bool, error)
	ListMembers(ctx context.Context, siteID uint) ([]model.SiteMember, error)
}

type siteRepo struct {
	db *gorm.DB
}

// NewSiteRepo creates a SiteRepository backed by gorm
func NewSiteRepo(db *gorm.DB) SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepo) GetByID(ctx context.Context, id uint) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) List(ctx context.Context) ([]model.Site, error) {
	sites := []model.Site{}
	if err := r.db.WithContext(ctx).Order("id").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepo) ListForUser(ctx context.Context, userID uint) ([]model.Site, error) {
	sites := []model.Site{}
	err := r.db.WithContext(ctx).
		Joins("JOIN site_members ON site_members.site_id = sites.id").
		Where("site_members.user_id = ?", userID).
		Order("sites.id").
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepo) Update(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

func (r *siteRepo) Delete(ctx context.Context, id uint) error {
	// Site deletion cascades to every owned resource. Done in one
	// transaction so a failure leaves the tenant intact.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Grandchildren first: channel stats hang off channels, contact
		// data hangs off the form.
		chanQuery := tx.Model(&model.SocialMediaChannel{}).Select("id").Where("site_id = ?", id)
		if err := tx.Where("channel_id IN (?)", chanQuery).Delete(&model.SocialMediaChannelStat{}).Error; err != nil {
			return err
		}

		var form model.ContactForm
		if err := tx.Where("site_id = ?", id).First(&form).Error; err == nil {
			subQuery := tx.Model(&model.ContactSubmission{}).Select("id").Where("form_id = ?", form.ID)
			if err := tx.Where("submission_id IN (?)", subQuery).Delete(&model.ContactSubmissionData{}).Error; err != nil {
				return err
			}
			if err := tx.Where("form_id = ?", form.ID).Delete(&model.ContactSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("form_id = ?", form.ID).Delete(&model.ContactFormField{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&form).Error; err != nil {
				return err
			}
		}

		siteScoped := []interface{}{
			&model.Page{},
			&model.MediaFile{},
			&model.Sponsor{},
			&model.JobListing{},
			&model.Company{},
			&model.SocialMediaChannel{},
			&model.SiteFeature{},
			&model.SiteMember{},
		}
		for _, m := range siteScoped {
			if err := tx.Where("site_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Site{}, id).Error
	})
}

func (r *siteRepo) IsMember(ctx context.Context, siteID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SiteMember{}).
		Where("site_id = ? AND user_id = ?", siteID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *siteRepo) AddMember(ctx context.Context, siteID, userID uint) error {
	return r.db.WithContext(ctx).Create(&model.SiteMember{SiteID: siteID, UserID: userID}).Error
}

func (r *siteRepo) RemoveMember(ctx context.Context, siteID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("site_id = ? AND user_id = ?", siteID, userID).
		Delete(&model.SiteMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *siteRepo) ListMembers(ctx context.Context, siteID uint) ([]model.SiteMember, error) {
	members := []model.SiteMember{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("site_id = ?", siteID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
