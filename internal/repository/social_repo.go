package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// SocialRepository is the social media channel and stat data access interface
type SocialRepository interface {
	CreateChannel(ctx context.Context, channel *model.SocialMediaChannel) error
	GetChannel(ctx context.Context, siteID, id uint) (*model.SocialMediaChannel, error)
	ListChannels(ctx context.Context, siteID uint) ([]model.SocialMediaChannel, error)
	UpdateChannel(ctx context.Context, channel *model.SocialMediaChannel) error
	DeleteChannel(ctx context.Context, siteID, id uint) (bool, error)

	ListStats(ctx context.Context, channelID uint) ([]model.SocialMediaChannelStat, error)
	// UpsertStat overwrites a stat's cached value and freshness timestamp
	UpsertStat(ctx context.Context, channelID uint, name, value string, at time.Time) error
}

type socialRepo struct {
	db *gorm.DB
}

// NewSocialRepo creates a SocialRepository backed by gorm
func NewSocialRepo(db *gorm.DB) SocialRepository {
	return &socialRepo{db: db}
}

func (r *socialRepo) CreateChannel(ctx context.Context, channel *model.SocialMediaChannel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *socialRepo) GetChannel(ctx context.Context, siteID, id uint) (*model.SocialMediaChannel, error) {
	var channel model.SocialMediaChannel
	err := r.db.WithContext(ctx).
		Preload("Stats").
		Where("site_id = ?", siteID).
		First(&channel, id).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *socialRepo) ListChannels(ctx context.Context, siteID uint) ([]model.SocialMediaChannel, error) {
	channels := []model.SocialMediaChannel{}
	err := r.db.WithContext(ctx).
		Preload("Stats").
		Where("site_id = ?", siteID).
		Order("id").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *socialRepo) UpdateChannel(ctx context.Context, channel *model.SocialMediaChannel) error {
	return r.db.WithContext(ctx).Save(channel).Error
}

func (r *socialRepo) DeleteChannel(ctx context.Context, siteID, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("site_id = ?", siteID).Delete(&model.SocialMediaChannel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("channel_id = ?", id).Delete(&model.SocialMediaChannelStat{}).Error
	})
	return deleted, err
}

func (r *socialRepo) ListStats(ctx context.Context, channelID uint) ([]model.SocialMediaChannelStat, error) {
	stats := []model.SocialMediaChannelStat{}
	if err := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Order("name").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *socialRepo) UpsertStat(ctx context.Context, channelID uint, name, value string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.SocialMediaChannelStat{}).
		Where("channel_id = ? AND name = ?", channelID, name).
		Updates(map[string]interface{}{
			"value":        value,
			"last_updated": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&model.SocialMediaChannelStat{
		ChannelID:   channelID,
		Name:        name,
		Value:       value,
		LastUpdated: at,
	}).Error
}
