package model

import (
	"time"
)

// SocialMediaChannel is an external channel (e.g. a YouTube channel id) owned
// by a site, gated by the SOCIAL_MEDIA feature.
type SocialMediaChannel struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SiteID     uint      `json:"site_id" gorm:"index;not null"`
	Platform   string    `json:"platform" gorm:"type:varchar(30);not null"`
	ExternalID string    `json:"external_id" gorm:"type:varchar(100);not null"`
	Name       string    `json:"name,omitempty" gorm:"type:varchar(100)"`
	URL        string    `json:"url,omitempty" gorm:"type:varchar(512)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Stats []SocialMediaChannelStat `json:"stats,omitempty" gorm:"foreignKey:ChannelID"`
}

// SocialMediaChannelStat is one cached metric of a channel. Values are
// refreshed lazily on public reads; a failed refresh leaves the cached value
// in place.
type SocialMediaChannelStat struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChannelID   uint      `json:"channel_id" gorm:"not null;uniqueIndex:idx_channel_stat_name"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex:idx_channel_stat_name"`
	Value       string    `json:"value" gorm:"type:varchar(100)"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsFresh reports whether the cached value is younger than ttl.
func (s *SocialMediaChannelStat) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastUpdated) < ttl
}
