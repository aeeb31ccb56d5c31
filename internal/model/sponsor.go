package model

import (
	"time"
)

// Sponsor represents a sponsor entry owned by a site, gated by the SPONSORS
// feature. Only active sponsors appear in the public projection.
type Sponsor struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SiteID    uint      `json:"site_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	URL       string    `json:"url,omitempty" gorm:"type:varchar(512)"`
	LogoURL   string    `json:"logo_url,omitempty" gorm:"type:varchar(512)"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
