package model

import (
	"time"
)

// Company is a site-scoped employer profile. Job listings of inactive
// companies are hidden from the public job feed.
type Company struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SiteID      uint      `json:"site_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Website     string    `json:"website,omitempty" gorm:"type:varchar(512)"`
	LogoURL     string    `json:"logo_url,omitempty" gorm:"type:varchar(512)"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
