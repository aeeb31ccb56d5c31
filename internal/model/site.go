package model

import (
	"time"
)

// Site represents a tenant: an independently configured customer workspace.
// Every content resource in the system is owned by exactly one site.
type Site struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Domain      string    `json:"domain,omitempty" gorm:"type:varchar(255)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	LogoURL     string    `json:"logo_url,omitempty" gorm:"type:varchar(512)"`
	CoverURL    string    `json:"cover_url,omitempty" gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteMember represents the association between users and sites.
// Membership is what grants non-SUPERADMIN users access to a site's data.
type SiteMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SiteID    uint      `json:"site_id" gorm:"not null;uniqueIndex:idx_site_members_pair"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_site_members_pair"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Site Site `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
