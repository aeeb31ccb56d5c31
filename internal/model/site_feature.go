package model

import (
	"time"
)

// Feature names. A feature with no SiteFeature row is disabled.
const (
	FeaturePages             = "PAGES"
	FeatureBlog              = "BLOG"
	FeatureContactManagement = "CONTACT_MANAGEMENT"
	FeatureSponsors          = "SPONSORS"
	FeatureJobBoard          = "JOB_BOARD"
	FeatureSocialMedia       = "SOCIAL_MEDIA"
	FeatureMedia             = "MEDIA"
)

// KnownFeatures lists every toggleable capability bundle.
var KnownFeatures = []string{
	FeaturePages,
	FeatureBlog,
	FeatureContactManagement,
	FeatureSponsors,
	FeatureJobBoard,
	FeatureSocialMedia,
	FeatureMedia,
}

// IsKnownFeature reports whether name is a recognized feature name.
func IsKnownFeature(name string) bool {
	for _, f := range KnownFeatures {
		if f == name {
			return true
		}
	}
	return false
}

// SiteFeature toggles one capability bundle for one site. At most one row may
// exist per (site, feature) pair; the feature gate relies on that uniqueness.
type SiteFeature struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SiteID      uint      `json:"site_id" gorm:"not null;uniqueIndex:idx_site_features_pair"`
	Feature     string    `json:"feature" gorm:"type:varchar(50);not null;uniqueIndex:idx_site_features_pair"`
	IsEnabled   bool      `json:"is_enabled" gorm:"default:false"`
	DisplayName string    `json:"display_name,omitempty" gorm:"type:varchar(100)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Config      string    `json:"config,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
