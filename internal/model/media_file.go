package model

import (
	"time"
)

// MediaFile is an uploaded object owned by a site. The bytes live in object
// storage; this row holds the key and metadata.
type MediaFile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SiteID      uint      `json:"site_id" gorm:"index;not null"`
	FileName    string    `json:"file_name" gorm:"type:varchar(255);not null"`
	StorageKey  string    `json:"storage_key" gorm:"type:varchar(512);uniqueIndex;not null"`
	ContentType string    `json:"content_type,omitempty" gorm:"type:varchar(100)"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty" gorm:"type:varchar(512)"`
	UploadedBy  uint      `json:"uploaded_by" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
