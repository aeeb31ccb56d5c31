package model

import (
	"time"
)

// Page kinds. Blog posts share the page table shape and are distinguished by
// kind; they are gated by the BLOG feature instead of PAGES.
const (
	PageKindPage = "PAGE"
	PageKindPost = "POST"
)

// Page represents a content page or blog post owned by a site.
// Slug is unique within the owning site.
type Page struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SiteID      uint       `json:"site_id" gorm:"not null;uniqueIndex:idx_pages_site_slug"`
	Slug        string     `json:"slug" gorm:"type:varchar(200);not null;uniqueIndex:idx_pages_site_slug"`
	Kind        string     `json:"kind" gorm:"type:varchar(10);not null;default:'PAGE'"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Content     string     `json:"content" gorm:"type:text"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	AuthorID    uint       `json:"author_id" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
