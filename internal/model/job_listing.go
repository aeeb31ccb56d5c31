package model

import (
	"time"
)

// Job listing statuses. Only ACTIVE listings of active companies are publicly
// visible.
const (
	JobStatusDraft  = "DRAFT"
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

// JobListing is one job posting, owned by a site and referencing exactly one
// company, gated by the JOB_BOARD feature.
type JobListing struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SiteID          uint      `json:"site_id" gorm:"index;not null"`
	CompanyID       uint      `json:"company_id" gorm:"index;not null"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Description     string    `json:"description,omitempty" gorm:"type:text"`
	JobType         string    `json:"job_type,omitempty" gorm:"type:varchar(30)"`
	ExperienceLevel string    `json:"experience_level,omitempty" gorm:"type:varchar(30)"`
	RemoteType      string    `json:"remote_type,omitempty" gorm:"type:varchar(30)"`
	SalaryMin       *int      `json:"salary_min,omitempty"`
	SalaryMax       *int      `json:"salary_max,omitempty"`
	Status          string    `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}
