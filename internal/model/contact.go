package model

import (
	"time"
)

// Contact form field types.
const (
	FieldTypeText     = "TEXT"
	FieldTypeEmail    = "EMAIL"
	FieldTypePhone    = "PHONE"
	FieldTypeSelect   = "SELECT"
	FieldTypeTextarea = "TEXTAREA"
)

// ContactForm is the 0-or-1 contact form owned by a site, gated by the
// CONTACT_MANAGEMENT feature.
type ContactForm struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SiteID      uint      `json:"site_id" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Fields []ContactFormField `json:"fields,omitempty" gorm:"foreignKey:FormID"`
}

// ContactFormField is one ordered, typed input of a contact form. Name is the
// submission key; Label is what gets shown to visitors and reported back in
// validation errors.
type ContactFormField struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FormID     uint      `json:"form_id" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(50);not null"`
	Label      string    `json:"label" gorm:"type:varchar(100);not null"`
	FieldType  string    `json:"field_type" gorm:"type:varchar(20);not null;default:'TEXT'"`
	IsRequired bool      `json:"is_required" gorm:"default:false"`
	Options    string    `json:"options,omitempty" gorm:"type:jsonb"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactSubmission is an immutable snapshot of a public form submission.
// Only the IsRead/IsArchived flags are mutable after creation.
type ContactSubmission struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SiteID     uint      `json:"site_id" gorm:"index;not null"`
	FormID     uint      `json:"form_id" gorm:"index;not null"`
	IPAddress  string    `json:"ip_address,omitempty" gorm:"type:varchar(45)"`
	UserAgent  string    `json:"user_agent,omitempty" gorm:"type:varchar(512)"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
	IsArchived bool      `json:"is_archived" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Data []ContactSubmissionData `json:"data,omitempty" gorm:"foreignKey:SubmissionID"`
}

// ContactSubmissionData is one field-value pair of a submission snapshot.
type ContactSubmissionData struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SubmissionID uint      `json:"submission_id" gorm:"index;not null"`
	FieldName    string    `json:"field_name" gorm:"type:varchar(50);not null"`
	FieldLabel   string    `json:"field_label" gorm:"type:varchar(100);not null"`
	Value        string    `json:"value" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
