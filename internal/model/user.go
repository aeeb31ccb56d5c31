package model

import (
	"time"
)

// User roles. SUPERADMIN bypasses all site membership checks.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)

// User represents the user model stored in the database.
// Users are only created through invite consumption on first sign-in.
type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Email         string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string     `json:"name" gorm:"type:varchar(100)"`
	Role          string     `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	IsInvited     bool       `json:"is_invited" gorm:"default:true"`
	InvitedBy     *uint      `json:"invited_by,omitempty" gorm:"index"`
	CurrentSiteID *uint      `json:"current_site_id,omitempty" gorm:"index"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsSuperAdmin reports whether the user holds the global override role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
