package model

import (
	"time"
)

// Invite is a single-use, time-limited admission credential. An invite is
// consumed exactly once, at the first sign-in matching its email; used invites
// are immutable history.
type Invite struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Email     string     `json:"email" gorm:"type:varchar(255);not null;index;uniqueIndex:idx_invites_live_email,where:is_used = false"`
	Role      string     `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	Token     string     `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	InvitedBy uint       `json:"invited_by" gorm:"index;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	IsUsed    bool       `json:"is_used" gorm:"default:false"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsLive reports whether the invite can still admit a sign-in.
func (i *Invite) IsLive(now time.Time) bool {
	return !i.IsUsed && now.Before(i.ExpiresAt)
}
