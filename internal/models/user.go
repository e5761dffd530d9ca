package models

import "time"

// User represents an authenticated owner account. Every Group and Person
// belongs to exactly one user.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Groups []Group  `gorm:"foreignKey:UserID" json:"groups,omitempty"`
	People []Person `gorm:"foreignKey:UserID" json:"people,omitempty"`
}
