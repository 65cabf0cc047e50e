package models

import "gorm.io/gorm"

// User is a registered customer or administrator.
// IsAdmin is never set by any HTTP route; use `storefront user:promote`.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
}
