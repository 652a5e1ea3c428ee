package models

import "gorm.io/gorm"

// User represents an account that can author, fork and curate recipes.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
}

// DisplayName returns the name shown next to authored content.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
