package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a back-office account.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string
	Role         string `gorm:"default:'admin'"`
	Status       string `gorm:"default:'active'"`
	LastLoginAt  *time.Time
	TokenVersion int `gorm:"default:1"`
}
