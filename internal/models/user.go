package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles supported by the system.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

// User represents an account in the system. Students are soft deleted via
// DeletedAt rather than by rewriting their role, so the role enum stays clean.
type User struct {
	ID           uint           `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	NIM          string         `gorm:"column:nim;size:32;index" json:"nim"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role         string         `gorm:"size:32;not null;default:student" json:"role"`
	PasswordHash string         `gorm:"column:password_hash;size:64" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
