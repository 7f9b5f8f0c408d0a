package models

import "time"

// Course represents a course students can enroll into.
type Course struct {
	ID        uint      `gorm:"primaryKey;column:course_id" json:"course_id"`
	Code      string    `gorm:"column:course_code;size:32;uniqueIndex;not null" json:"course_code"`
	Name      string    `gorm:"column:course_name;size:255;not null" json:"course_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
