package models

import "time"

// Enrollment links a student to a course. Rows are soft deleted via IsDeleted
// so historical attendance and permission records stay joinable; at most one
// active row may exist per (user, course) pair.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey;column:enrollment_id" json:"enrollment_id"`
	UserID     uint      `gorm:"column:user_id;not null;index:idx_enrollment_user_course" json:"user_id"`
	CourseID   uint      `gorm:"column:course_id;not null;index:idx_enrollment_user_course" json:"course_id"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	EnrolledAt time.Time `gorm:"column:enrolled_at" json:"enrolled_at"`
}
