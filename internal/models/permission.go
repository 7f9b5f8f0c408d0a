package models

import (
	"time"

	"gorm.io/datatypes"
)

// Permission request lifecycle states. A request is created pending and moves
// to approved or rejected exactly once.
const (
	PermissionStatusPending  = "pending"
	PermissionStatusApproved = "approved"
	PermissionStatusRejected = "rejected"
)

// Permission is a leave request submitted by a student for an enrollment.
// Approved requests feed the attendance tally as sick or excused depending on
// the reason text.
type Permission struct {
	ID             uint           `gorm:"primaryKey;column:permission_id" json:"id"`
	EnrollmentID   uint           `gorm:"column:enrollment_id;not null;index" json:"enrollment_id"`
	Reason         string         `gorm:"size:255;not null" json:"reason"`
	Description    string         `gorm:"size:1024" json:"description"`
	Status         string         `gorm:"size:32;not null;default:pending;index" json:"status"`
	PermissionDate datatypes.Date `gorm:"column:permission_date" json:"permission_date"`
	StartTime      string         `gorm:"column:start_time;size:16" json:"start_time"`
	EndTime        string         `gorm:"column:end_time;size:16" json:"end_time"`
	SubmittedAt    time.Time      `gorm:"column:submitted_at" json:"submitted_at"`
	ApprovedAt     *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy     *uint          `gorm:"column:approved_by" json:"approved_by,omitempty"`
}
