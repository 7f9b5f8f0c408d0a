package models

import (
	"time"

	"gorm.io/datatypes"
)

// Attendance statuses recorded directly against an enrollment.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusSick    = "sick"
	AttendanceStatusExcused = "excused"
)

// Attendance is a single attendance event owned by an enrollment. Records are
// immutable once written; there is no update path.
type Attendance struct {
	ID             uint           `gorm:"primaryKey;column:attendance_id" json:"attendance_id"`
	EnrollmentID   uint           `gorm:"column:enrollment_id;not null;index" json:"enrollment_id"`
	Status         string         `gorm:"size:32;not null;index" json:"status"`
	AttendanceDate datatypes.Date `gorm:"column:attendance_date;index" json:"attendance_date"`
	RecordedAt     time.Time      `gorm:"column:recorded_at" json:"recorded_at"`
}
