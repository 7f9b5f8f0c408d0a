package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// AttendanceLogFilter scopes the attendance log listing. The log view only
// shows present and late events; Status narrows to one of the two, Date
// matches an exact day (YYYY-MM-DD).
type AttendanceLogFilter struct {
	Status   string
	Date     string
	Page     int
	PageSize int
}

// AttendanceRepository exposes persistence helpers for attendance records.
type AttendanceRepository interface {
	ListByEnrollmentIDs(ctx context.Context, enrollmentIDs []uint) ([]models.Attendance, error)
	ListLogs(ctx context.Context, filter AttendanceLogFilter) ([]models.Attendance, int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByEnrollmentIDs(ctx context.Context, enrollmentIDs []uint) ([]models.Attendance, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	var rows []models.Attendance
	if err := r.db.WithContext(ctx).Where("enrollment_id IN ?", enrollmentIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *attendanceRepository) ListLogs(ctx context.Context, filter AttendanceLogFilter) ([]models.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("status IN ?", []string{models.AttendanceStatusPresent, models.AttendanceStatusLate})

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("attendance_date = ?", filter.Date)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("attendance_date DESC").Order("recorded_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var rows []models.Attendance
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
