package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// AttendanceLogService serves the paginated attendance log view.
type AttendanceLogService interface {
	List(ctx context.Context, req dto.AttendanceLogRequest) (dto.AttendanceLogResult, error)
	ListToday(ctx context.Context, status string) (dto.AttendanceLogResult, string, error)
}

type attendanceLogService struct {
	attendances repository.AttendanceRepository
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	courses     repository.CourseRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAttendanceLogService constructs the attendance log service.
func NewAttendanceLogService(attendances repository.AttendanceRepository, enrollments repository.EnrollmentRepository, users repository.UserRepository, courses repository.CourseRepository, logger zerolog.Logger) AttendanceLogService {
	return &attendanceLogService{
		attendances: attendances,
		enrollments: enrollments,
		users:       users,
		courses:     courses,
		logger:      logger.With().Str("component", "attendance_log_service").Logger(),
		now:         time.Now,
	}
}

func (s *attendanceLogService) List(ctx context.Context, req dto.AttendanceLogRequest) (dto.AttendanceLogResult, error) {
	date := strings.TrimSpace(req.Date)
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return dto.AttendanceLogResult{}, ErrInvalidDate
		}
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	rows, total, err := s.attendances.ListLogs(ctx, repository.AttendanceLogFilter{
		Status:   strings.TrimSpace(req.Status),
		Date:     date,
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		return dto.AttendanceLogResult{}, &StoreReadError{Table: "attendances", Err: err}
	}

	formatted, err := s.enrich(ctx, rows)
	if err != nil {
		return dto.AttendanceLogResult{}, err
	}

	return dto.AttendanceLogResult{
		Rows: formatted,
		Meta: dto.NewPageMeta(total, req.Page, req.Limit),
	}, nil
}

// ListToday returns all of today's log rows without pagination, along with
// the date it resolved.
func (s *attendanceLogService) ListToday(ctx context.Context, status string) (dto.AttendanceLogResult, string, error) {
	today := s.now().Format("2006-01-02")

	rows, total, err := s.attendances.ListLogs(ctx, repository.AttendanceLogFilter{
		Status: strings.TrimSpace(status),
		Date:   today,
	})
	if err != nil {
		return dto.AttendanceLogResult{}, today, &StoreReadError{Table: "attendances", Err: err}
	}

	formatted, err := s.enrich(ctx, rows)
	if err != nil {
		return dto.AttendanceLogResult{}, today, err
	}

	return dto.AttendanceLogResult{
		Rows: formatted,
		Meta: dto.PageMeta{Total: total, Page: 1, Limit: len(formatted), TotalPages: 1},
	}, today, nil
}

// enrich resolves the page's foreign keys with one batched read per related
// table, joining in memory via id-keyed maps. Missing joined rows degrade to
// sentinel values instead of dropping the log row.
func (s *attendanceLogService) enrich(ctx context.Context, rows []models.Attendance) ([]dto.AttendanceLogRow, error) {
	enrollmentIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.EnrollmentID]; ok {
			continue
		}
		seen[row.EnrollmentID] = struct{}{}
		enrollmentIDs = append(enrollmentIDs, row.EnrollmentID)
	}

	enrollments, err := s.enrollments.ListByIDs(ctx, enrollmentIDs)
	if err != nil {
		return nil, &StoreReadError{Table: "enrollments", Err: err}
	}
	enrollmentByID := make(map[uint]models.Enrollment, len(enrollments))
	userIDs := make([]uint, 0, len(enrollments))
	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		enrollmentByID[enrollment.ID] = enrollment
		userIDs = append(userIDs, enrollment.UserID)
		courseIDs = append(courseIDs, enrollment.CourseID)
	}

	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, &StoreReadError{Table: "users", Err: err}
	}
	userByID := make(map[uint]models.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	courses, err := s.courses.ListByIDs(ctx, courseIDs)
	if err != nil {
		return nil, &StoreReadError{Table: "courses", Err: err}
	}
	courseByID := make(map[uint]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	formatted := make([]dto.AttendanceLogRow, 0, len(rows))
	for _, row := range rows {
		entry := dto.AttendanceLogRow{
			ID:         row.ID,
			NIM:        "-",
			Name:       "Unknown",
			Date:       "-",
			Time:       "-",
			Status:     row.Status,
			CourseCode: "-",
			CourseName: "-",
		}

		if date := time.Time(row.AttendanceDate); !date.IsZero() {
			entry.Date = date.Format("2006-01-02")
		}
		if !row.RecordedAt.IsZero() {
			entry.Time = row.RecordedAt.Format("15:04:05")
		}

		if enrollment, ok := enrollmentByID[row.EnrollmentID]; ok {
			if user, ok := userByID[enrollment.UserID]; ok {
				entry.Name = user.FullName
				if user.NIM != "" {
					entry.NIM = user.NIM
				} else {
					entry.NIM = strconv.FormatUint(uint64(user.ID), 10)
				}
			}
			if course, ok := courseByID[enrollment.CourseID]; ok {
				entry.CourseCode = course.Code
				entry.CourseName = course.Name
			}
		}

		formatted = append(formatted, entry)
	}

	return formatted, nil
}
