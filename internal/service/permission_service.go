package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// PermissionService manages permission (leave) requests: listing, detail and
// the pending → approved/rejected transition.
type PermissionService interface {
	List(ctx context.Context, req dto.PermissionListRequest) (dto.PermissionListResult, error)
	Detail(ctx context.Context, id uint) (dto.PermissionDetailResponse, error)
	Decide(ctx context.Context, id uint, req dto.PermissionDecisionRequest) (models.Permission, error)
}

type permissionService struct {
	permissions repository.PermissionRepository
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPermissionService constructs the permission service.
func NewPermissionService(permissions repository.PermissionRepository, enrollments repository.EnrollmentRepository, users repository.UserRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) PermissionService {
	return &permissionService{
		permissions: permissions,
		enrollments: enrollments,
		users:       users,
		courses:     courses,
		validator:   validate,
		logger:      logger.With().Str("component", "permission_service").Logger(),
		now:         time.Now,
	}
}

func (s *permissionService) List(ctx context.Context, req dto.PermissionListRequest) (dto.PermissionListResult, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	permissions, total, err := s.permissions.List(ctx, repository.PermissionFilter{
		Status:   strings.TrimSpace(req.Status),
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		return dto.PermissionListResult{}, &StoreReadError{Table: "permissions", Err: err}
	}

	enrollmentByID, userByID, courseByID, err := s.lookups(ctx, permissions)
	if err != nil {
		return dto.PermissionListResult{}, err
	}

	items := make([]dto.PermissionListItem, 0, len(permissions))
	for _, permission := range permissions {
		item := dto.PermissionListItem{
			ID:           permission.ID,
			EnrollmentID: permission.EnrollmentID,
			NIM:          "-",
			Name:         "Unknown",
			CourseCode:   "-",
			CourseName:   "-",
			StartTime:    permission.StartTime,
			EndTime:      permission.EndTime,
			Reason:       permission.Reason,
			Status:       permission.Status,
			SubmittedAt:  permission.SubmittedAt,
		}

		if date := time.Time(permission.PermissionDate); !date.IsZero() {
			item.PermissionDate = date.Format("2006-01-02")
		}

		if enrollment, ok := enrollmentByID[permission.EnrollmentID]; ok {
			if user, ok := userByID[enrollment.UserID]; ok {
				userID := user.ID
				item.StudentID = &userID
				item.Name = user.FullName
				if user.NIM != "" {
					item.NIM = user.NIM
				}
			}
			if course, ok := courseByID[enrollment.CourseID]; ok {
				item.CourseCode = course.Code
				item.CourseName = course.Name
			}
		}

		items = append(items, item)
	}

	return dto.PermissionListResult{
		Items: items,
		Meta:  dto.NewPageMeta(total, req.Page, req.Limit),
	}, nil
}

func (s *permissionService) Detail(ctx context.Context, id uint) (dto.PermissionDetailResponse, error) {
	permission, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PermissionDetailResponse{}, ErrPermissionNotFound
		}
		return dto.PermissionDetailResponse{}, &StoreReadError{Table: "permissions", Err: err}
	}

	enrollmentByID, userByID, courseByID, err := s.lookups(ctx, []models.Permission{permission})
	if err != nil {
		return dto.PermissionDetailResponse{}, err
	}

	detail := dto.PermissionDetailResponse{
		ID:           permission.ID,
		EnrollmentID: permission.EnrollmentID,
		Student:      dto.PermissionStudent{NIM: "-", Name: "Unknown", Email: "-"},
		Course:       dto.PermissionCourse{Code: "-", Name: "-"},
		StartTime:    permission.StartTime,
		EndTime:      permission.EndTime,
		Reason:       permission.Reason,
		Description:  permission.Description,
		Status:       permission.Status,
		SubmittedAt:  permission.SubmittedAt,
		ApprovedAt:   permission.ApprovedAt,
		ApprovedBy:   permission.ApprovedBy,
	}

	if date := time.Time(permission.PermissionDate); !date.IsZero() {
		detail.PermissionDate = date.Format("2006-01-02")
	}

	if enrollment, ok := enrollmentByID[permission.EnrollmentID]; ok {
		if user, ok := userByID[enrollment.UserID]; ok {
			userID := user.ID
			detail.Student = dto.PermissionStudent{
				ID:    &userID,
				NIM:   user.NIM,
				Name:  user.FullName,
				Email: user.Email,
			}
			if detail.Student.NIM == "" {
				detail.Student.NIM = "-"
			}
		}
		if course, ok := courseByID[enrollment.CourseID]; ok {
			courseID := course.ID
			detail.Course = dto.PermissionCourse{
				ID:   &courseID,
				Code: course.Code,
				Name: course.Name,
			}
		}
	}

	return detail, nil
}

// Decide moves a pending request to approved or rejected. The transition is
// terminal; deciding an already-decided request is a conflict.
func (s *permissionService) Decide(ctx context.Context, id uint, req dto.PermissionDecisionRequest) (models.Permission, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Permission{}, err
	}

	if _, err := s.permissions.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Permission{}, ErrPermissionNotFound
		}
		return models.Permission{}, &StoreReadError{Table: "permissions", Err: err}
	}

	if err := s.permissions.SetDecision(ctx, id, req.Status, req.AdminID, s.now()); err != nil {
		if errors.Is(err, repository.ErrPermissionNotPending) {
			return models.Permission{}, ErrPermissionDecided
		}
		return models.Permission{}, &StoreWriteError{Table: "permissions", Err: err}
	}

	updated, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		return models.Permission{}, &StoreReadError{Table: "permissions", Err: err}
	}

	s.logger.Info().
		Uint("permission_id", id).
		Str("status", req.Status).
		Uint("admin_id", req.AdminID).
		Msg("permission request decided")

	return updated, nil
}

// lookups batch-resolves the enrollments, users and courses referenced by the
// given permissions: one read per related table regardless of row count.
func (s *permissionService) lookups(ctx context.Context, permissions []models.Permission) (map[uint]models.Enrollment, map[uint]models.User, map[uint]models.Course, error) {
	enrollmentIDs := make([]uint, 0, len(permissions))
	seen := make(map[uint]struct{}, len(permissions))
	for _, permission := range permissions {
		if _, ok := seen[permission.EnrollmentID]; ok {
			continue
		}
		seen[permission.EnrollmentID] = struct{}{}
		enrollmentIDs = append(enrollmentIDs, permission.EnrollmentID)
	}

	enrollments, err := s.enrollments.ListByIDs(ctx, enrollmentIDs)
	if err != nil {
		return nil, nil, nil, &StoreReadError{Table: "enrollments", Err: err}
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
		return nil, nil, nil, &StoreReadError{Table: "users", Err: err}
	}
	userByID := make(map[uint]models.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	courses, err := s.courses.ListByIDs(ctx, courseIDs)
	if err != nil {
		return nil, nil, nil, &StoreReadError{Table: "courses", Err: err}
	}
	courseByID := make(map[uint]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	return enrollmentByID, userByID, courseByID, nil
}
